package drafts

// Status is the state of the submission form.
type Status string

const (
	// StatusEditing is the default; the visitor is still filling the draft in.
	StatusEditing Status = "editing"
	// StatusSubmitted is shown once the mail hand-off has been started. Only
	// Reset leaves it.
	StatusSubmitted Status = "submitted"
)

// Form is one visitor's pass through the submission form.
type Form struct {
	Draft  Draft  `json:"draft"`
	Status Status `json:"status"`
	// SubmissionID is the id handed to the mail client, kept so the
	// submitted page can be shown again.
	SubmissionID string `json:"submissionId,omitempty"`
}

func NewForm() Form {
	return Form{Draft: New(), Status: StatusEditing}
}

// Edit replaces the draft of a form that is still being edited. A submitted
// form is left alone.
func (f Form) Edit(d Draft) Form {
	if f.Submitted() {
		return f
	}
	f.Draft = d
	return f
}

// MarkSubmitted records that the draft went out under id. Nothing acknowledges
// the mail hand-off, so this happens as soon as it has been started.
func (f Form) MarkSubmitted(id string) Form {
	f.Status = StatusSubmitted
	f.SubmissionID = id
	return f
}

// Reset clears every field and returns to editing.
func (f Form) Reset() Form {
	return NewForm()
}

func (f Form) Submitted() bool {
	return f.Status == StatusSubmitted
}

package submit

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"tirthyatra/drafts"
	"tirthyatra/utils"
	"tirthyatra/views"

	"github.com/julienschmidt/httprouter"
)

// maxFormBytes bounds a posted draft.
const maxFormBytes = 1 << 20

// Handler serves the submission form and its JSON twin.
type Handler struct {
	Drafts     drafts.Store
	IDs        *IDSource
	Maintainer string
}

func NewHandler(store drafts.Store, maintainer string) *Handler {
	if maintainer == "" {
		maintainer = DefaultMaintainer
	}
	return &Handler{Drafts: store, IDs: NewIDSource(), Maintainer: maintainer}
}

// Page is the data behind submit.html.
type Page struct {
	Draft     drafts.Draft
	Suggested []string
	Notice    string
	Problems  []string
}

func (h *Handler) render(w http.ResponseWriter, status int, d drafts.Draft, notice string, problems []error) {
	p := Page{Draft: d, Suggested: drafts.SuggestedStates, Notice: notice}
	for _, err := range problems {
		p.Problems = append(p.Problems, sentence(err))
	}
	views.Render(w, status, views.Submit, "Submit Itinerary", p)
}

// SubmittedPage is the data behind submitted.html. AutoOpen is set only on the
// response to the submit itself, so reloading does not reopen the mail client.
type SubmittedPage struct {
	Submission Submission
	AutoOpen   bool
}

func (h *Handler) load(r *http.Request) drafts.Form {
	session := utils.SessionID(r.Context())
	f, ok, err := h.Drafts.Load(r.Context(), session)
	if err != nil {
		log.Printf("[submit] load draft session=%s: %v", session, err)
	}
	if !ok {
		return drafts.NewForm()
	}
	return f
}

// GET /submit
func (h *Handler) ShowForm(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	f := h.load(r)
	if f.Submitted() {
		s, err := Build(f.Draft, f.SubmissionID, h.Maintainer)
		if err == nil {
			views.Render(w, http.StatusOK, views.Submitted, "Submission", SubmittedPage{Submission: s})
			return
		}
		log.Printf("[submit] stored submission %s no longer builds: %v", f.SubmissionID, err)
		f = f.Reset()
		h.save(r, f)
	}
	h.render(w, http.StatusOK, f.Draft, "", nil)
}

// POST /submit/edit
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	f := h.load(r)
	if f.Submitted() {
		http.Redirect(w, r, "/submit", http.StatusSeeOther)
		return
	}
	d, problems, ok := h.parse(w, r)
	if !ok {
		return
	}

	notice := ""
	op, err := drafts.ParseButton(r.PostForm.Get("op"))
	if err == nil {
		d, err = drafts.Apply(d, op)
	}
	if err != nil {
		notice = sentence(err)
	}

	f = f.Edit(d)
	h.save(r, f)
	h.render(w, http.StatusOK, f.Draft, notice, problems)
}

// POST /submit
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	f := h.load(r)
	if f.Submitted() {
		http.Redirect(w, r, "/submit", http.StatusSeeOther)
		return
	}
	d, problems, ok := h.parse(w, r)
	if !ok {
		return
	}
	f = f.Edit(d)

	s, err := Build(f.Draft, h.IDs.Next(), h.Maintainer)
	if err != nil {
		h.save(r, f)
		h.render(w, http.StatusUnprocessableEntity, f.Draft, sentence(err), problems)
		return
	}

	// Submitted as soon as the hand-off starts; the mail client never reports back.
	f = f.MarkSubmitted(s.Itinerary.ID)
	h.save(r, f)
	log.Printf("[submit] handed off id=%s title=%q days=%d", s.Itinerary.ID, s.Itinerary.Title, len(s.Itinerary.Days))
	views.Render(w, http.StatusOK, views.Submitted, "Submission", SubmittedPage{Submission: s, AutoOpen: true})
}

// Throttled answers a rate-limited form post. The posted draft is saved and
// shown again so nothing typed is lost.
func (h *Handler) Throttled(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	f := h.load(r)
	if f.Submitted() {
		http.Redirect(w, r, "/submit", http.StatusSeeOther)
		return
	}
	d, problems, ok := h.parse(w, r)
	if !ok {
		return
	}
	f = f.Edit(d)
	h.save(r, f)
	h.render(w, http.StatusTooManyRequests, f.Draft, sentence(ErrSlowDown), problems)
}

// POST /submit/reset
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.save(r, h.load(r).Reset())
	http.Redirect(w, r, "/submit", http.StatusSeeOther)
}

func (h *Handler) parse(w http.ResponseWriter, r *http.Request) (drafts.Draft, []error, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return drafts.Draft{}, nil, false
	}
	d, problems := DraftFromForm(r.PostForm)
	return d, problems, true
}

func (h *Handler) save(r *http.Request, f drafts.Form) {
	session := utils.SessionID(r.Context())
	if session == "" {
		return
	}
	if err := h.Drafts.Save(r.Context(), session, f); err != nil {
		log.Printf("[submit] save draft session=%s: %v", session, err)
	}
}

// POST /api/submissions
func (h *Handler) CreateSubmission(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var d drafts.Draft
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes)).Decode(&d); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	s, err := Build(d, h.IDs.Next(), h.Maintainer)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, sentence(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, s)
}

type applyRequest struct {
	Draft *drafts.Draft `json:"draft"`
	Ops   []drafts.Op   `json:"ops"`
}

// POST /api/drafts/apply runs edit operations against a draft and returns the
// result. A missing draft starts from an empty one.
func (h *Handler) ApplyOps(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req applyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes)).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	d := drafts.New()
	if req.Draft != nil {
		d = *req.Draft
		if len(d.Days) == 0 {
			utils.RespondWithError(w, http.StatusBadRequest, sentence(ErrNoDays))
			return
		}
	}
	for i, op := range req.Ops {
		var err error
		if d, err = drafts.Apply(d, op); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("op %d: %s", i, sentence(err)))
			return
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"draft": d})
}

// sentence turns an error into text fit for the page.
func sentence(err error) string {
	var missing *MissingFieldsError
	if errors.As(err, &missing) {
		return "Please fill in: " + strings.Join(missing.Fields, ", ") + "."
	}
	msg := err.Error()
	r, size := utf8.DecodeRuneInString(msg)
	return string(unicode.ToUpper(r)) + msg[size:] + "."
}

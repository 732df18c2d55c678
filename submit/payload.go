// Package submit turns a finished draft into an email the visitor sends to the
// maintainers. Nothing is stored: the visitor's mail client is the only way in.
package submit

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"tirthyatra/drafts"
	"tirthyatra/models"
	"tirthyatra/utils"
)

// DefaultMaintainer receives submissions unless MAINTAINER_EMAIL says otherwise.
const DefaultMaintainer = "cjchirag7+itineraries@gmail.com"

var (
	ErrNoStates    = errors.New("select at least one state")
	ErrBadDuration = errors.New("duration must be a whole number of days")
	ErrNoDays      = errors.New("add at least one day")
	ErrSlowDown    = errors.New("too many changes in a short time; your draft is kept, try again in a moment")
)

// MissingFieldsError lists required inputs left blank.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// Validate checks the gate on submitting: a state must be selected and the
// required inputs filled in.
func Validate(d drafts.Draft) error {
	if len(d.States) == 0 {
		return ErrNoStates
	}
	if len(d.Days) == 0 {
		return ErrNoDays
	}
	var missing []string
	if strings.TrimSpace(d.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(d.Duration) == "" {
		missing = append(missing, "duration")
	}
	if strings.TrimSpace(d.Author) == "" {
		missing = append(missing, "author")
	}
	if strings.TrimSpace(d.Description) == "" {
		missing = append(missing, "description")
	}
	for _, day := range d.Days {
		for j, stop := range day.Stops {
			if strings.TrimSpace(stop.Name) == "" {
				missing = append(missing, fmt.Sprintf("day %d stop %d name", day.Day, j+1))
			}
			if stop.Type == "" {
				missing = append(missing, fmt.Sprintf("day %d stop %d type", day.Day, j+1))
			}
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	if _, err := parseDays(d.Duration); err != nil {
		return err
	}
	return nil
}

func parseDays(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, ErrBadDuration
	}
	return n, nil
}

// DurationLabel renders a day count the way records store it.
func DurationLabel(n int) string {
	if n == 1 {
		return "1 Day"
	}
	return strconv.Itoa(n) + " Days"
}

// IDSource hands out submission ids taken from the clock in milliseconds.
// Two calls in the same millisecond still get distinct ids.
type IDSource struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDSource() *IDSource {
	return &IDSource{now: time.Now}
}

func (s *IDSource) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := s.now().UnixMilli()
	if ms <= s.last {
		ms = s.last + 1
	}
	s.last = ms
	return strconv.FormatInt(ms, 10)
}

// Submission is everything handed to the mail client.
type Submission struct {
	Itinerary models.Itinerary `json:"payload"`
	JSON      string           `json:"json"`
	Summary   string           `json:"summary"`
	Subject   string           `json:"subject"`
	Body      string           `json:"body"`
	Mailto    string           `json:"mailto"`
}

// Build validates d and assembles the outbound payload addressed to maintainer.
func Build(d drafts.Draft, id, maintainer string) (Submission, error) {
	if err := Validate(d); err != nil {
		return Submission{}, err
	}
	n, _ := parseDays(d.Duration)

	// Normalize writes into Days and Stops; copy them so d stays untouched.
	days := make([]models.Day, len(d.Days))
	for i, day := range d.Days {
		day.Stops = slices.Clone(day.Stops)
		days[i] = day
	}
	it := models.Itinerary{
		ID:              id,
		Title:           d.Title,
		Duration:        DurationLabel(n),
		States:          slices.Clone(d.States),
		Author:          d.Author,
		AuthorInstagram: d.AuthorInstagram,
		Description:     d.Description,
		Days:            days,
	}
	it.Normalize()

	raw, err := json.MarshalIndent(it, "", "  ")
	if err != nil {
		return Submission{}, fmt.Errorf("encode itinerary: %w", err)
	}

	s := Submission{
		Itinerary: it,
		JSON:      string(raw),
		Summary:   summary(it),
		Subject:   "New Itinerary: " + it.Title,
	}
	s.Body = s.Summary + "\n\n---\n\nComplete JSON Data (copy and paste this into itineraries.json):\n\n" + s.JSON
	s.Mailto = MailtoURL(maintainer, s.Subject, s.Body)
	return s, nil
}

func summary(it models.Itinerary) string {
	var b strings.Builder
	b.WriteString("New Itinerary Submission\n\n")
	fmt.Fprintf(&b, "Title: %s\n", it.Title)
	fmt.Fprintf(&b, "Duration: %s\n", it.Duration)
	fmt.Fprintf(&b, "States: %s\n", strings.Join(it.States, ", "))
	fmt.Fprintf(&b, "Author: %s\n", it.Author)
	if it.AuthorInstagram != "" {
		fmt.Fprintf(&b, "Instagram: %s\n", it.AuthorInstagram)
	}
	fmt.Fprintf(&b, "Description: %s\n\n", it.Description)
	fmt.Fprintf(&b, "Number of Days: %d", len(it.Days))
	return b.String()
}

func MailtoURL(to, subject, body string) string {
	return "mailto:" + to + "?subject=" + utils.EscapeComponent(subject) + "&body=" + utils.EscapeComponent(body)
}

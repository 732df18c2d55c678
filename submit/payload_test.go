package submit

import (
	"errors"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"tirthyatra/drafts"
	"tirthyatra/models"
)

func minimalDraft() drafts.Draft {
	d := drafts.New().ToggleState("Gujarat")
	d.Title = "Test"
	d.Duration = "1"
	d.Author = "A"
	d.Description = "D"
	return d
}

func TestBuildMinimal(t *testing.T) {
	s, err := Build(minimalDraft(), "1700000000000", DefaultMaintainer)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := models.Itinerary{
		ID:          "1700000000000",
		Title:       "Test",
		Duration:    "1 Day",
		States:      []string{"Gujarat"},
		Author:      "A",
		Description: "D",
		Days:        []models.Day{{Day: 1, Stops: []models.Stop{}}},
	}
	if !reflect.DeepEqual(s.Itinerary, want) {
		t.Errorf("payload = %+v\nwant %+v", s.Itinerary, want)
	}
	if !strings.Contains(s.JSON, `"stops": []`) || !strings.Contains(s.JSON, `"duration": "1 Day"`) {
		t.Errorf("unexpected JSON:\n%s", s.JSON)
	}
	if strings.Contains(s.JSON, "authorInstagram") {
		t.Error("empty instagram should be omitted")
	}
	if s.Subject != "New Itinerary: Test" {
		t.Errorf("subject = %q", s.Subject)
	}
	if !strings.HasPrefix(s.Body, s.Summary+"\n\n---\n\n") || !strings.HasSuffix(s.Body, s.JSON) {
		t.Errorf("unexpected body:\n%s", s.Body)
	}
}

func TestBuildDurationLabel(t *testing.T) {
	d := minimalDraft()
	d.Duration = "3"
	s, err := Build(d, "1", DefaultMaintainer)
	if err != nil {
		t.Fatal(err)
	}
	if s.Itinerary.Duration != "3 Days" {
		t.Errorf("duration = %q", s.Itinerary.Duration)
	}
}

func TestSummary(t *testing.T) {
	d, err := minimalDraft().ToggleState("Rajasthan").AddDay()
	if err != nil {
		t.Fatal(err)
	}
	d.AuthorInstagram = "https://instagram.com/a"
	d.Duration = "2"
	s, err := Build(d, "1", DefaultMaintainer)
	if err != nil {
		t.Fatal(err)
	}
	want := "New Itinerary Submission\n\n" +
		"Title: Test\n" +
		"Duration: 2 Days\n" +
		"States: Gujarat, Rajasthan\n" +
		"Author: A\n" +
		"Instagram: https://instagram.com/a\n" +
		"Description: D\n\n" +
		"Number of Days: 2"
	if s.Summary != want {
		t.Errorf("summary =\n%s\nwant\n%s", s.Summary, want)
	}

	s, _ = Build(minimalDraft(), "1", DefaultMaintainer)
	if strings.Contains(s.Summary, "Instagram:") {
		t.Error("instagram line shown without a profile")
	}
}

func TestMailtoRoundTrip(t *testing.T) {
	d := minimalDraft()
	d.Title = "Girnar & Palitana + more"
	s, err := Build(d, "1", DefaultMaintainer)
	if err != nil {
		t.Fatal(err)
	}
	prefix := "mailto:" + DefaultMaintainer + "?subject="
	if !strings.HasPrefix(s.Mailto, prefix) {
		t.Fatalf("unexpected mailto %q", s.Mailto)
	}
	if strings.Contains(s.Mailto, "+more") || strings.Contains(s.Mailto[len(prefix):], " ") {
		t.Errorf("mailto not fully escaped: %q", s.Mailto)
	}
	subject, body, ok := strings.Cut(s.Mailto[len(prefix):], "&body=")
	if !ok {
		t.Fatalf("no body in %q", s.Mailto)
	}
	if got, _ := url.PathUnescape(subject); got != s.Subject {
		t.Errorf("subject decodes to %q", got)
	}
	if got, _ := url.PathUnescape(body); got != s.Body {
		t.Errorf("body does not decode back")
	}
}

func TestValidate(t *testing.T) {
	d := minimalDraft()
	if err := Validate(d); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}

	empty := drafts.New()
	if err := Validate(empty); !errors.Is(err, ErrNoStates) {
		t.Errorf("expected ErrNoStates, got %v", err)
	}

	missing := drafts.New().ToggleState("Kerala")
	missing, _ = missing.AddStop(0)
	var mf *MissingFieldsError
	if err := Validate(missing); !errors.As(err, &mf) {
		t.Fatalf("expected MissingFieldsError, got %v", err)
	}
	want := []string{"title", "duration", "author", "description", "day 1 stop 1 name"}
	if !reflect.DeepEqual(mf.Fields, want) {
		t.Errorf("missing = %v, want %v", mf.Fields, want)
	}

	for _, bad := range []string{"abc", "0", "-2", "2.5"} {
		d := minimalDraft()
		d.Duration = bad
		if err := Validate(d); !errors.Is(err, ErrBadDuration) {
			t.Errorf("duration %q: expected ErrBadDuration, got %v", bad, err)
		}
	}
}

func TestIDSourceIsMonotonic(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	ids := NewIDSource()
	ids.now = func() time.Time { return now }

	got := []string{ids.Next(), ids.Next()}
	now = now.Add(-time.Second)
	got = append(got, ids.Next())
	want := []string{"1700000000000", "1700000000001", "1700000000002"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
}

func TestBuildLeavesDraftAlone(t *testing.T) {
	d := minimalDraft()
	d.Days = []models.Day{{Day: 1, Stops: []models.Stop{{Name: "Girnar", Type: models.StopTirth}}}, {Day: 2}}

	s, err := Build(d, "1", DefaultMaintainer)
	if err != nil {
		t.Fatal(err)
	}
	if d.Days[0].Stops[0].Facilities != nil || d.Days[1].Stops != nil {
		t.Errorf("Build wrote into the draft: %+v", d.Days)
	}
	if s.Itinerary.Days[0].Stops[0].Facilities == nil || s.Itinerary.Days[1].Stops == nil {
		t.Errorf("payload not normalized: %+v", s.Itinerary.Days)
	}
	s.Itinerary.States[0] = "Kerala"
	if d.States[0] != "Gujarat" {
		t.Error("payload shares states with the draft")
	}
}

func TestBuildRejectsNoDays(t *testing.T) {
	d := minimalDraft()
	d.Days = []models.Day{}
	if _, err := Build(d, "1", DefaultMaintainer); !errors.Is(err, ErrNoDays) {
		t.Errorf("expected ErrNoDays, got %v", err)
	}
}

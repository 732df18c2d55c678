package submit

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"tirthyatra/drafts"
)

// Form field names shared with the submit template.
func StopField(day, stop int, field string) string {
	return fmt.Sprintf("day.%d.stop.%d.%s", day, stop, field)
}

func StopCountField(day int) string {
	return fmt.Sprintf("day.%d.stops", day)
}

// DraftFromForm rebuilds the draft carried by a posted submission form. The
// whole draft travels with every post so typed text survives structural edits.
// Inputs that no draft operation accepts (an unknown stop type, say) are
// dropped and reported in the returned problems.
func DraftFromForm(form url.Values) (drafts.Draft, []error) {
	d := drafts.New()
	d.Title = form.Get("title")
	d.Duration = strings.TrimSpace(form.Get("duration"))
	d.Author = form.Get("author")
	d.AuthorInstagram = strings.TrimSpace(form.Get("authorInstagram"))
	d.Description = form.Get("description")
	d.CustomState = form.Get("customState")
	d.States = selectedStates(form["order"], form["states"])

	var problems []error
	days := atoi(form.Get("days"))
	if days > drafts.MaxDays {
		problems = append(problems, fmt.Errorf("%w; days after %d were dropped", drafts.ErrTooManyDays, drafts.MaxDays))
	}
	days = clamp(days, 1, drafts.MaxDays)
	for len(d.Days) < days {
		var err error
		if d, err = d.AddDay(); err != nil {
			problems = append(problems, err)
			break
		}
	}
	for i := 0; i < len(d.Days); i++ {
		stops := atoi(form.Get(StopCountField(i)))
		if stops > drafts.MaxStopsPerDay {
			problems = append(problems, fmt.Errorf("day %d: %w; stops after %d were dropped", i+1, drafts.ErrTooManyStops, drafts.MaxStopsPerDay))
		}
		stops = clamp(stops, 0, drafts.MaxStopsPerDay)
		for j := 0; j < stops; j++ {
			var err error
			if d, err = d.AddStop(i); err != nil {
				problems = append(problems, err)
				break
			}
			for _, field := range []string{drafts.FieldName, drafts.FieldType, drafts.FieldDescription, drafts.FieldMapsLink} {
				v, ok := form[StopField(i, j, field)]
				if !ok {
					continue
				}
				if d, err = d.UpdateStop(i, j, field, v[0]); err != nil {
					problems = append(problems, fmt.Errorf("day %d stop %d: %w", i+1, j+1, err))
				}
			}
			for _, f := range dedupe(form[StopField(i, j, "facilities")]) {
				if d, err = d.ToggleFacility(i, j, f); err != nil {
					problems = append(problems, fmt.Errorf("day %d stop %d: %w", i+1, j+1, err))
				}
			}
		}
	}
	return d, problems
}

// selectedStates keeps the selection order from the previous render and
// appends states that were ticked since.
func selectedStates(order, checked []string) []string {
	out := []string{}
	for _, s := range dedupe(order) {
		if slices.Contains(checked, s) {
			out = append(out, s)
		}
	}
	for _, s := range dedupe(checked) {
		if s != "" && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

func dedupe(in []string) []string {
	var out []string
	for _, s := range in {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func clamp(n, lo, hi int) int {
	return max(lo, min(n, hi))
}

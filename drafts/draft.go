// Package drafts holds the in-progress itinerary a visitor builds on the
// submission form.
//
// Every edit returns a new Draft and leaves the receiver alone. Only the slices
// on the path to the edited branch are copied; untouched days and stops are
// shared with the previous value.
package drafts

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"tirthyatra/models"
)

var (
	ErrLastDay         = errors.New("an itinerary needs at least one day")
	ErrNoSuchDay       = errors.New("no such day")
	ErrNoSuchStop      = errors.New("no such stop")
	ErrUnknownField    = errors.New("unknown stop field")
	ErrUnknownType     = errors.New("unknown stop type")
	ErrUnknownFacility = errors.New("unknown facility")
	ErrTooManyDays     = fmt.Errorf("an itinerary can have at most %d days", MaxDays)
	ErrTooManyStops    = fmt.Errorf("a day can have at most %d stops", MaxStopsPerDay)
)

// Upper bounds on the size of a draft.
const (
	MaxDays        = 60
	MaxStopsPerDay = 40
)

// Stop fields that UpdateStop can replace.
const (
	FieldName        = "name"
	FieldType        = "type"
	FieldDescription = "description"
	FieldMapsLink    = "mapsLink"
)

// SuggestedStates are offered as checkboxes on the form.
var SuggestedStates = []string{
	"Tamil Nadu", "Karnataka", "Maharashtra", "Rajasthan",
	"Gujarat", "Madhya Pradesh", "Kerala", "Andhra Pradesh",
}

type Draft struct {
	Title           string       `json:"title"`
	Duration        string       `json:"duration"` // number of days as typed
	States          []string     `json:"states"`
	CustomState     string       `json:"customState"`
	Author          string       `json:"author"`
	AuthorInstagram string       `json:"authorInstagram"`
	Description     string       `json:"description"`
	Days            []models.Day `json:"days"`
}

// New returns an empty draft with a single empty day.
func New() Draft {
	return Draft{
		States: []string{},
		Days:   []models.Day{{Day: 1, Stops: []models.Stop{}}},
	}
}

func NewStop() models.Stop {
	return models.Stop{Type: models.StopTirth, Facilities: []string{}}
}

func (d Draft) HasState(state string) bool {
	return slices.Contains(d.States, state)
}

// ToggleState selects state if it is not selected and deselects it otherwise.
func (d Draft) ToggleState(state string) Draft {
	d.States = toggle(d.States, state)
	return d
}

// AddCustomState selects the trimmed CustomState input and clears it. Blank or
// already selected values leave the draft as it is.
func (d Draft) AddCustomState() Draft {
	state := strings.TrimSpace(d.CustomState)
	if state == "" || d.HasState(state) {
		return d
	}
	d.States = append(slices.Clip(d.States), state)
	d.CustomState = ""
	return d
}

func (d Draft) RemoveState(state string) Draft {
	if !d.HasState(state) {
		return d
	}
	d.States = without(d.States, state)
	return d
}

func (d Draft) AddDay() (Draft, error) {
	if len(d.Days) >= MaxDays {
		return d, ErrTooManyDays
	}
	d.Days = append(slices.Clip(d.Days), models.Day{Day: len(d.Days) + 1, Stops: []models.Stop{}})
	return d, nil
}

// RemoveDay drops the day at index i and renumbers the rest 1..N.
func (d Draft) RemoveDay(i int) (Draft, error) {
	if i < 0 || i >= len(d.Days) {
		return d, ErrNoSuchDay
	}
	if len(d.Days) == 1 {
		return d, ErrLastDay
	}
	days := make([]models.Day, 0, len(d.Days)-1)
	for j, day := range d.Days {
		if j == i {
			continue
		}
		day.Day = len(days) + 1
		days = append(days, day)
	}
	d.Days = days
	return d, nil
}

func (d Draft) AddStop(day int) (Draft, error) {
	return d.withDay(day, func(dd models.Day) (models.Day, error) {
		if len(dd.Stops) >= MaxStopsPerDay {
			return dd, ErrTooManyStops
		}
		dd.Stops = append(slices.Clip(dd.Stops), NewStop())
		return dd, nil
	})
}

func (d Draft) RemoveStop(day, stop int) (Draft, error) {
	return d.withDay(day, func(dd models.Day) (models.Day, error) {
		if stop < 0 || stop >= len(dd.Stops) {
			return dd, ErrNoSuchStop
		}
		dd.Stops = slices.Delete(slices.Clone(dd.Stops), stop, stop+1)
		return dd, nil
	})
}

// UpdateStop replaces one scalar field of a stop.
func (d Draft) UpdateStop(day, stop int, field, value string) (Draft, error) {
	return d.withStop(day, stop, func(s models.Stop) (models.Stop, error) {
		switch field {
		case FieldName:
			s.Name = value
		case FieldType:
			if !slices.Contains(models.StopTypes, value) {
				return s, ErrUnknownType
			}
			s.Type = value
		case FieldDescription:
			s.Description = value
		case FieldMapsLink:
			s.MapsLink = value
		default:
			return s, ErrUnknownField
		}
		return s, nil
	})
}

func (d Draft) ToggleFacility(day, stop int, facility string) (Draft, error) {
	if !slices.Contains(models.Facilities, facility) {
		return d, ErrUnknownFacility
	}
	return d.withStop(day, stop, func(s models.Stop) (models.Stop, error) {
		s.Facilities = toggle(s.Facilities, facility)
		return s, nil
	})
}

// Reset discards everything typed so far.
func (d Draft) Reset() Draft {
	return New()
}

// StopCount totals the stops over all days.
func (d Draft) StopCount() int {
	n := 0
	for _, day := range d.Days {
		n += len(day.Stops)
	}
	return n
}

func (d Draft) withDay(i int, fn func(models.Day) (models.Day, error)) (Draft, error) {
	if i < 0 || i >= len(d.Days) {
		return d, ErrNoSuchDay
	}
	day, err := fn(d.Days[i])
	if err != nil {
		return d, err
	}
	days := slices.Clone(d.Days)
	days[i] = day
	d.Days = days
	return d, nil
}

func (d Draft) withStop(day, stop int, fn func(models.Stop) (models.Stop, error)) (Draft, error) {
	return d.withDay(day, func(dd models.Day) (models.Day, error) {
		if stop < 0 || stop >= len(dd.Stops) {
			return dd, ErrNoSuchStop
		}
		s, err := fn(dd.Stops[stop])
		if err != nil {
			return dd, err
		}
		stops := slices.Clone(dd.Stops)
		stops[stop] = s
		dd.Stops = stops
		return dd, nil
	})
}

func toggle(set []string, v string) []string {
	if slices.Contains(set, v) {
		return without(set, v)
	}
	return append(slices.Clip(set), v)
}

func without(set []string, v string) []string {
	out := make([]string, 0, len(set))
	for _, s := range set {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}

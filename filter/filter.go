// Package filter narrows the itinerary list by search text, state and duration.
package filter

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"tirthyatra/models"
)

// DurationFiveOrMore matches every itinerary lasting five days or longer.
const DurationFiveOrMore = "5+"

// Criteria holds the three list filters. Zero values match everything.
type Criteria struct {
	Search   string
	State    string
	Duration string
}

func FromQuery(q url.Values) Criteria {
	return Criteria{
		Search:   q.Get("search"),
		State:    q.Get("state"),
		Duration: q.Get("duration"),
	}
}

// Empty reports whether no filter is active.
func (c Criteria) Empty() bool {
	return c.Search == "" && c.State == "" && c.Duration == ""
}

// Apply returns the records matching every criterion, in their original order.
func Apply(records []models.Itinerary, c Criteria) []models.Itinerary {
	out := make([]models.Itinerary, 0, len(records))
	search := strings.ToLower(c.Search)
	for _, it := range records {
		if matchesSearch(it, search) && MatchesState(it, c.State) && MatchesDuration(it, c.Duration) {
			out = append(out, it)
		}
	}
	return out
}

// MatchesSearch is a case-insensitive substring test over the title, the
// description and every stop name.
func MatchesSearch(it models.Itinerary, term string) bool {
	return matchesSearch(it, strings.ToLower(term))
}

func matchesSearch(it models.Itinerary, lowered string) bool {
	if lowered == "" {
		return true
	}
	if strings.Contains(strings.ToLower(it.Title), lowered) ||
		strings.Contains(strings.ToLower(it.Description), lowered) {
		return true
	}
	for _, day := range it.Days {
		for _, stop := range day.Stops {
			if strings.Contains(strings.ToLower(stop.Name), lowered) {
				return true
			}
		}
	}
	return false
}

func MatchesState(it models.Itinerary, state string) bool {
	if state == "" {
		return true
	}
	for _, s := range it.States {
		if s == state {
			return true
		}
	}
	return false
}

func MatchesDuration(it models.Itinerary, duration string) bool {
	if duration == "" {
		return true
	}
	n := ParseDuration(it.Duration)
	if duration == DurationFiveOrMore {
		return n >= 5
	}
	return strconv.Itoa(n) == duration
}

// ParseDuration reads the first run of digits in a label such as "2 Days".
// Labels without digits parse as 0; a run too long for an int saturates.
func ParseDuration(label string) int {
	start := strings.IndexFunc(label, isDigit)
	if start < 0 {
		return 0
	}
	end := start
	for end < len(label) && isDigit(rune(label[end])) {
		end++
	}
	n, err := strconv.Atoi(label[start:end])
	if err != nil {
		// only overflow gets here
		return math.MaxInt
	}
	return n
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Heading is the title shown above the result grid.
func Heading(matched, total int) string {
	if matched == total {
		return "Featured Itineraries"
	}
	suffix := ""
	if matched != 1 {
		suffix = "ies"
	}
	return "Found " + strconv.Itoa(matched) + " Itinerary" + suffix
}

// StateOptions are the states offered by the list filter.
var StateOptions = []string{
	"Tamil Nadu",
	"Karnataka",
	"Kerala",
	"Maharashtra",
	"Rajasthan",
	"Gujarat",
	"Madhya Pradesh",
}

type Option struct {
	Value string
	Label string
}

var DurationOptions = []Option{
	{"1", "1 Day"},
	{"2", "2 Days"},
	{"3", "3 Days"},
	{"4", "4 Days"},
	{DurationFiveOrMore, "5+ Days"},
}

package filter

import (
	"math"
	"net/url"
	"testing"

	"tirthyatra/models"
)

func sample() []models.Itinerary {
	return []models.Itinerary{
		{
			ID: "tn", Title: "Northern Tamil Nadu Tirths", Duration: "2 Days",
			States: []string{"Tamil Nadu"}, Description: "Hill shrines",
			Days: []models.Day{{Day: 1, Stops: []models.Stop{{Name: "Ponnur Malai"}}}},
		},
		{
			ID: "ka", Title: "Shravanabelagola", Duration: "3 Days",
			States: []string{"Karnataka"}, Description: "Bahubali and basadis",
		},
		{
			ID: "gj", Title: "Palitana", Duration: "1 Day",
			States: []string{"Gujarat"}, Description: "Shatrunjay climb",
		},
		{
			ID: "rj", Title: "Marble temples", Duration: "6 Days",
			States: []string{"Rajasthan", "Gujarat"}, Description: "Ranakpur and Dilwara",
		},
		{
			ID: "long", Title: "Grand yatra", Duration: "Twelve days (approx 12)",
			States: []string{"Maharashtra"}, Description: "Everything",
		},
		{
			ID: "vague", Title: "Flexible", Duration: "A weekend",
			States: []string{"Kerala"}, Description: "No fixed length",
		},
	}
}

func ids(records []models.Itinerary) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"2 Days", 2},
		{"1 Day", 1},
		{"10 Days", 10},
		{"About 3-4 days", 3},
		{"A weekend", 0},
		{"", 0},
		{"99999999999999999999999 Days", math.MaxInt},
	}
	for _, tt := range tests {
		if got := ParseDuration(tt.label); got != tt.want {
			t.Errorf("ParseDuration(%q) = %d, want %d", tt.label, got, tt.want)
		}
	}
}

func TestHugeDurationIsFiveOrMore(t *testing.T) {
	it := models.Itinerary{Duration: "99999999999999999999999 Days"}
	if !MatchesDuration(it, DurationFiveOrMore) {
		t.Error("an overflowing duration should count as 5+")
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{"empty keeps everything in order", Criteria{}, []string{"tn", "ka", "gj", "rj", "long", "vague"}},
		{"search title case-insensitive", Criteria{Search: "PALI"}, []string{"gj"}},
		{"search description", Criteria{Search: "basadis"}, []string{"ka"}},
		{"search stop name", Criteria{Search: "ponnur"}, []string{"tn"}},
		{"state exact", Criteria{State: "Gujarat"}, []string{"gj", "rj"}},
		{"state is case-sensitive", Criteria{State: "gujarat"}, []string{}},
		{"duration exact", Criteria{Duration: "2"}, []string{"tn"}},
		{"duration five or more", Criteria{Duration: "5+"}, []string{"rj", "long"}},
		{"no digits parses as zero", Criteria{Duration: "0"}, []string{"vague"}},
		{"combined", Criteria{Search: "ran", State: "Gujarat", Duration: "5+"}, []string{"rj"}},
		{"no match", Criteria{Search: "sammed shikhar"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Apply(sample(), tt.c))
			if !equal(got, tt.want) {
				t.Errorf("Apply(%+v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestApplyIsIntersectionOfSingleFilters(t *testing.T) {
	records := sample()
	searches := []string{"", "a", "ran", "hill"}
	states := []string{"", "Gujarat", "Tamil Nadu"}
	durations := []string{"", "1", "2", "5+"}

	for _, s := range searches {
		for _, st := range states {
			for _, d := range durations {
				combined := ids(Apply(records, Criteria{Search: s, State: st, Duration: d}))

				bySearch := toSet(Apply(records, Criteria{Search: s}))
				byState := toSet(Apply(records, Criteria{State: st}))
				byDuration := toSet(Apply(records, Criteria{Duration: d}))
				var want []string
				for _, r := range records {
					if bySearch[r.ID] && byState[r.ID] && byDuration[r.ID] {
						want = append(want, r.ID)
					}
				}
				if want == nil {
					want = []string{}
				}
				if !equal(combined, want) {
					t.Errorf("search=%q state=%q duration=%q: got %v, want %v", s, st, d, combined, want)
				}
			}
		}
	}
}

func toSet(records []models.Itinerary) map[string]bool {
	m := make(map[string]bool, len(records))
	for _, r := range records {
		m[r.ID] = true
	}
	return m
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	records := sample()
	Apply(records, Criteria{Search: "x"})
	if len(records) != 6 || records[0].ID != "tn" {
		t.Error("input slice changed")
	}
}

func TestHeading(t *testing.T) {
	tests := []struct {
		matched, total int
		want           string
	}{
		{5, 5, "Featured Itineraries"},
		{0, 0, "Featured Itineraries"},
		{1, 5, "Found 1 Itinerary"},
		{0, 5, "Found 0 Itineraryies"},
		{3, 5, "Found 3 Itineraryies"},
	}
	for _, tt := range tests {
		if got := Heading(tt.matched, tt.total); got != tt.want {
			t.Errorf("Heading(%d, %d) = %q, want %q", tt.matched, tt.total, got, tt.want)
		}
	}
}

func TestFromQuery(t *testing.T) {
	q := url.Values{"search": {"girnar"}, "state": {"Gujarat"}, "duration": {"5+"}}
	c := FromQuery(q)
	if c.Search != "girnar" || c.State != "Gujarat" || c.Duration != "5+" {
		t.Errorf("unexpected criteria %+v", c)
	}
	if c.Empty() || !FromQuery(url.Values{}).Empty() {
		t.Error("Empty reported wrongly")
	}
}

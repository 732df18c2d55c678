// Package autocom suggests place names for the search box.
package autocom

import (
	"slices"
	"sort"
	"strings"

	"tirthyatra/models"
)

// Suggestion is a place name and the itinerary it was first seen in.
type Suggestion struct {
	Name        string `json:"name"`
	ItineraryID string `json:"itineraryId"`
}

type entry struct {
	key string // lowered name
	Suggestion
}

// Index answers prefix lookups over itinerary titles and stop names. It is
// built once and read concurrently.
type Index struct {
	entries []entry
}

func NewIndex(records []models.Itinerary) *Index {
	seen := map[string]bool{}
	var entries []entry
	add := func(name, id string) {
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		entries = append(entries, entry{key: key, Suggestion: Suggestion{Name: name, ItineraryID: id}})
	}
	for _, it := range records {
		add(it.Title, it.ID)
		for _, day := range it.Days {
			for _, stop := range day.Stops {
				add(stop.Name, it.ID)
			}
		}
	}
	slices.SortFunc(entries, func(a, b entry) int { return strings.Compare(a.key, b.key) })
	return &Index{entries: entries}
}

// Search returns up to limit names starting with query, ignoring case, in
// lexical order. An empty query matches nothing.
func (ix *Index) Search(query string, limit int) []Suggestion {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []Suggestion{}
	if q == "" || limit <= 0 {
		return out
	}
	i := sort.Search(len(ix.entries), func(i int) bool { return ix.entries[i].key >= q })
	for ; i < len(ix.entries) && len(out) < limit; i++ {
		if !strings.HasPrefix(ix.entries[i].key, q) {
			break
		}
		out = append(out, ix.entries[i].Suggestion)
	}
	return out
}

// Names lists every indexed name in lexical order.
func (ix *Index) Names() []string {
	names := make([]string, len(ix.entries))
	for i, e := range ix.entries {
		names[i] = e.Name
	}
	return names
}

// Package itinerary serves the list and detail pages and their JSON API.
package itinerary

import (
	"log"
	"net/http"

	"tirthyatra/autocom"
	"tirthyatra/db"
	"tirthyatra/filter"
	"tirthyatra/models"
	"tirthyatra/share"
	"tirthyatra/views"

	"github.com/julienschmidt/httprouter"
)

// SiteURL is the public address used in share links. When empty, the address
// is taken from the request.
var SiteURL string

// Suggestions feeds the search box; main builds it once the records are loaded.
var Suggestions = autocom.NewIndex(nil)

type listPage struct {
	Criteria        filter.Criteria
	StateOptions    []string
	DurationOptions []filter.Option
	Heading         string
	Itineraries     []models.Itinerary
	Places          []string
}

type detailPage struct {
	Itinerary models.Itinerary
	ShareURL  string
	PrintPath string
	QRPath    string
}

// GET /
func ListItineraries(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	all := db.Itineraries.All()
	criteria := filter.FromQuery(r.URL.Query())
	matched := filter.Apply(all, criteria)

	views.Render(w, http.StatusOK, views.List, "Jain Tirth Yatra", listPage{
		Criteria:        criteria,
		StateOptions:    filter.StateOptions,
		DurationOptions: filter.DurationOptions,
		Heading:         filter.Heading(len(matched), len(all)),
		Itineraries:     matched,
		Places:          Suggestions.Names(),
	})
}

// GET /itinerary/:id
func ShowItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	it, ok := lookup(w, r, ps)
	if !ok {
		return
	}
	base := "/itinerary/" + ps.ByName("id")
	views.Render(w, http.StatusOK, views.Detail, it.Title, detailPage{
		Itinerary: it,
		ShareURL:  share.WhatsAppURL(it.Title, pageURL(r, it.ID)),
		PrintPath: base + "/print.pdf",
		QRPath:    base + "/share.png",
	})
}

// NotFound renders the not-found page for unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	views.Render(w, http.StatusNotFound, views.NotFound, "Not Found", notFoundPage{})
}

type notFoundPage struct {
	ID string
}

func lookup(w http.ResponseWriter, r *http.Request, ps httprouter.Params) (models.Itinerary, bool) {
	id := ps.ByName("id")
	it, ok := db.Itineraries.Find(id)
	if !ok {
		log.Printf("[itinerary] not found id=%q path=%s", id, r.URL.Path)
		views.Render(w, http.StatusNotFound, views.NotFound, "Not Found", notFoundPage{ID: id})
	}
	return it, ok
}

func pageURL(r *http.Request, id string) string {
	if SiteURL != "" {
		return share.PageURL(SiteURL, id)
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return share.PageURL(scheme+"://"+r.Host, id)
}

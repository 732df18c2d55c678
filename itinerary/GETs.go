package itinerary

import (
	"net/http"
	"strconv"

	"tirthyatra/db"
	"tirthyatra/filter"
	"tirthyatra/models"
	"tirthyatra/utils"

	"github.com/julienschmidt/httprouter"
)

// SearchResult is the JSON twin of the list page.
type SearchResult struct {
	Heading     string             `json:"heading"`
	Count       int                `json:"count"`
	Total       int                `json:"total"`
	Itineraries []models.Itinerary `json:"itineraries"`
}

// GET /api/itineraries
func GetItineraries(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, db.Itineraries.All())
}

// GET /api/itineraries/search
func SearchItineraries(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	all := db.Itineraries.All()
	matched := filter.Apply(all, filter.FromQuery(r.URL.Query()))
	utils.RespondWithJSON(w, http.StatusOK, SearchResult{
		Heading:     filter.Heading(len(matched), len(all)),
		Count:       len(matched),
		Total:       len(all),
		Itineraries: matched,
	})
}

// GET /api/itineraries/all/:id
func GetItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	it, ok := db.Itineraries.Find(ps.ByName("id"))
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, it)
}

// GET /api/itineraries/ids lists every id so a static build can pre-render
// each detail page.
func GetItineraryIDs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ids": db.Itineraries.IDs()})
}

// GET /api/itineraries/suggest?q=pon&limit=5
func SuggestPlaces(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 50 {
			utils.RespondWithError(w, http.StatusBadRequest, "limit must be between 1 and 50")
			return
		}
		limit = n
	}
	utils.RespondWithJSON(w, http.StatusOK, Suggestions.Search(r.URL.Query().Get("q"), limit))
}

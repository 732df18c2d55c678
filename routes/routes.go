package routes

import (
	"net/http"

	"tirthyatra/itinerary"
	"tirthyatra/middleware"
	"tirthyatra/ratelim"
	"tirthyatra/submit"

	"github.com/julienschmidt/httprouter"
)

func AddItineraryRoutes(router *httprouter.Router) {
	router.GET("/", itinerary.ListItineraries)                         //List with filters
	router.GET("/itinerary/:id", itinerary.ShowItinerary)              //Detail page
	router.GET("/itinerary/:id/share.png", itinerary.SharePNG)         //Share QR code
	router.GET("/itinerary/:id/print.pdf", itinerary.PrintItinerary)   //Printable copy
	router.GET("/api/itineraries", itinerary.GetItineraries)           //Fetch all itineraries
	router.GET("/api/itineraries/search", itinerary.SearchItineraries) //Search itineraries
	router.GET("/api/itineraries/all/:id", itinerary.GetItinerary)     //Fetch a single itinerary
	router.GET("/api/itineraries/ids", itinerary.GetItineraryIDs)      //Every id, for static builds
	router.GET("/api/itineraries/suggest", itinerary.SuggestPlaces)    //Place names for the search box
}

// Edits are structural clicks and get a much looser limit than submissions.
// A throttled form post re-renders the form rather than dropping the draft.
func AddSubmitRoutes(router *httprouter.Router, h *submit.Handler, submitLimiter, editLimiter *ratelim.RateLimiter) {
	throttled := middleware.Session(h.Throttled)
	router.GET("/submit", middleware.Session(h.ShowForm))
	router.POST("/submit/edit", editLimiter.LimitOr(middleware.Session(h.Edit), throttled))
	router.POST("/submit", submitLimiter.LimitOr(middleware.Session(h.Submit), throttled))
	router.POST("/submit/reset", middleware.Session(h.Reset))

	router.POST("/api/submissions", submitLimiter.Limit(h.CreateSubmission))
	router.POST("/api/drafts/apply", editLimiter.Limit(h.ApplyOps))
}

func AddUtilityRoutes(router *httprouter.Router) {
	router.GET("/health", Health)
	router.NotFound = http.HandlerFunc(itinerary.NotFound)
}

// Health is a simple health check handler.
func Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Write([]byte("200"))
}

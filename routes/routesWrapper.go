package routes

import (
	"tirthyatra/ratelim"
	"tirthyatra/submit"

	"github.com/julienschmidt/httprouter"
)

func RoutesWrapper(router *httprouter.Router, submissions *submit.Handler, submitLimiter, editLimiter *ratelim.RateLimiter) {
	AddItineraryRoutes(router)
	AddSubmitRoutes(router, submissions, submitLimiter, editLimiter)
	AddUtilityRoutes(router)
}

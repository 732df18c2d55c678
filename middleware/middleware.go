package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"tirthyatra/globals"
	"tirthyatra/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

// Session makes sure the visitor carries a session cookie and stores its id
// in the request context.
func Session(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id := ""
		if c, err := r.Cookie(globals.SessionCookie); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				id = c.Value
			}
		}
		if id == "" {
			id = utils.GetUUID()
			http.SetCookie(w, &http.Cookie{
				Name:     globals.SessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), globals.SessionKey, id)
		next(w, r.WithContext(ctx), ps)
	}
}

// SecurityHeaders applies the recommended HTTP security headers. The submitted
// page navigates to a mailto: URL, so form-action and navigation stay open.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logging logs each request method, path, status, remote address, and duration.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d from %s – %v", r.Method, r.RequestURI, rec.status, r.RemoteAddr, time.Since(start))
	})
}

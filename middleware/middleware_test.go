package middleware

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"tirthyatra/globals"
	"tirthyatra/utils"

	"github.com/julienschmidt/httprouter"
)

func TestSessionIssuesCookie(t *testing.T) {
	var seen string
	h := Session(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		seen = utils.SessionID(r.Context())
	})

	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, "/submit", nil), nil)
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != globals.SessionCookie || !cookies[0].HttpOnly {
		t.Fatalf("unexpected cookies %+v", cookies)
	}
	if seen == "" || seen != cookies[0].Value {
		t.Errorf("context session %q, cookie %q", seen, cookies[0].Value)
	}
}

func TestSessionKeepsValidCookie(t *testing.T) {
	const id = "8b7c1f0e-4d2a-4b7e-9a51-3f2d6c0e1a10"
	var seen string
	h := Session(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		seen = utils.SessionID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/submit", nil)
	req.AddCookie(&http.Cookie{Name: globals.SessionCookie, Value: id})
	rr := httptest.NewRecorder()
	h(rr, req, nil)
	if seen != id || len(rr.Result().Cookies()) != 0 {
		t.Errorf("session %q, cookies %+v", seen, rr.Result().Cookies())
	}

	req = httptest.NewRequest(http.MethodGet, "/submit", nil)
	req.AddCookie(&http.Cookie{Name: globals.SessionCookie, Value: "not-a-uuid"})
	rr = httptest.NewRecorder()
	h(rr, req, nil)
	if seen == "not-a-uuid" || len(rr.Result().Cookies()) != 1 {
		t.Error("forged session id accepted")
	}
}

func TestSecurityHeadersAndLogging(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	h := Logging(SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/itinerary/x", nil))

	if rr.Header().Get("X-Frame-Options") != "DENY" || rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Errorf("missing headers %v", rr.Header())
	}
	if !strings.Contains(buf.String(), "GET /itinerary/x 418") {
		t.Errorf("log line = %q", buf.String())
	}
}

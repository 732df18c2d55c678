package ratelim

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
)

func TestLimitPerIP(t *testing.T) {
	rl := NewRateLimiter(6, 2)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	ok := func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusNoContent)
	}
	h := rl.Limit(ok)
	hit := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		h(rr, req, nil)
		return rr.Code
	}

	if hit("10.0.0.1:1000") != http.StatusNoContent || hit("10.0.0.1:1001") != http.StatusNoContent {
		t.Fatal("burst should be allowed")
	}
	if got := hit("10.0.0.1:1002"); got != http.StatusTooManyRequests {
		t.Errorf("third request: status = %d", got)
	}
	if got := hit("10.0.0.2:1000"); got != http.StatusNoContent {
		t.Errorf("other client throttled: %d", got)
	}

	now = now.Add(10 * time.Second)
	if got := hit("10.0.0.1:1003"); got != http.StatusNoContent {
		t.Errorf("token should refill after 10s: %d", got)
	}
}

func TestIdleVisitorsEvicted(t *testing.T) {
	rl := NewRateLimiter(60, 1)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	now = now.Add(5 * time.Minute)
	rl.Allow("b")
	now = now.Add(6 * time.Minute)
	rl.Allow("c")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.visitors["a"]; ok {
		t.Error("idle visitor kept")
	}
	if _, ok := rl.visitors["b"]; !ok {
		t.Error("recent visitor dropped")
	}
}

func TestLimitOr(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	var served, throttled int
	h := rl.LimitOr(
		func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) { served++ },
		func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) { throttled++ },
	)
	for i := 0; i < 3; i++ {
		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/submit", nil), nil)
	}
	if served != 1 || throttled != 2 {
		t.Errorf("served=%d throttled=%d", served, throttled)
	}
}

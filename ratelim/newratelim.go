package ratelim

import (
	"log"
	"net/http"
	"sync"
	"time"

	"tirthyatra/utils"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/time/rate"
)

// idleAfter is how long a visitor may stay quiet before its limiter is dropped.
const idleAfter = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter allows perMinute requests a minute per IP, with bursts of up
// to burst requests.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		now:      time.Now,
	}
}

// Get or create a rate limiter for an IP
func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= idleAfter {
		rl.sweepLocked(now)
	}

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

func (rl *RateLimiter) sweepLocked(now time.Time) {
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) >= idleAfter {
			delete(rl.visitors, ip)
		}
	}
	rl.lastSweep = now
}

// Allow reports whether ip may make another request now.
func (rl *RateLimiter) Allow(ip string) bool {
	return rl.getLimiter(ip).AllowN(rl.now(), 1)
}

// Middleware to enforce rate limiting
func (rl *RateLimiter) Limit(next httprouter.Handle) httprouter.Handle {
	return rl.LimitOr(next, func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		http.Error(w, "Too many requests. Please try again later.", http.StatusTooManyRequests)
	})
}

// LimitOr hands throttled requests to throttled instead of next, so a page
// can answer with something better than a bare 429.
func (rl *RateLimiter) LimitOr(next, throttled httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ip := utils.ClientIP(r)
		if !rl.Allow(ip) {
			log.Printf("[ratelim] throttled ip=%s path=%s", ip, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			throttled(w, r, ps)
			return
		}
		next(w, r, ps)
	}
}

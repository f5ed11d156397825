package ratelim

import (
	"net/http"
	"sync"
	"time"

	"orrery/utils"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP. It is process-wide and
// resets on restart; that is acceptable for its advisory purpose.
type RateLimiter struct {
	visitors map[string]*rate.Limiter
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	ttl      time.Duration
}

// NewRateLimiter allows 5 requests per second with a small burst, the
// general API limiter.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*rate.Limiter),
		limit:    5,
		burst:    10,
		ttl:      10 * time.Minute,
	}
}

// NewRegistrationLimiter matches the registration window: 3 attempts per IP
// per hour.
func NewRegistrationLimiter() *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*rate.Limiter),
		limit:    rate.Every(time.Hour / 3),
		burst:    3,
		ttl:      time.Hour,
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, exists := rl.visitors[ip]; exists {
		return limiter
	}

	limiter := rate.NewLimiter(rl.limit, rl.burst)
	rl.visitors[ip] = limiter

	// evict after the window so the map cannot grow unbounded
	go func() {
		time.Sleep(rl.ttl)
		rl.mu.Lock()
		delete(rl.visitors, ip)
		rl.mu.Unlock()
	}()

	return limiter
}

// Limit enforces the per-IP budget.
func (rl *RateLimiter) Limit(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		limiter := rl.getLimiter(utils.ClientIP(r))
		if !limiter.Allow() {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next(w, r, ps)
	}
}

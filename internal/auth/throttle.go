package auth

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"tourismBooking/internal/apperrors"
)

// LoginThrottle limits login attempts per client key (the client IP).
type LoginThrottle struct {
	limit rate.Limit
	burst int
	idle  time.Duration

	mu        sync.Mutex
	limiters  map[string]*throttleEntry
	lastSweep time.Time
	now       func() time.Time
}

type throttleEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginThrottle allows perSecond attempts per key with the given burst.
// A non-positive perSecond disables throttling.
func NewLoginThrottle(perSecond float64, burst int) *LoginThrottle {
	if burst <= 0 {
		burst = 1
	}
	return &LoginThrottle{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		idle:     10 * time.Minute,
		limiters: map[string]*throttleEntry{},
		now:      time.Now,
	}
}

// Allow reports whether key may attempt a login now, consuming a token if so.
func (t *LoginThrottle) Allow(key string) bool {
	if t == nil || t.limit <= 0 {
		return true
	}
	now := t.now()
	t.mu.Lock()
	defer t.mu.Unlock()

	if now.Sub(t.lastSweep) > t.idle {
		for k, e := range t.limiters {
			if now.Sub(e.lastSeen) > t.idle {
				delete(t.limiters, k)
			}
		}
		t.lastSweep = now
	}

	e, ok := t.limiters[key]
	if !ok {
		e = &throttleEntry{limiter: rate.NewLimiter(t.limit, t.burst)}
		t.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// Check is Allow reporting a refusal as apperrors.ErrRateLimited.
func (t *LoginThrottle) Check(key string) error {
	if !t.Allow(key) {
		return fmt.Errorf("login from %s: %w", key, apperrors.ErrRateLimited)
	}
	return nil
}

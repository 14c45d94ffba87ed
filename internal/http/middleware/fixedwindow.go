// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements a fixed-window attempt limiter for the verification
// endpoints. Unlike the token-bucket limiter in ratelimit.go, which smooths
// sustained traffic, this limiter counts discrete attempts within an absolute
// window: a caller gets at most N attempts per window, and the counter resets
// only when the window expires. That shape matches code-guessing protection,
// where what matters is the total number of tries, not the request rate.
package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// windowEntry tracks one caller's attempts within the current window.
type windowEntry struct {
	windowStart time.Time
	count       int
}

// FixedWindowLimiter allows up to maxAttempts per window per key.
//
// State is process-local and held in a mutex-guarded map. Expired entries are
// evicted opportunistically during lookups, in the same style as the
// token-bucket limiter's visitor GC. Safe for concurrent use.
type FixedWindowLimiter struct {
	window      time.Duration
	maxAttempts int
	keyFn       keyFunc

	mu       sync.Mutex
	entries  map[string]*windowEntry
	cleanupN uint64

	// now is swappable for tests.
	now func() time.Time
}

// NewFixedWindowLimiter constructs a limiter allowing maxAttempts per window,
// keyed by keyFn. maxAttempts <= 0 is coerced to 1; window <= 0 defaults to
// 15 minutes.
func NewFixedWindowLimiter(window time.Duration, maxAttempts int, keyFn keyFunc) *FixedWindowLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &FixedWindowLimiter{
		window:      window,
		maxAttempts: maxAttempts,
		keyFn:       keyFn,
		entries:     make(map[string]*windowEntry),
		now:         time.Now,
	}
}

// Allow records one attempt for key and reports whether it is permitted.
// The second return value is the number of seconds until the window resets,
// meaningful only on denial.
//
// Semantics:
//   - no record, or the recorded window has expired: a fresh window starts
//     with count 1 and the attempt is allowed;
//   - count below the threshold: the count increments and the attempt is
//     allowed;
//   - count at or above the threshold: the attempt is denied and the count is
//     left as-is. Denied attempts do not extend the window.
func (fl *FixedWindowLimiter) Allow(key string) (bool, int) {
	now := fl.now()

	fl.mu.Lock()
	defer fl.mu.Unlock()

	fl.cleanupN++
	if fl.cleanupN >= 5000 {
		for k, e := range fl.entries {
			if now.Sub(e.windowStart) >= fl.window {
				delete(fl.entries, k)
			}
		}
		fl.cleanupN = 0
	}

	e, ok := fl.entries[key]
	if !ok || now.Sub(e.windowStart) >= fl.window {
		fl.entries[key] = &windowEntry{windowStart: now, count: 1}
		return true, 0
	}

	if e.count < fl.maxAttempts {
		e.count++
		return true, 0
	}

	retry := int(e.windowStart.Add(fl.window).Sub(now).Seconds())
	if retry < 1 {
		retry = 1
	}
	return false, retry
}

// Handler returns a Gin middleware enforcing the fixed-window limit.
//
// Denied requests receive a 429 with the standard error envelope and a
// Retry-After header set to the remaining window in seconds.
func (fl *FixedWindowLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, retry := fl.Allow(fl.keyFn(c))
		if ok {
			c.Next()
			return
		}

		c.Header("Retry-After", strconv.Itoa(retry))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"request_id": c.Writer.Header().Get("X-Request-ID"),
			"code":       "rate_limited",
			"message":    "too many attempts, try again later",
		})
	}
}

package server

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rgehrsitz/goalplan/internal/session"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// DefaultRateLimit is the default rate limit per minute
	DefaultRateLimit = 120
	// DefaultBurstSize is the default burst size
	DefaultBurstSize = 20
	// CleanupInterval is the interval for cleaning up stale limiters
	CleanupInterval = 5 * time.Minute
	// LimiterTTL is the time-to-live for inactive limiters
	LimiterTTL = 10 * time.Minute
)

// RateLimiter manages per-caller rate limiting. Callers are keyed by user
// id when one is sent and by client IP otherwise.
type RateLimiter struct {
	limiters          map[string]*limiterEntry
	mu                sync.Mutex
	requestsPerMinute int
	rateLimit         float64
	burstSize         int
	stopCh            chan struct{}
	stopOnce          sync.Once
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiterWithConfig creates a RateLimiter with custom configuration
func NewRateLimiterWithConfig(requestsPerMinute int, burstSize int) *RateLimiter {
	rl := &RateLimiter{
		limiters:          make(map[string]*limiterEntry),
		requestsPerMinute: requestsPerMinute,
		rateLimit:         float64(requestsPerMinute) / 60.0, // Convert to per-second
		burstSize:         burstSize,
		stopCh:            make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// Allow checks if a request from the given caller is allowed and returns
// the tokens left afterwards
func (r *RateLimiter) Allow(key string) (bool, int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.limiters[key]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(r.rateLimit), r.burstSize)}
		r.limiters[key] = entry
	}
	entry.lastSeen = time.Now()

	allowed := entry.limiter.Allow()
	remaining := int(entry.limiter.Tokens())
	if remaining < 0 {
		remaining = 0
	}
	return allowed, remaining
}

// retryAfter estimates the wait until one token is available
func (r *RateLimiter) retryAfter() int {
	secs := int(1 / r.rateLimit)
	if secs < 1 {
		secs = 1
	}
	return secs
}

func (r *RateLimiter) cleanup() {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep(time.Now())
		case <-r.stopCh:
			return
		}
	}
}

// sweep removes limiters idle for longer than LimiterTTL
func (r *RateLimiter) sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key, entry := range r.limiters {
		if now.Sub(entry.lastSeen) > LimiterTTL {
			delete(r.limiters, key)
			removed++
		}
	}
	return removed
}

// Stop stops the cleanup goroutine
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// rateLimitMiddleware rejects callers that exceed their budget with 429
func rateLimitMiddleware(rl *RateLimiter, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "ip:" + c.RealIP()
			if s, ok := session.FromContext(c.Request().Context()); ok && s.UserID != "" {
				key = "user:" + s.UserID
			}

			allowed, remaining := rl.Allow(key)
			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.requestsPerMinute))
			h.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

			if !allowed {
				retryAfter := rl.retryAfter()
				h.Set("Retry-After", fmt.Sprintf("%d", retryAfter))

				logger.Warn().
					Str("caller", key).
					Int("retry_after", retryAfter).
					Msg("Rate limit exceeded")

				return problem(c, http.StatusTooManyRequests, ErrorTypeRateLimit, "Rate Limit Exceeded",
					fmt.Sprintf("Too many requests. Please retry after %d seconds.", retryAfter), nil)
			}

			return next(c)
		}
	}
}

// sessionMiddleware attaches the caller's session to the request context.
// The user id is taken as given; plan routes reject requests without one.
func sessionMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			s := session.Session{
				UserID:    strings.TrimSpace(req.Header.Get(session.Header)),
				RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
			}
			c.SetRequest(req.WithContext(session.WithSession(req.Context(), s)))
			return next(c)
		}
	}
}

// requireUser rejects requests that carry no user id
func requireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := session.UserID(c.Request().Context()); err != nil {
				return respondError(c, err)
			}
			return next(c)
		}
	}
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			logger.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}

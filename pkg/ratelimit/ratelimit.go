// Package ratelimit paces outgoing REST calls with an adaptive rate and
// classifies HTTP-shaped errors. It never retries: callers decide what a
// failure means.
//
// Example usage:
//
//	lim := ratelimit.NewAdaptiveLimiter(2, 1, 5, 1, 0.5)
//	if err := lim.Wait(ctx); err != nil {
//	    return err
//	}
//	err := doRequest()
//	lim.Observe(err)
package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// recoverAfter is how long the limiter stays put after a throttle signal
// before successes start raising the rate again.
const recoverAfter = 10 * time.Second

// =============================================================================
// Limiter
// =============================================================================

// AdaptiveLimiter manages a rate limit that rises on success and drops when
// the remote side signals throttling. Safe for concurrent use.
type AdaptiveLimiter struct {
	mu        sync.RWMutex
	limiter   *rate.Limiter
	minLimit  rate.Limit
	maxLimit  rate.Limit
	stepUp    rate.Limit
	stepDown  float64
	lastError time.Time
	now       func() time.Time
}

// NewAdaptiveLimiter creates an AdaptiveLimiter.
//
// Parameters:
//   - initial: starting requests per second
//   - min: minimum allowed rate
//   - max: maximum allowed rate
//   - stepUp: increment on success
//   - stepDown: multiplier applied on throttling (e.g. 0.5 to halve)
func NewAdaptiveLimiter(initial, min, max rate.Limit, stepUp rate.Limit, stepDown float64) *AdaptiveLimiter {
	if min < 1 {
		min = 1
	}
	if max < min {
		max = min
	}
	if initial < min {
		initial = min
	}
	if initial > max {
		initial = max
	}
	return &AdaptiveLimiter{
		limiter:  rate.NewLimiter(initial, maxInt(1, int(initial))),
		minLimit: min,
		maxLimit: max,
		stepUp:   stepUp,
		stepDown: stepDown,
		now:      time.Now,
	}
}

// Wait blocks until a token is available or ctx is done.
func (a *AdaptiveLimiter) Wait(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return a.limiter.Wait(ctx)
}

// Observe feeds the outcome of a request back into the limiter.
func (a *AdaptiveLimiter) Observe(err error) {
	switch {
	case err == nil:
		a.Success()
	case IsRateLimited(err) || IsServerError(err):
		a.RateLimited()
	}
}

// Success raises the rate unless a throttle signal arrived recently.
func (a *AdaptiveLimiter) Success() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.now().Sub(a.lastError) > recoverAfter {
		a.adjustLimit(a.limiter.Limit() + a.stepUp)
	}
}

// RateLimited lowers the rate after a throttle or overload response.
func (a *AdaptiveLimiter) RateLimited() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastError = a.now()
	a.adjustLimit(rate.Limit(float64(a.limiter.Limit()) * a.stepDown))
}

// CurrentLimit returns the current requests per second.
func (a *AdaptiveLimiter) CurrentLimit() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return float64(a.limiter.Limit())
}

// adjustLimit sets a new rate clamped to [min, max].
func (a *AdaptiveLimiter) adjustLimit(newLimit rate.Limit) {
	if newLimit > a.maxLimit {
		newLimit = a.maxLimit
	} else if newLimit < a.minLimit {
		newLimit = a.minLimit
	}

	if newLimit != a.limiter.Limit() {
		a.limiter.SetLimit(newLimit)
		a.limiter.SetBurst(maxInt(1, int(newLimit)))
	}
}

// =============================================================================
// Errors
// =============================================================================

// HTTPError is implemented by errors that carry an HTTP status code.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusCode returns the status code of the first HTTPError in err's chain,
// or 0 when there is none.
func StatusCode(err error) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode()
	}
	return 0
}

// IsRateLimited reports whether err carries a 429.
func IsRateLimited(err error) bool {
	return StatusCode(err) == http.StatusTooManyRequests
}

// IsServerError reports whether err carries a 5xx.
func IsServerError(err error) bool {
	code := StatusCode(err)
	return code >= 500 && code < 600
}

// IsUnauthorized reports whether err carries a 401 or 403.
func IsUnauthorized(err error) bool {
	code := StatusCode(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

// IsClientError reports whether err carries any 4xx.
func IsClientError(err error) bool {
	code := StatusCode(err)
	return code >= 400 && code < 500
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"dealscope/prospector/pkg/config"
)

// RateLimit applies one shared token bucket to every request passing
// through it. A zero rate disables limiting.
func RateLimit(cfg config.RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if cfg.RequestsPerSecond <= 0 {
			return next
		}

		burst := cfg.Burst
		if burst <= 0 {
			burst = int(math.Ceil(cfg.RequestsPerSecond))
		}
		limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reservation := limiter.Reserve()
			if delay := reservation.Delay(); delay > 0 {
				reservation.Cancel()
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter(delay)))
				WriteError(w, r, http.StatusTooManyRequests, "rate_limited", "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// retryAfter rounds delay up to whole seconds, at least one.
func retryAfter(delay time.Duration) int {
	return max(int(math.Ceil(delay.Seconds())), 1)
}

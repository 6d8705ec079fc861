package ratelimit

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/habitquest/habitquest-go/internal/logger"
)

// KeyFunc derives the limiter key for a request, usually the client IP
type KeyFunc func(r *http.Request) string

// Limiter enforces a request budget per key over a sliding window
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
	key    KeyFunc
	now    func() time.Time
}

// NewLimiter creates a limiter allowing limit requests per window
func NewLimiter(store Store, limit int, window time.Duration, key KeyFunc) *Limiter {
	if limit <= 0 {
		limit = DefaultRequests
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{store: store, limit: limit, window: window, key: key, now: time.Now}
}

// Middleware rejects requests over budget with 429. A failing store lets the
// request through.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		key := l.key(r)

		count, err := l.store.Hit(ctx, key, l.now(), l.window)
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgStoreFailed, "key", key, "error", err)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set(HeaderRateLimit, strconv.Itoa(l.limit))
		w.Header().Set(HeaderRateLimitRemain, strconv.Itoa(max(0, l.limit-count)))

		if count > l.limit {
			logger.FromContext(ctx).Warn(LogMsgLimited, "key", key, "count", count)
			w.Header().Set(HeaderRetryAfter, strconv.Itoa(int(math.Ceil(l.window.Seconds()))))
			http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

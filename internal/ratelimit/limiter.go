package ratelimit

import (
	"context"
	"fmt"
	"time"

	"antares_backend/platform/httpkit"
	"antares_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

const (
	// windowSize is the fixed window length. Counters are bucketed per minute.
	windowSize = time.Minute
	// keyTTL outlives the window so clock skew between instances cannot expire
	// a live bucket early.
	keyTTL = 120 * time.Second
)

// Limiter enforces per-client fixed-window limits. A counter store failure
// never blocks traffic: the limiter fails open and logs the error.
type Limiter struct {
	store Store
	log   *logger.Logger
	now   func() time.Time
}

// New creates a limiter backed by the given counter store.
func New(store Store, log *logger.Logger) *Limiter {
	return &Limiter{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// Allow reports whether the client may proceed in the current window for the
// given endpoint class. Allowed requests consume one slot; denied requests do
// not increment the counter, so a blocked client's window still resets on
// schedule.
func (l *Limiter) Allow(ctx context.Context, class, clientID string, limit int) bool {
	window := l.now().Unix() / int64(windowSize.Seconds())
	key := fmt.Sprintf("rl:%s:%s:%d", class, clientID, window)

	count, err := l.store.Get(ctx, key)
	if err != nil {
		l.log.RateLimitStoreError(clientID, err)
		return true
	}
	if count >= int64(limit) {
		return false
	}
	if _, err := l.store.Incr(ctx, key, keyTTL); err != nil {
		l.log.RateLimitStoreError(clientID, err)
	}
	return true
}

// DenyFunc writes the endpoint-specific rejection response. Each endpoint
// class signals exhaustion in its own shape, so the response body is not owned
// by the limiter.
type DenyFunc func(c *gin.Context)

// Middleware returns a Gin middleware that enforces the limit for one
// endpoint class, invoking deny and aborting when the window is exhausted.
func (l *Limiter) Middleware(class string, limit int, deny DenyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := httpkit.ClientID(c)
		if !l.Allow(c.Request.Context(), class, clientID, limit) {
			l.log.RateLimitExceeded(clientID, c.Request.URL.Path)
			deny(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

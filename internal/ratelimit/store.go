// Package ratelimit implements a fixed-window request limiter keyed by client
// identity and endpoint class. Counters live in a pluggable Store so a single
// instance can run on process memory and a multi-instance deployment can share
// counters through Redis.
package ratelimit

import (
	"context"
	"time"
)

// Store is the counter backend for the fixed-window limiter.
type Store interface {
	// Get returns the current count for key, or 0 when the key is absent.
	Get(ctx context.Context, key string) (int64, error)
	// Incr increments the counter for key and returns the new count. The TTL
	// applies from the first increment so stale windows expire on their own.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

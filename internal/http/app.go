// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"antares_backend/internal/ratelimit"
	"antares_backend/platform/config"
	"antares_backend/platform/logger"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.RateLimitConfig
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration (HTTP and rate-limit settings only).
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Limiter is the shared fixed-window rate limiter.
	Limiter *ratelimit.Limiter
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}

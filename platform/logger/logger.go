// Package logger provides structured logging infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Context key types for storing values in context
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
)

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

// New creates a new logger based on environment
func New(env string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithContext returns a logger with context values extracted.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		return l.WithRequestID(requestID)
	}

	return l
}

// WithRequestID returns a logger with request ID
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("request_id", requestID)),
	}
}

// HTTPRequest logs an HTTP request
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// HTTPError logs an HTTP error
func (l *Logger) HTTPError(method, path string, status int, err error, clientIP string) {
	l.Error("http_error",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.String("error", err.Error()),
		slog.String("client_ip", clientIP),
	)
}

// RateLimitExceeded logs rate limit events
func (l *Logger) RateLimitExceeded(clientID, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_id", clientID),
		slog.String("path", path),
	)
}

// RateLimitStoreError logs a counter store failure. The limiter fails open on
// these, so they must be visible in the logs even though requests succeed.
func (l *Logger) RateLimitStoreError(clientID string, err error) {
	l.Warn("rate_limit_store_error",
		slog.String("client_id", clientID),
		slog.String("error", err.Error()),
	)
}

// EmailError logs email dispatch errors
func (l *Logger) EmailError(kind, toEmail string, err error) {
	l.Error("email_error",
		slog.String("kind", kind),
		slog.String("to", toEmail),
		slog.String("error", err.Error()),
	)
}

// EstimateSubmitted logs a successful estimate submission
func (l *Logger) EstimateSubmitted(estimateNumber string, subtotal int64, lineItems int) {
	l.Info("estimate_submitted",
		slog.String("estimate_number", estimateNumber),
		slog.Int64("subtotal", subtotal),
		slog.Int("line_items", lineItems),
	)
}

// AIError logs conversation service errors
func (l *Logger) AIError(endpoint string, err error) {
	l.Error("ai_error",
		slog.String("endpoint", endpoint),
		slog.String("error", err.Error()),
	)
}

// Package estimate wires the estimate domain: pricing, submission, and the
// HTTP surface.
package estimate

import (
	"net/http"

	"antares_backend/internal/estimate/handler"
	"antares_backend/internal/estimate/service"
	apphttp "antares_backend/internal/http"
	"antares_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module represents the estimate domain module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates the estimate module around a constructed service.
func NewModule(svc *service.Service) *Module {
	return &Module{handler: handler.New(svc)}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "estimate"
}

// RegisterRoutes registers the module's routes. Submission is throttled
// harder than calculation because each submission triggers PDF rendering and
// two outbound emails.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	calculateLimit := ctx.Limiter.Middleware("calculate", ctx.Config.GetSuggestRateLimit(), func(c *gin.Context) {
		httpkit.Error(c, http.StatusTooManyRequests, "too many requests, please try again later", nil)
	})
	submitLimit := ctx.Limiter.Middleware("estimate", ctx.Config.GetEstimateRateLimit(), handler.RateLimitedResponse)

	m.handler.RegisterRoutes(ctx.API.Group("/estimate"), calculateLimit, submitLimit)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

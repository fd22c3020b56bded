package catalog

import (
	apphttp "antares_backend/internal/http"
)

// Module represents the catalog domain module.
type Module struct {
	handler *Handler
}

// NewModule creates a new catalog module.
func NewModule() *Module {
	return &Module{handler: NewHandler()}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "catalog"
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.API.Group("/catalog"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

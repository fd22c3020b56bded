package catalog

import (
	"antares_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the catalog tables to the wizard UI.
type Handler struct{}

// NewHandler creates a catalog handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Get)
}

// Get returns all four pricing tables in one payload.
func (h *Handler) Get(c *gin.Context) {
	httpkit.OK(c, gin.H{
		"systemTypes": SystemTypes,
		"scales":      Scales,
		"features":    Features,
		"timelines":   Timelines,
	})
}

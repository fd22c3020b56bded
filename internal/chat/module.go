package chat

import (
	"net/http"

	apphttp "antares_backend/internal/http"
	"antares_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module represents the conversational domain module.
type Module struct {
	handler *Handler
}

// NewModule creates the chat module around a constructed service.
func NewModule(svc *Service) *Module {
	return &Module{handler: NewHandler(svc)}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "chat"
}

// RegisterRoutes registers the conversational routes. The suggestion
// endpoint's limiter denies with an empty 200 because that endpoint never
// surfaces errors to the client.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	chatLimit := ctx.Limiter.Middleware("chat", ctx.Config.GetChatRateLimit(), func(c *gin.Context) {
		httpkit.Error(c, http.StatusTooManyRequests, "too many requests, please try again later", nil)
	})
	suggestLimit := ctx.Limiter.Middleware("suggest", ctx.Config.GetSuggestRateLimit(), func(c *gin.Context) {
		httpkit.OK(c, gin.H{"suggestions": []string{}})
	})

	ctx.API.POST("/chat", chatLimit, m.handler.Chat)
	ctx.API.POST("/suggest", suggestLimit, m.handler.Suggest)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

package chat

import (
	"net/http"

	"antares_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// ChatRequest is the POST /api/chat body. The message cap is enforced at
// bind time so an oversized history never reaches the model.
type ChatRequest struct {
	Messages []Message `json:"messages" binding:"required,min=1,max=20,dive"`
}

// SuggestRequest is the POST /api/suggest body.
type SuggestRequest struct {
	Messages []Message `json:"messages"`
}

// Handler exposes the conversational endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a chat handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Chat streams one conversation turn as server-sent events. Event types:
// delta (text fragment), tool_call (structured payload), error, done.
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if !h.svc.Configured() {
		httpkit.Error(c, http.StatusInternalServerError, "chat is currently unavailable", nil)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	err := h.svc.Stream(c.Request.Context(), req.Messages, func(event Event) error {
		switch event.Type {
		case "delta":
			c.SSEvent("delta", gin.H{"text": event.Text})
		case "tool_call":
			c.SSEvent("tool_call", gin.H{"name": event.ToolName, "input": event.ToolInput})
		}
		c.Writer.Flush()
		return nil
	})
	if err != nil {
		// Headers are already written; the failure has to travel in-band.
		c.SSEvent("error", gin.H{"error": "chat failed, please try again"})
		c.Writer.Flush()
		return
	}

	c.SSEvent("done", gin.H{})
	c.Writer.Flush()
}

// Suggest returns quick replies for the conversation tail. The response is
// always 200; a malformed body or internal failure yields an empty list so
// the UI never blocks on this endpoint.
func (h *Handler) Suggest(c *gin.Context) {
	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.OK(c, gin.H{"suggestions": []string{}})
		return
	}
	httpkit.OK(c, gin.H{"suggestions": h.svc.Suggest(c.Request.Context(), req.Messages)})
}

// Package handler exposes the estimate endpoints: wizard calculation and
// full submission.
package handler

import (
	"net/http"

	"antares_backend/internal/estimate/pricing"
	"antares_backend/internal/estimate/service"
	"antares_backend/internal/estimate/transport"
	"antares_backend/platform/apperr"
	"antares_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles estimate HTTP requests.
type Handler struct {
	svc *service.Service
}

// New creates an estimate handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the estimate routes. The submit middleware is the
// fixed-window limiter for the submission class; calculation shares the
// cheaper suggestion-class budget.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, calculateLimit, submitLimit gin.HandlerFunc) {
	rg.POST("/calculate", calculateLimit, h.Calculate)
	rg.POST("", submitLimit, h.Submit)
}

// Calculate prices a wizard selection without side effects.
func (h *Handler) Calculate(c *gin.Context) {
	var sel pricing.Selection
	if err := c.ShouldBindJSON(&sel); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	result, err := h.svc.Calculate(sel)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Submit runs the full submission pipeline and reports the estimate number.
// The response envelope always carries a success flag so the form client can
// branch without inspecting status codes.
func (h *Handler) Submit(c *gin.Context) {
	var req transport.SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, transport.SubmissionErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	number, err := h.svc.Submit(c.Request.Context(), req)
	if err != nil {
		writeSubmissionError(c, err)
		return
	}

	httpkit.OK(c, transport.SubmissionResponse{
		Success:        true,
		EstimateNumber: number,
	})
}

func writeSubmissionError(c *gin.Context, err error) {
	if domainErr, ok := err.(*apperr.Error); ok {
		message := domainErr.Message
		if httpkit.IsServerError(domainErr) {
			message = "failed to process estimate request"
		}
		c.JSON(domainErr.HTTPStatus(), transport.SubmissionErrorResponse{
			Error:   message,
			Details: domainErr.Details,
		})
		return
	}
	c.JSON(http.StatusBadRequest, transport.SubmissionErrorResponse{Error: err.Error()})
}

// RateLimitedResponse writes the submission-class deny body.
func RateLimitedResponse(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, transport.SubmissionErrorResponse{
		Error: "too many requests, please try again later",
	})
}

// Package transport defines the wire-level request and response shapes for
// the estimate endpoints. Validation rules live here as struct tags so the
// boundary rejects malformed payloads before any pricing logic runs.
package transport

import "antares_backend/internal/estimate/pricing"

// EstimateDetails is the conversational flow's output: a project summary with
// untrusted line items. Amounts are recomputed server-side before any
// document is produced.
type EstimateDetails struct {
	ProjectSummary string             `json:"projectSummary" validate:"required"`
	LineItems      []pricing.LineItem `json:"lineItems" validate:"required,min=1,dive"`
	Timeline       string             `json:"timeline" validate:"required"`
	Notes          string             `json:"notes"`
}

// ContactInfo identifies the customer requesting the estimate.
type ContactInfo struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// SubmissionRequest is the POST /api/estimate body.
type SubmissionRequest struct {
	Estimate EstimateDetails `json:"estimate" validate:"required"`
	Contact  ContactInfo     `json:"contact" validate:"required"`
}

// SubmissionResponse is the success body for POST /api/estimate.
type SubmissionResponse struct {
	Success        bool   `json:"success"`
	EstimateNumber string `json:"estimateNumber"`
}

// SubmissionErrorResponse is the failure body for POST /api/estimate.
type SubmissionErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

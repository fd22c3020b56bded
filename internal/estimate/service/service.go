// Package service orchestrates estimate submission: validation, sanitization,
// reconciliation, document rendering, and email dispatch.
package service

import (
	"context"
	"time"

	"antares_backend/internal/catalog"
	"antares_backend/internal/email"
	"antares_backend/internal/estimate/pricing"
	"antares_backend/internal/estimate/transport"
	"antares_backend/internal/pdf"
	"antares_backend/platform/apperr"
	"antares_backend/platform/config"
	"antares_backend/platform/logger"
	"antares_backend/platform/phone"
	"antares_backend/platform/sanitize"
	"antares_backend/platform/validator"

	"golang.org/x/sync/errgroup"
)

// estimateValidity is how long a generated estimate document stays valid.
const estimateValidity = 30 * 24 * time.Hour

// PDFGenerator renders an estimate document from reconciled data.
type PDFGenerator interface {
	Generate(data pdf.EstimateData) ([]byte, error)
}

// Service handles estimate calculation and submission.
type Service struct {
	validate  *validator.Validator
	generator PDFGenerator
	sender    email.Sender
	log       *logger.Logger

	fromName  string
	teamEmail string

	now       func() time.Time
	newNumber func(time.Time) string
}

// New creates the estimate service.
func New(validate *validator.Validator, generator PDFGenerator, sender email.Sender, cfg config.EmailConfig, log *logger.Logger) *Service {
	return &Service{
		validate:  validate,
		generator: generator,
		sender:    sender,
		log:       log,
		fromName:  cfg.GetEmailFromName(),
		teamEmail: cfg.GetTeamNotificationEmail(),
		now:       time.Now,
		newNumber: newEstimateNumber,
	}
}

// Calculate prices a wizard selection. Thin passthrough to the pricing core
// so both entry surfaces share one implementation.
func (s *Service) Calculate(sel pricing.Selection) (pricing.Estimate, error) {
	return pricing.Calculate(sel)
}

// Submit runs the full submission pipeline. Money figures come exclusively
// from the reconciliation step; the PDF renders before either email because
// it is attached to the customer confirmation, then the two emails go out
// concurrently. Any failure aborts the whole submission.
func (s *Service) Submit(ctx context.Context, req transport.SubmissionRequest) (string, error) {
	if err := s.validate.Struct(req); err != nil {
		return "", apperr.Validation("invalid submission").
			WithDetails(validator.FieldErrors(err)).
			WithOp("estimate.Submit")
	}

	sanitizeRequest(&req)

	items, totals, err := pricing.Reconcile(req.Estimate.LineItems)
	if err != nil {
		return "", err
	}

	if !s.sender.Enabled() {
		return "", apperr.Configuration("email delivery is not configured").WithOp("estimate.Submit")
	}

	now := s.now()
	number := s.newNumber(now)

	doc, err := s.generator.Generate(pdf.EstimateData{
		EstimateNumber: number,
		IssuedAt:       now,
		ValidUntil:     now.Add(estimateValidity),
		SenderName:     s.fromName,
		CustomerName:   req.Contact.Name,
		CustomerEmail:  req.Contact.Email,
		Company:        req.Contact.Company,
		Phone:          req.Contact.Phone,
		ProjectSummary: req.Estimate.ProjectSummary,
		Timeline:       timelineLabel(req.Estimate.Timeline),
		Notes:          req.Estimate.Notes,
		Items:          items,
		Totals:         totals,
	})
	if err != nil {
		return "", apperr.Upstream("failed to generate estimate document", err).WithOp("estimate.Submit")
	}

	attachment := email.Attachment{
		Content:  doc,
		FileName: number + ".pdf",
		MIMEType: "application/pdf",
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		err := s.sender.SendEstimateEmail(groupCtx, req.Contact.Email, req.Contact.Name, number, totals.TotalWithTax, attachment)
		if err != nil {
			s.log.EmailError("estimate", req.Contact.Email, err)
		}
		return err
	})
	group.Go(func() error {
		err := s.sender.SendTeamNotificationEmail(groupCtx, s.teamEmail, email.TeamNotification{
			EstimateNumber: number,
			CustomerName:   req.Contact.Name,
			CustomerEmail:  req.Contact.Email,
			Company:        req.Contact.Company,
			Phone:          req.Contact.Phone,
			Message:        req.Contact.Message,
			ProjectSummary: req.Estimate.ProjectSummary,
			Timeline:       timelineLabel(req.Estimate.Timeline),
			LineItemCount:  len(items),
			TotalWithTax:   totals.TotalWithTax,
		})
		if err != nil {
			s.log.EmailError("team_notification", s.teamEmail, err)
		}
		return err
	})
	if err := group.Wait(); err != nil {
		return "", apperr.Upstream("failed to send estimate email", err).WithOp("estimate.Submit")
	}

	s.log.EstimateSubmitted(number, totals.Subtotal, len(items))
	return number, nil
}

// sanitizeRequest strips markup from every free-text field before it can
// reach a rendered document.
func sanitizeRequest(req *transport.SubmissionRequest) {
	req.Contact.Name = sanitize.Text(req.Contact.Name)
	req.Contact.Company = sanitize.Text(req.Contact.Company)
	req.Contact.Message = sanitize.Text(req.Contact.Message)
	req.Contact.Phone = phone.NormalizeE164(req.Contact.Phone)
	req.Estimate.ProjectSummary = sanitize.Text(req.Estimate.ProjectSummary)
	req.Estimate.Notes = sanitize.Text(req.Estimate.Notes)
	req.Estimate.Timeline = sanitize.Text(req.Estimate.Timeline)
	for i := range req.Estimate.LineItems {
		req.Estimate.LineItems[i].Item = sanitize.Text(req.Estimate.LineItems[i].Item)
	}
}

// timelineLabel resolves a catalog timeline id to its display label. Free
// text from the conversational flow passes through unchanged.
func timelineLabel(timeline string) string {
	if entry, ok := catalog.TimelineByID(timeline); ok {
		return entry.Label
	}
	return timeline
}

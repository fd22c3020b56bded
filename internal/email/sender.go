// Package email delivers the two submission emails: the customer confirmation
// with the estimate PDF attached, and the internal sales notification.
package email

import (
	"context"

	"antares_backend/platform/config"
)

// Attachment represents a file attachment for an email.
type Attachment struct {
	Content  []byte // raw file bytes (base64-encoded for the Resend API)
	FileName string // e.g. "EST-20260301-12345.pdf"
	MIMEType string // e.g. "application/pdf"
}

// TeamNotification carries the submission details shown to the sales team.
type TeamNotification struct {
	EstimateNumber string
	CustomerName   string
	CustomerEmail  string
	Company        string
	Phone          string
	Message        string
	ProjectSummary string
	Timeline       string
	LineItemCount  int
	TotalWithTax   int64
}

// Sender delivers submission emails. Implementations report success or
// failure only; there is no delivery guarantee and no retry.
type Sender interface {
	// Enabled reports whether this sender can actually deliver mail.
	Enabled() bool
	// SendEstimateEmail sends the customer confirmation with the estimate
	// document attached.
	SendEstimateEmail(ctx context.Context, toEmail, customerName, estimateNumber string, totalWithTax int64, attachments ...Attachment) error
	// SendTeamNotificationEmail alerts the sales team about a new submission.
	SendTeamNotificationEmail(ctx context.Context, toEmail string, notification TeamNotification) error
}

// NoopSender is used when email delivery is disabled. Submissions are
// rejected before reaching it, so its methods are never exercised in the
// success path.
type NoopSender struct{}

func (NoopSender) Enabled() bool { return false }

func (NoopSender) SendEstimateEmail(context.Context, string, string, string, int64, ...Attachment) error {
	return nil
}

func (NoopSender) SendTeamNotificationEmail(context.Context, string, TeamNotification) error {
	return nil
}

// NewSender builds the configured sender implementation.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}
	switch cfg.GetEmailProvider() {
	case "smtp":
		return NewSMTPSender(
			cfg.GetSMTPHost(),
			cfg.GetSMTPPort(),
			cfg.GetSMTPUsername(),
			cfg.GetSMTPPassword(),
			cfg.GetEmailFromAddress(),
			cfg.GetEmailFromName(),
		), nil
	default:
		return NewResendSender(cfg.GetResendAPIKey(), cfg.GetEmailFromName(), cfg.GetEmailFromAddress()), nil
	}
}

package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"antares_backend/internal/email"
	"antares_backend/internal/estimate/pricing"
	"antares_backend/internal/estimate/transport"
	"antares_backend/internal/pdf"
	"antares_backend/platform/apperr"
	"antares_backend/platform/config"
	"antares_backend/platform/logger"
	"antares_backend/platform/validator"
)

type fakeGenerator struct {
	data pdf.EstimateData
	err  error
}

func (f *fakeGenerator) Generate(data pdf.EstimateData) ([]byte, error) {
	f.data = data
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

type fakeSender struct {
	mu sync.Mutex

	estimateTo          string
	estimateNumber      string
	estimateTotal       int64
	estimateAttachments []email.Attachment
	estimateErr         error

	teamTo           string
	teamNotification email.TeamNotification
	teamErr          error
}

func (f *fakeSender) Enabled() bool { return true }

func (f *fakeSender) SendEstimateEmail(_ context.Context, toEmail, _ string, estimateNumber string, totalWithTax int64, attachments ...email.Attachment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.estimateTo = toEmail
	f.estimateNumber = estimateNumber
	f.estimateTotal = totalWithTax
	f.estimateAttachments = attachments
	return f.estimateErr
}

func (f *fakeSender) SendTeamNotificationEmail(_ context.Context, toEmail string, notification email.TeamNotification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.teamTo = toEmail
	f.teamNotification = notification
	return f.teamErr
}

func testConfig() *config.Config {
	return &config.Config{
		EmailEnabled:          true,
		EmailFromName:         "Antares",
		TeamNotificationEmail: "sales@example.com",
	}
}

func newTestService(generator PDFGenerator, sender email.Sender) *Service {
	svc := New(validator.New(), generator, sender, testConfig(), logger.New("test"))
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	svc.newNumber = func(time.Time) string { return "EST-20260301-12345" }
	return svc
}

func validRequest() transport.SubmissionRequest {
	return transport.SubmissionRequest{
		Estimate: transport.EstimateDetails{
			ProjectSummary: "予約管理システムの新規開発",
			LineItems: []pricing.LineItem{
				{Item: "設計", Quantity: 1, UnitPrice: 500_000, Amount: 999_999},
				{Item: "実装", Quantity: 2, UnitPrice: 800_000, Amount: 1},
			},
			Timeline: "3months",
			Notes:    "保守は別途",
		},
		Contact: transport.ContactInfo{
			Name:    "山田太郎",
			Email:   "taro@example.com",
			Company: "株式会社サンプル",
			Phone:   "03-1234-5678",
		},
	}
}

func TestSubmitSuccess(t *testing.T) {
	generator := &fakeGenerator{}
	sender := &fakeSender{}
	svc := newTestService(generator, sender)

	number, err := svc.Submit(context.Background(), validRequest())
	if err != nil {
		t.Fatal(err)
	}
	if number != "EST-20260301-12345" {
		t.Errorf("number = %q", number)
	}

	// Reconciled totals, not the adversarial supplied amounts.
	if generator.data.Totals.Subtotal != 2_100_000 {
		t.Errorf("pdf subtotal = %d, want 2100000", generator.data.Totals.Subtotal)
	}
	if generator.data.Totals.TotalWithTax != 2_310_000 {
		t.Errorf("pdf total = %d, want 2310000", generator.data.Totals.TotalWithTax)
	}
	if generator.data.Items[0].Amount != 500_000 || generator.data.Items[1].Amount != 1_600_000 {
		t.Errorf("pdf items carry unreconciled amounts: %+v", generator.data.Items)
	}
	if generator.data.Timeline != "3ヶ月以内" {
		t.Errorf("timeline label = %q", generator.data.Timeline)
	}

	if sender.estimateTo != "taro@example.com" {
		t.Errorf("customer email to = %q", sender.estimateTo)
	}
	if sender.estimateTotal != 2_310_000 {
		t.Errorf("customer email total = %d", sender.estimateTotal)
	}
	if len(sender.estimateAttachments) != 1 || sender.estimateAttachments[0].FileName != "EST-20260301-12345.pdf" {
		t.Errorf("attachment = %+v", sender.estimateAttachments)
	}
	if sender.teamTo != "sales@example.com" {
		t.Errorf("team email to = %q", sender.teamTo)
	}
	if sender.teamNotification.TotalWithTax != 2_310_000 {
		t.Errorf("team notification total = %d", sender.teamNotification.TotalWithTax)
	}
}

func TestSubmitValidationFailure(t *testing.T) {
	svc := newTestService(&fakeGenerator{}, &fakeSender{})

	req := validRequest()
	req.Contact.Name = ""
	req.Contact.Email = "not-an-email"

	_, err := svc.Submit(context.Background(), req)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	details := err.(*apperr.Error).Details.([]validator.FieldError)
	paths := make(map[string]bool)
	for _, fe := range details {
		paths[fe.Path] = true
	}
	if !paths["contact.name"] || !paths["contact.email"] {
		t.Errorf("expected contact.name and contact.email paths, got %v", paths)
	}
}

func TestSubmitReconciliationFailure(t *testing.T) {
	sender := &fakeSender{}
	generator := &fakeGenerator{}
	svc := newTestService(generator, sender)

	req := validRequest()
	req.Estimate.LineItems[0].Quantity = -1

	_, err := svc.Submit(context.Background(), req)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if sender.estimateTo != "" || sender.teamTo != "" {
		t.Error("no email may be sent when reconciliation fails")
	}
}

func TestSubmitEmailDisabled(t *testing.T) {
	svc := newTestService(&fakeGenerator{}, &fakeSender{})
	svc.sender = email.NoopSender{}

	_, err := svc.Submit(context.Background(), validRequest())
	if !apperr.Is(err, apperr.KindConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestSubmitPDFFailureAbortsEmails(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestService(&fakeGenerator{err: errors.New("render failed")}, sender)

	_, err := svc.Submit(context.Background(), validRequest())
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if sender.estimateTo != "" || sender.teamTo != "" {
		t.Error("no email may be sent when the PDF fails")
	}
}

func TestSubmitEmailFailureFailsWholeSubmission(t *testing.T) {
	sender := &fakeSender{teamErr: errors.New("smtp refused")}
	svc := newTestService(&fakeGenerator{}, sender)

	_, err := svc.Submit(context.Background(), validRequest())
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestSubmitSanitizesTextFields(t *testing.T) {
	generator := &fakeGenerator{}
	svc := newTestService(generator, &fakeSender{})

	req := validRequest()
	req.Contact.Name = "山田<script>alert(1)</script>太郎"
	req.Estimate.ProjectSummary = "<b>予約システム</b>"
	req.Estimate.LineItems[0].Item = "設計<img src=x>"

	if _, err := svc.Submit(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	if generator.data.CustomerName != "山田alert(1)太郎" {
		t.Errorf("name not sanitized: %q", generator.data.CustomerName)
	}
	if generator.data.ProjectSummary != "予約システム" {
		t.Errorf("summary not sanitized: %q", generator.data.ProjectSummary)
	}
	if generator.data.Items[0].Item != "設計" {
		t.Errorf("line item not sanitized: %q", generator.data.Items[0].Item)
	}
}

func TestSubmitNormalizesPhone(t *testing.T) {
	generator := &fakeGenerator{}
	svc := newTestService(generator, &fakeSender{})

	if _, err := svc.Submit(context.Background(), validRequest()); err != nil {
		t.Fatal(err)
	}
	if generator.data.Phone != "+81312345678" {
		t.Errorf("phone = %q, want +81312345678", generator.data.Phone)
	}
}

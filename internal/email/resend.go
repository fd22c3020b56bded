package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ResendSender delivers mail through the Resend HTTP API.
type ResendSender struct {
	apiKey    string
	fromName  string
	fromEmail string
	client    *http.Client
	baseURL   string
}

type resendAttachment struct {
	Content  string `json:"content"` // base64-encoded file content
	Filename string `json:"filename"`
}

type resendEmailRequest struct {
	From        string             `json:"from"`
	To          []string           `json:"to"`
	Subject     string             `json:"subject"`
	HTML        string             `json:"html"`
	Attachments []resendAttachment `json:"attachments,omitempty"`
}

// NewResendSender creates a sender backed by the Resend API.
func NewResendSender(apiKey, fromName, fromEmail string) *ResendSender {
	return &ResendSender{
		apiKey:    apiKey,
		fromName:  fromName,
		fromEmail: fromEmail,
		client:    &http.Client{Timeout: 10 * time.Second},
		baseURL:   "https://api.resend.com",
	}
}

func (r *ResendSender) Enabled() bool { return true }

func (r *ResendSender) SendEstimateEmail(ctx context.Context, toEmail, customerName, estimateNumber string, totalWithTax int64, attachments ...Attachment) error {
	content, err := renderEstimateEmail(customerName, estimateNumber, totalWithTax)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf(subjectEstimateFmt, estimateNumber)
	return r.send(ctx, toEmail, subject, content, attachments...)
}

func (r *ResendSender) SendTeamNotificationEmail(ctx context.Context, toEmail string, notification TeamNotification) error {
	content, err := renderTeamNotificationEmail(notification)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf(subjectTeamNotificationFmt, notification.EstimateNumber)
	return r.send(ctx, toEmail, subject, content)
}

func (r *ResendSender) send(ctx context.Context, toEmail, subject, htmlContent string, attachments ...Attachment) error {
	payload := resendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", r.fromName, r.fromEmail),
		To:      []string{toEmail},
		Subject: subject,
		HTML:    htmlContent,
	}
	for _, att := range attachments {
		payload.Attachments = append(payload.Attachments, resendAttachment{
			Content:  base64.StdEncoding.EncodeToString(att.Content),
			Filename: att.FileName,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("resend send failed: status %d: %s", resp.StatusCode, string(data))
	}

	return nil
}

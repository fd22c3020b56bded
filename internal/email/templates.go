package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title   string
	Heading string
}

type estimateEmailData struct {
	baseEmailData
	CustomerName   string
	EstimateNumber string
	TotalFormatted string
}

type teamNotificationEmailData struct {
	baseEmailData
	EstimateNumber string
	CustomerName   string
	CustomerEmail  string
	Company        string
	Phone          string
	Message        string
	ProjectSummary string
	Timeline       string
	LineItemCount  int
	TotalFormatted string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func formatCurrencyJPY(amount int64) string {
	s := fmt.Sprintf("%d", amount)
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return "¥" + string(out)
}

func renderEstimateEmail(customerName, estimateNumber string, totalWithTax int64) (string, error) {
	return renderEmailTemplate("estimate.html", estimateEmailData{
		baseEmailData: baseEmailData{
			Title:   "お見積書のご送付",
			Heading: "お見積もりありがとうございます",
		},
		CustomerName:   customerName,
		EstimateNumber: estimateNumber,
		TotalFormatted: formatCurrencyJPY(totalWithTax),
	})
}

func renderTeamNotificationEmail(n TeamNotification) (string, error) {
	return renderEmailTemplate("team_notification.html", teamNotificationEmailData{
		baseEmailData: baseEmailData{
			Title:   "新規見積もりリクエスト",
			Heading: "新規見積もりリクエスト",
		},
		EstimateNumber: n.EstimateNumber,
		CustomerName:   n.CustomerName,
		CustomerEmail:  n.CustomerEmail,
		Company:        n.Company,
		Phone:          n.Phone,
		Message:        n.Message,
		ProjectSummary: n.ProjectSummary,
		Timeline:       n.Timeline,
		LineItemCount:  n.LineItemCount,
		TotalFormatted: formatCurrencyJPY(n.TotalWithTax),
	})
}

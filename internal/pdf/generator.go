// Package pdf renders the estimate document (mitsumorisho) attached to the
// customer confirmation email. The layout is a single-page quote: header with
// estimate number and dates, customer block, line-item table, and totals with
// consumption tax.
package pdf

import (
	"fmt"
	"time"

	"antares_backend/internal/estimate/pricing"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ── Colour palette ──────────────────────────────────────────────────────

var (
	colorPrimary   = &props.Color{Red: 17, Green: 24, Blue: 39}    // near-black
	colorSecondary = &props.Color{Red: 107, Green: 114, Blue: 128} // gray-500
	colorAccent    = &props.Color{Red: 37, Green: 99, Blue: 235}   // blue-600
	colorTableHead = &props.Color{Red: 241, Green: 245, Blue: 249} // slate-100
	colorTableAlt  = &props.Color{Red: 249, Green: 250, Blue: 251} // gray-50
	colorBorder    = &props.Color{Red: 226, Green: 232, Blue: 240} // slate-200
)

// ── Data struct ─────────────────────────────────────────────────────────

// EstimateData holds everything needed to render one estimate document.
// Line items and totals must already be reconciled by the pricing core.
type EstimateData struct {
	EstimateNumber string
	IssuedAt       time.Time
	ValidUntil     time.Time

	SenderName string

	CustomerName  string
	CustomerEmail string
	Company       string
	Phone         string

	ProjectSummary string
	Timeline       string
	Notes          string

	Items  []pricing.LineItem
	Totals pricing.Totals
}

// Generator renders estimate documents.
type Generator struct{}

// NewGenerator creates a PDF generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the estimate document and returns the PDF bytes.
func (g *Generator) Generate(data EstimateData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(12).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	if err := m.RegisterFooter(buildFooter(data)); err != nil {
		return nil, fmt.Errorf("register footer: %w", err)
	}

	m.AddRows(buildHeader(data)...)
	m.AddRows(row.New(1).WithStyle(&props.Cell{
		BorderType:  border.Bottom,
		BorderColor: colorBorder,
	}))
	m.AddRows(row.New(6)) // spacer

	m.AddRows(buildCustomerBlock(data)...)
	m.AddRows(row.New(6))

	m.AddRows(buildProjectBlock(data)...)
	m.AddRows(row.New(4))

	m.AddRows(buildItemsTable(data)...)
	m.AddRows(row.New(4))

	m.AddRows(buildTotalsBlock(data)...)

	if data.Notes != "" {
		m.AddRows(row.New(6))
		m.AddRows(buildNotesBlock(data.Notes)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Header ──────────────────────────────────────────────────────────────

func buildHeader(data EstimateData) []core.Row {
	senderCol := col.New(4).Add(
		text.New(data.SenderName, props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Color: colorPrimary,
			Top:   4,
		}),
	)

	titleCol := col.New(8).Add(
		text.New("お見積書", props.Text{
			Size:  24,
			Style: fontstyle.Bold,
			Align: align.Right,
			Color: colorAccent,
		}),
		text.New(data.EstimateNumber, props.Text{
			Size:  11,
			Align: align.Right,
			Color: colorSecondary,
			Top:   12,
		}),
	)

	return []core.Row{row.New(20).Add(senderCol, titleCol)}
}

// ── Customer block ──────────────────────────────────────────────────────

func buildCustomerBlock(data EstimateData) []core.Row {
	var rows []core.Row

	rows = append(rows, row.New(5).Add(
		col.New(6).Add(text.New("宛先", props.Text{Size: 7, Style: fontstyle.Bold, Color: colorAccent})),
		col.New(6).Add(text.New("見積情報", props.Text{Size: 7, Style: fontstyle.Bold, Color: colorAccent, Align: align.Right})),
	))

	customerName := data.CustomerName + " 様"
	rows = append(rows, row.New(5).Add(
		col.New(6).Add(text.New(customerName, props.Text{Size: 9, Style: fontstyle.Bold, Color: colorPrimary})),
		col.New(6).Add(text.New("発行日: "+data.IssuedAt.Format("2006年01月02日"), props.Text{Size: 8, Color: colorSecondary, Align: align.Right})),
	))

	rows = append(rows, row.New(5).Add(
		col.New(6).Add(text.New(data.Company, props.Text{Size: 8, Color: colorSecondary})),
		col.New(6).Add(text.New("有効期限: "+data.ValidUntil.Format("2006年01月02日"), props.Text{Size: 8, Color: colorSecondary, Align: align.Right})),
	))

	contact := data.CustomerEmail
	if data.Phone != "" {
		contact += "  |  " + data.Phone
	}
	rows = append(rows, row.New(5).Add(
		col.New(12).Add(text.New(contact, props.Text{Size: 8, Color: colorSecondary})),
	))

	return rows
}

// ── Project block ───────────────────────────────────────────────────────

func buildProjectBlock(data EstimateData) []core.Row {
	rows := []core.Row{
		row.New(5).Add(
			col.New(12).Add(text.New("案件概要", props.Text{Size: 8, Style: fontstyle.Bold, Color: colorAccent})),
		),
		row.New(8).Add(
			col.New(12).Add(text.New(data.ProjectSummary, props.Text{Size: 8, Color: colorPrimary, Top: 1})),
		),
	}
	if data.Timeline != "" {
		rows = append(rows, row.New(5).Add(
			col.New(12).Add(text.New("希望納期: "+data.Timeline, props.Text{Size: 8, Color: colorSecondary})),
		))
	}
	return rows
}

// ── Line items table ────────────────────────────────────────────────────

func buildItemsTable(data EstimateData) []core.Row {
	var rows []core.Row

	rows = append(rows, row.New(7).Add(
		col.New(12).Add(text.New("明細", props.Text{
			Size:  8,
			Style: fontstyle.Bold,
			Color: colorAccent,
		})),
	))

	headerStyle := props.Text{Size: 7.5, Style: fontstyle.Bold, Color: colorPrimary, Top: 1.5}
	headerStyleRight := props.Text{Size: 7.5, Style: fontstyle.Bold, Color: colorPrimary, Align: align.Right, Top: 1.5}

	rows = append(rows, row.New(7).Add(
		col.New(6).Add(text.New("項目", headerStyle)),
		col.New(1).Add(text.New("数量", headerStyleRight)),
		col.New(2).Add(text.New("単価", headerStyleRight)),
		col.New(3).Add(text.New("金額", headerStyleRight)),
	).WithStyle(&props.Cell{
		BackgroundColor: colorTableHead,
		BorderType:      border.Bottom,
		BorderColor:     colorBorder,
	}))

	for i, item := range data.Items {
		rows = append(rows, buildItemRow(item, i))
	}

	return rows
}

func buildItemRow(item pricing.LineItem, idx int) core.Row {
	normalStyle := props.Text{Size: 8, Color: colorPrimary, Top: 1}
	rightStyle := props.Text{Size: 8, Color: colorPrimary, Align: align.Right, Top: 1}

	r := row.New(7).Add(
		col.New(6).Add(text.New(item.Item, normalStyle)),
		col.New(1).Add(text.New(fmt.Sprintf("%d", item.Quantity), rightStyle)),
		col.New(2).Add(text.New(formatYen(item.UnitPrice), rightStyle)),
		col.New(3).Add(text.New(formatYen(item.Amount), rightStyle)),
	)
	if idx%2 == 0 {
		r.WithStyle(&props.Cell{BackgroundColor: colorTableAlt})
	}
	return r
}

// ── Totals block ────────────────────────────────────────────────────────

func buildTotalsBlock(data EstimateData) []core.Row {
	var rows []core.Row

	rows = append(rows, row.New(1).WithStyle(&props.Cell{
		BorderType:  border.Bottom,
		BorderColor: colorBorder,
	}))
	rows = append(rows, row.New(3))

	labelStyle := props.Text{Size: 9, Color: colorSecondary, Align: align.Right}
	valueStyle := props.Text{Size: 9, Color: colorPrimary, Align: align.Right}

	rows = append(rows, row.New(6).Add(
		col.New(9).Add(text.New("小計", labelStyle)),
		col.New(3).Add(text.New(formatYen(data.Totals.Subtotal), valueStyle)),
	))
	rows = append(rows, row.New(6).Add(
		col.New(9).Add(text.New("消費税 (10%)", labelStyle)),
		col.New(3).Add(text.New(formatYen(data.Totals.Tax), valueStyle)),
	))

	rows = append(rows, row.New(2))
	rows = append(rows, row.New(10).Add(
		col.New(9).Add(text.New("合計 (税込)", props.Text{
			Size:  12,
			Style: fontstyle.Bold,
			Color: colorPrimary,
			Align: align.Right,
			Top:   2,
		})),
		col.New(3).Add(text.New(formatYen(data.Totals.TotalWithTax), props.Text{
			Size:  12,
			Style: fontstyle.Bold,
			Color: colorPrimary,
			Align: align.Right,
			Top:   2,
		})),
	).WithStyle(&props.Cell{
		BackgroundColor: colorTableHead,
		BorderType:      border.Top + border.Bottom,
		BorderColor:     colorBorder,
	}))

	return rows
}

// ── Notes ───────────────────────────────────────────────────────────────

func buildNotesBlock(notes string) []core.Row {
	return []core.Row{
		row.New(5).Add(
			col.New(12).Add(text.New("備考", props.Text{
				Size:  8,
				Style: fontstyle.Bold,
				Color: colorAccent,
			})),
		),
		row.New(12).Add(
			col.New(12).Add(text.New(notes, props.Text{
				Size:  8,
				Color: colorSecondary,
				Top:   1,
			})),
		),
	}
}

// ── Footer ──────────────────────────────────────────────────────────────

func buildFooter(data EstimateData) core.Row {
	footerText := data.SenderName + "  ·  本見積書の金額は概算であり、正式なご契約時に変動する場合があります。"
	return row.New(10).Add(
		col.New(12).Add(
			text.New(footerText, props.Text{
				Size:  6.5,
				Color: colorSecondary,
				Align: align.Center,
				Top:   4,
			}),
		),
	).WithStyle(&props.Cell{
		BorderType:  border.Top,
		BorderColor: colorBorder,
	})
}

// ── Helpers ─────────────────────────────────────────────────────────────

func formatYen(amount int64) string {
	return "¥" + groupDigits(amount)
}

func groupDigits(v int64) string {
	s := fmt.Sprintf("%d", v)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

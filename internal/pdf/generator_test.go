package pdf

import (
	"bytes"
	"testing"
	"time"

	"antares_backend/internal/estimate/pricing"
)

func TestGenerateProducesPDF(t *testing.T) {
	g := NewGenerator()
	data := EstimateData{
		EstimateNumber: "EST-20260301-12345",
		IssuedAt:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil:     time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		SenderName:     "Antares",
		CustomerName:   "山田太郎",
		CustomerEmail:  "taro@example.com",
		Company:        "株式会社サンプル",
		ProjectSummary: "予約管理システムの新規開発",
		Timeline:       "3ヶ月以内",
		Notes:          "保守費用は別途お見積りします。",
		Items: []pricing.LineItem{
			{Item: "要件定義・設計", Quantity: 1, UnitPrice: 500_000, Amount: 500_000},
			{Item: "実装", Quantity: 2, UnitPrice: 800_000, Amount: 1_600_000},
		},
		Totals: pricing.Totals{Subtotal: 2_100_000, Tax: 210_000, TotalWithTax: 2_310_000},
	}

	doc, err := g.Generate(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc) == 0 {
		t.Fatal("expected non-empty document")
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Fatalf("expected PDF magic bytes, got %q", doc[:4])
	}
}

func TestFormatYen(t *testing.T) {
	cases := map[int64]string{
		0:         "¥0",
		300:       "¥300",
		30_000:    "¥30,000",
		2_310_000: "¥2,310,000",
	}
	for input, want := range cases {
		if got := formatYen(input); got != want {
			t.Errorf("formatYen(%d) = %q, want %q", input, got, want)
		}
	}
}

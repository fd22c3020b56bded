package pricing

import (
	"reflect"
	"testing"

	"antares_backend/platform/apperr"
	"antares_backend/platform/validator"
)

func TestReconcileDiscardsSuppliedAmount(t *testing.T) {
	items, totals, err := Reconcile([]LineItem{
		{Item: "A", Quantity: 3, UnitPrice: 100_000, Amount: 999_999},
	})
	if err != nil {
		t.Fatal(err)
	}

	if items[0].Amount != 300_000 {
		t.Errorf("amount = %d, want 300000", items[0].Amount)
	}
	if totals.Subtotal != 300_000 {
		t.Errorf("subtotal = %d, want 300000", totals.Subtotal)
	}
	if totals.Tax != 30_000 {
		t.Errorf("tax = %d, want 30000", totals.Tax)
	}
	if totals.TotalWithTax != 330_000 {
		t.Errorf("totalWithTax = %d, want 330000", totals.TotalWithTax)
	}
}

func TestReconcileMultipleItems(t *testing.T) {
	items, totals, err := Reconcile([]LineItem{
		{Item: "設計", Quantity: 1, UnitPrice: 500_000},
		{Item: "実装", Quantity: 2, UnitPrice: 800_000},
		{Item: "テスト", Quantity: 1, UnitPrice: 300_000},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []int64{500_000, 1_600_000, 300_000}
	for i, item := range items {
		if item.Amount != want[i] {
			t.Errorf("item %d amount = %d, want %d", i, item.Amount, want[i])
		}
	}
	if totals.Subtotal != 2_400_000 {
		t.Errorf("subtotal = %d, want 2400000", totals.Subtotal)
	}
	if totals.TotalWithTax != totals.Subtotal+totals.Tax {
		t.Errorf("totalWithTax = %d, want subtotal+tax = %d", totals.TotalWithTax, totals.Subtotal+totals.Tax)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	first, firstTotals, err := Reconcile([]LineItem{
		{Item: "A", Quantity: 2, UnitPrice: 150_000, Amount: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	second, secondTotals, err := Reconcile(first)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("reconciling reconciled items changed them: %v vs %v", first, second)
	}
	if firstTotals != secondTotals {
		t.Errorf("totals changed on second pass: %v vs %v", firstTotals, secondTotals)
	}
}

func TestReconcileDoesNotMutateInput(t *testing.T) {
	input := []LineItem{{Item: "A", Quantity: 3, UnitPrice: 100_000, Amount: 999_999}}
	if _, _, err := Reconcile(input); err != nil {
		t.Fatal(err)
	}
	if input[0].Amount != 999_999 {
		t.Errorf("input slice was mutated, amount = %d", input[0].Amount)
	}
}

func TestReconcileRejectsBadValues(t *testing.T) {
	cases := []struct {
		name     string
		items    []LineItem
		wantPath string
	}{
		{"empty", nil, "lineItems"},
		{"zero quantity", []LineItem{{Item: "A", Quantity: 0, UnitPrice: 100}}, "lineItems[0].quantity"},
		{"negative quantity", []LineItem{{Item: "A", Quantity: -2, UnitPrice: 100}}, "lineItems[0].quantity"},
		{
			"negative unit price",
			[]LineItem{{Item: "A", Quantity: 1, UnitPrice: 100}, {Item: "B", Quantity: 1, UnitPrice: -5}},
			"lineItems[1].unitPrice",
		},
		{
			"overflowing product",
			[]LineItem{{Item: "A", Quantity: 4_000_000_000, UnitPrice: 4_000_000_000}},
			"lineItems[0].amount",
		},
		{
			"overflowing subtotal",
			[]LineItem{
				{Item: "A", Quantity: 1, UnitPrice: 900_000_000_000},
				{Item: "B", Quantity: 1, UnitPrice: 900_000_000_000},
			},
			"lineItems",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Reconcile(tc.items)
			if !apperr.Is(err, apperr.KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			details, ok := err.(*apperr.Error).Details.([]validator.FieldError)
			if !ok || len(details) != 1 {
				t.Fatalf("expected one field error detail, got %#v", err.(*apperr.Error).Details)
			}
			if details[0].Path != tc.wantPath {
				t.Errorf("path = %q, want %q", details[0].Path, tc.wantPath)
			}
		})
	}
}

// Amounts large enough to wrap int64 must be rejected up front. Before the
// cap was enforced, a single huge quantity times unit price produced a
// negative amount that propagated into the subtotal, tax, and documents.
func TestReconcileHugeValuesNeverGoNegative(t *testing.T) {
	_, totals, err := Reconcile([]LineItem{
		{Item: "大規模開発", Quantity: 4_000_000_000, UnitPrice: 4_000_000_000},
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v (totals %+v)", err, totals)
	}
	if totals.Subtotal < 0 || totals.Tax < 0 || totals.TotalWithTax < 0 {
		t.Errorf("totals went negative: %+v", totals)
	}
}

func TestReconcileAcceptsAmountAtCap(t *testing.T) {
	items, totals, err := Reconcile([]LineItem{
		{Item: "大型案件", Quantity: 1_000_000, UnitPrice: 1_000_000},
	})
	if err != nil {
		t.Fatal(err)
	}
	if items[0].Amount != 1_000_000_000_000 {
		t.Errorf("amount = %d, want 1000000000000", items[0].Amount)
	}
	if totals.Tax != 100_000_000_000 || totals.TotalWithTax != 1_100_000_000_000 {
		t.Errorf("totals = %+v", totals)
	}
}

func TestReconcileZeroUnitPriceAllowed(t *testing.T) {
	items, totals, err := Reconcile([]LineItem{
		{Item: "無償サポート", Quantity: 1, UnitPrice: 0},
	})
	if err != nil {
		t.Fatal(err)
	}
	if items[0].Amount != 0 || totals.TotalWithTax != 0 {
		t.Errorf("zero-price item should total 0, got %v %v", items, totals)
	}
}

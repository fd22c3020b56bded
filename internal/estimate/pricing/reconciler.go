package pricing

import (
	"fmt"
	"math"

	"antares_backend/platform/apperr"
	"antares_backend/platform/validator"
)

// taxRate is the Japanese consumption tax applied to reconciled subtotals.
const taxRate = 0.10

// maxYen caps every reconciled amount and the running subtotal at one
// trillion yen. A product that cannot be represented is rejected, never
// wrapped into a negative.
const maxYen int64 = 1_000_000_000_000

// LineItem is one untrusted billing row. Amount may arrive pre-filled by the
// conversational flow and is never trusted.
type LineItem struct {
	Item      string `json:"item" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"gt=0"`
	UnitPrice int64  `json:"unitPrice" validate:"gte=0"`
	Amount    int64  `json:"amount" validate:"gte=0"`
}

// Totals are the server-computed aggregates over reconciled line items.
type Totals struct {
	Subtotal     int64 `json:"subtotal"`
	Tax          int64 `json:"tax"`
	TotalWithTax int64 `json:"totalWithTax"`
}

// Reconcile recomputes every line item amount as quantity times unit price,
// discarding whatever amount the caller supplied. Line items reach the PDF and
// email documents only through this function, so a manipulated upstream total
// can never surface in a billing-adjacent artifact.
//
// Returned items are fresh copies; the input slice is never mutated.
func Reconcile(items []LineItem) ([]LineItem, Totals, error) {
	if len(items) == 0 {
		return nil, Totals{}, apperr.Validation("lineItems must not be empty").
			WithDetails([]validator.FieldError{{Path: "lineItems", Message: "must not be empty"}})
	}

	reconciled := make([]LineItem, 0, len(items))
	var subtotal int64
	for i, item := range items {
		if item.Quantity <= 0 {
			return nil, Totals{}, lineItemError(i, "quantity", "must be a positive integer")
		}
		if item.UnitPrice < 0 {
			return nil, Totals{}, lineItemError(i, "unitPrice", "must be a non-negative integer")
		}
		if item.UnitPrice > 0 && item.Quantity > maxYen/item.UnitPrice {
			return nil, Totals{}, lineItemError(i, "amount", "exceeds the maximum supported amount")
		}
		amount := item.Quantity * item.UnitPrice
		reconciled = append(reconciled, LineItem{
			Item:      item.Item,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Amount:    amount,
		})
		subtotal += amount
		if subtotal > maxYen {
			return nil, Totals{}, apperr.Validation("lineItems total exceeds the maximum supported amount").
				WithDetails([]validator.FieldError{{Path: "lineItems", Message: "total exceeds the maximum supported amount"}})
		}
	}

	tax := int64(math.Round(float64(subtotal) * taxRate))
	return reconciled, Totals{
		Subtotal:     subtotal,
		Tax:          tax,
		TotalWithTax: subtotal + tax,
	}, nil
}

func lineItemError(index int, field, message string) *apperr.Error {
	path := fmt.Sprintf("lineItems[%d].%s", index, field)
	return apperr.Validation(fmt.Sprintf("%s %s", path, message)).
		WithDetails([]validator.FieldError{{Path: path, Message: message}})
}

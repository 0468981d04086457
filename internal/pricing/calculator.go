// Package pricing derives the money fields of a quote from its line items and
// discount. All arithmetic is decimal; nothing here touches storage.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/fairwayev/quotedesk-backend/pkg/errors"
	"github.com/fairwayev/quotedesk-backend/pkg/types"
)

// TaxRate is the fixed value-added rate applied to the discounted subtotal.
var TaxRate = decimal.New(13, -2)

// Totals carries the derived money fields of a quote. The four fields are
// always produced together; callers must never persist a subset.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals sums the item prices and applies the discount and tax.
//
// Unit prices must be non-negative. Tax is rounded half away from zero to
// whole currency units, once on the discounted subtotal rather than per
// item. A discount below zero or above the subtotal is rejected with
// INVALID_DISCOUNT and the caller keeps its prior values.
func ComputeTotals(items []types.LineItem, discount decimal.Decimal) (Totals, error) {
	subtotal := decimal.Zero
	for _, item := range items {
		if item.UnitPrice.IsNegative() {
			return Totals{}, errors.New(errors.CodeValidation, "unit price cannot be negative").
				WithDetails(map[string]any{"id": item.ID, "unitPrice": item.UnitPrice.String()})
		}
		subtotal = subtotal.Add(item.UnitPrice)
	}

	if discount.IsNegative() {
		return Totals{}, errors.New(errors.CodeInvalidDiscount, "discount cannot be negative")
	}
	if discount.GreaterThan(subtotal) {
		return Totals{}, errors.New(errors.CodeInvalidDiscount, "discount cannot exceed subtotal")
	}

	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(TaxRate).Round(0)

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    taxable.Add(tax),
	}, nil
}

package quote

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fairwayev/quotedesk-backend/internal/pricing"
	"github.com/fairwayev/quotedesk-backend/pkg/db/models"
	"github.com/fairwayev/quotedesk-backend/pkg/enums"
	"github.com/fairwayev/quotedesk-backend/pkg/errors"
	"github.com/fairwayev/quotedesk-backend/pkg/types"
)

// Number formats a display quote number for the given creation instant:
// "Q" + YYYYMMDD + "-" + the last six digits of the epoch milliseconds.
// Two quotes minted in the same millisecond share a display number; the
// document id stays the unique key.
func Number(createdAt time.Time) string {
	return fmt.Sprintf("Q%s-%06d", createdAt.Format("20060102"), createdAt.UnixMilli()%1_000_000)
}

// NewFromSelection builds a pending quote from the buyer's selected items and
// the current presentation template. Discount starts at zero; the template is
// snapshotted so later template edits do not rewrite existing quotes.
func NewFromSelection(items []types.LineItem, tmpl types.TemplateSnapshot, customerInfo string) (*models.QuoteDocument, error) {
	if len(items) == 0 {
		return nil, errors.New(errors.CodeValidation, "at least one line item is required")
	}

	totals, err := pricing.ComputeTotals(items, decimal.Zero)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &models.QuoteDocument{
		ID:           uuid.New(),
		QuoteNumber:  Number(now),
		Items:        append(types.LineItems{}, items...),
		ProductCount: len(items),
		Subtotal:     totals.Subtotal,
		Discount:     totals.Discount,
		Tax:          totals.Tax,
		Total:        totals.Total,
		Status:       enums.QuoteStatusPending,
		Template:     tmpl,
		CustomerInfo: customerInfo,
		CreateTime:   now,
		UpdateTime:   now,
	}, nil
}

// ApplyEdit rewrites the document in place with the patched fields and the
// recomputed money fields. Only pending quotes may be edited; on any error
// the document is left untouched.
func ApplyEdit(doc *models.QuoteDocument, patch EditPatch) error {
	if doc.Status != enums.QuoteStatusPending {
		return errors.New(errors.CodeEditNotAllowed, "only pending quotes can be edited").
			WithDetails(map[string]any{"status": doc.Status})
	}

	items := []types.LineItem(doc.Items)
	if patch.Items != nil {
		items = *patch.Items
	}
	discount := doc.Discount
	if patch.Discount != nil {
		discount = *patch.Discount
	}

	totals, err := pricing.ComputeTotals(items, discount)
	if err != nil {
		return err
	}

	doc.Items = append(types.LineItems{}, items...)
	doc.ProductCount = len(items)
	doc.Subtotal = totals.Subtotal
	doc.Discount = totals.Discount
	doc.Tax = totals.Tax
	doc.Total = totals.Total
	if patch.Remarks != nil {
		doc.Remarks = *patch.Remarks
	}
	doc.UpdateTime = time.Now()
	return nil
}

package quote

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwayev/quotedesk-backend/pkg/enums"
	"github.com/fairwayev/quotedesk-backend/pkg/errors"
	"github.com/fairwayev/quotedesk-backend/pkg/types"
)

func selectionItems() []types.LineItem {
	return []types.LineItem{
		{ID: "itm-1", SKU: "EV-100", Name: "Charger", UnitPrice: decimal.NewFromInt(10000)},
		{ID: "itm-2", SKU: "EV-200", Name: "Cable", UnitPrice: decimal.NewFromInt(5000)},
	}
}

func TestNumberFormat(t *testing.T) {
	at := time.Date(2026, time.March, 14, 15, 9, 26, 535_000_000, time.UTC)
	got := Number(at)

	assert.Len(t, got, 16)
	assert.Equal(t, "Q20260314-", got[:10])
	assert.Regexp(t, `^Q\d{8}-\d{6}$`, got)
}

func TestNewFromSelection(t *testing.T) {
	tmpl := types.TemplateSnapshot{CompanyName: "Fairway EV", ValidityDays: 30}

	doc, err := NewFromSelection(selectionItems(), tmpl, "ACME Corp / Jane")
	require.NoError(t, err)

	assert.Equal(t, enums.QuoteStatusPending, doc.Status)
	assert.Equal(t, 2, doc.ProductCount)
	assert.True(t, doc.Discount.IsZero())
	assert.True(t, doc.Subtotal.Equal(decimal.NewFromInt(15000)))
	assert.True(t, doc.Tax.Equal(decimal.NewFromInt(1950)))
	assert.True(t, doc.Total.Equal(decimal.NewFromInt(16950)))
	assert.Equal(t, "Fairway EV", doc.Template.CompanyName)
	assert.NotEqual(t, doc.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Regexp(t, `^Q\d{8}-\d{6}$`, doc.QuoteNumber)
}

func TestNewFromSelectionRequiresItems(t *testing.T) {
	_, err := NewFromSelection(nil, types.TemplateSnapshot{}, "")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeValidation))
}

func TestNewFromSelectionRejectsNegativeUnitPrice(t *testing.T) {
	items := []types.LineItem{
		{ID: "itm-1", Name: "Charger", UnitPrice: decimal.NewFromInt(10000)},
		{ID: "itm-2", Name: "Rebate", UnitPrice: decimal.NewFromInt(-5000)},
	}

	_, err := NewFromSelection(items, types.TemplateSnapshot{}, "")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeValidation))
}

func TestNewFromSelectionDistinctIDsInSameMillisecond(t *testing.T) {
	first, err := NewFromSelection(selectionItems(), types.TemplateSnapshot{}, "")
	require.NoError(t, err)
	second, err := NewFromSelection(selectionItems(), types.TemplateSnapshot{}, "")
	require.NoError(t, err)

	// Display numbers may collide inside one millisecond; ids never do.
	assert.NotEqual(t, first.ID, second.ID)
}

func TestApplyEditRecomputesTotals(t *testing.T) {
	doc, err := NewFromSelection(selectionItems(), types.TemplateSnapshot{}, "")
	require.NoError(t, err)

	discount := decimal.NewFromInt(5000)
	remarks := "net 30"
	require.NoError(t, ApplyEdit(doc, EditPatch{Discount: &discount, Remarks: &remarks}))

	assert.True(t, doc.Discount.Equal(discount))
	assert.True(t, doc.Tax.Equal(decimal.NewFromInt(1300)))
	assert.True(t, doc.Total.Equal(decimal.NewFromInt(11300)))
	assert.Equal(t, "net 30", doc.Remarks)
}

func TestApplyEditReplacesItems(t *testing.T) {
	doc, err := NewFromSelection(selectionItems(), types.TemplateSnapshot{}, "")
	require.NoError(t, err)

	items := []types.LineItem{{ID: "itm-9", Name: "Adapter", UnitPrice: decimal.NewFromInt(200)}}
	require.NoError(t, ApplyEdit(doc, EditPatch{Items: &items}))

	assert.Equal(t, 1, doc.ProductCount)
	assert.True(t, doc.Subtotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, doc.Tax.Equal(decimal.NewFromInt(26)))
	assert.True(t, doc.Total.Equal(decimal.NewFromInt(226)))
}

func TestApplyEditInvalidDiscountLeavesDocUnchanged(t *testing.T) {
	doc, err := NewFromSelection(selectionItems(), types.TemplateSnapshot{}, "")
	require.NoError(t, err)
	before := *doc

	discount := decimal.NewFromInt(999999)
	err = ApplyEdit(doc, EditPatch{Discount: &discount})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidDiscount))

	assert.True(t, doc.Subtotal.Equal(before.Subtotal))
	assert.True(t, doc.Discount.Equal(before.Discount))
	assert.True(t, doc.Tax.Equal(before.Tax))
	assert.True(t, doc.Total.Equal(before.Total))
}

func TestApplyEditRejectsNegativeUnitPrice(t *testing.T) {
	doc, err := NewFromSelection(selectionItems(), types.TemplateSnapshot{}, "")
	require.NoError(t, err)
	before := *doc

	items := []types.LineItem{{ID: "itm-9", Name: "Rebate", UnitPrice: decimal.NewFromInt(-1)}}
	err = ApplyEdit(doc, EditPatch{Items: &items})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeValidation))
	assert.True(t, doc.Subtotal.Equal(before.Subtotal))
	assert.Equal(t, before.ProductCount, doc.ProductCount)
}

func TestApplyEditRejectsNonPending(t *testing.T) {
	for _, status := range []enums.QuoteStatus{
		enums.QuoteStatusApproved,
		enums.QuoteStatusRejected,
		enums.QuoteStatusCompleted,
	} {
		doc, err := NewFromSelection(selectionItems(), types.TemplateSnapshot{}, "")
		require.NoError(t, err)
		doc.Status = status

		remarks := "late edit"
		err = ApplyEdit(doc, EditPatch{Remarks: &remarks})
		require.Error(t, err, "status %s", status)
		assert.True(t, errors.IsCode(err, errors.CodeEditNotAllowed))
		assert.Empty(t, doc.Remarks)
	}
}

package quote

import (
	"github.com/shopspring/decimal"

	"github.com/fairwayev/quotedesk-backend/pkg/types"
)

// EditPatch carries a partial edit to a pending quote. Nil fields are left
// unchanged; the derived money fields are always recomputed as a unit.
type EditPatch struct {
	Items    *[]types.LineItem
	Discount *decimal.Decimal
	Remarks  *string
}

// IsEmpty reports whether the patch would change nothing.
func (p EditPatch) IsEmpty() bool {
	return p.Items == nil && p.Discount == nil && p.Remarks == nil
}

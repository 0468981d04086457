package types

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// LineItem is one priced configuration entry on a quote, snapshotted from
// the catalog at selection time. Later catalog changes never touch it.
type LineItem struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	ImageRef    string          `json:"imageRef,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// LineItems is an ordered item list persisted as a JSON column.
type LineItems []LineItem

// Value serializes the items to JSON.
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan decodes a JSON column into the item slice.
func (l *LineItems) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded LineItems
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*l = decoded
	return nil
}

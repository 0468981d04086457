package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fairwayev/quotedesk-backend/pkg/types"
)

// Order is a quote frozen at the moment it was generated from a cart.
// Entries are immutable once appended; removal is whole-entry only.
type Order struct {
	ID           uuid.UUID              `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Seq          int64                  `gorm:"column:seq;uniqueIndex" json:"-"`
	QuoteNumber  string                 `gorm:"column:quote_number;not null" json:"quoteNumber"`
	Items        types.LineItems        `gorm:"column:items;type:jsonb" json:"items"`
	ProductCount int                    `gorm:"column:product_count;not null" json:"productCount"`
	Subtotal     decimal.Decimal        `gorm:"column:subtotal;type:numeric;not null" json:"subtotal"`
	Discount     decimal.Decimal        `gorm:"column:discount;type:numeric;not null" json:"discount"`
	Tax          decimal.Decimal        `gorm:"column:tax;type:numeric;not null" json:"tax"`
	Total        decimal.Decimal        `gorm:"column:total;type:numeric;not null" json:"total"`
	Template     types.TemplateSnapshot `gorm:"column:template;type:jsonb" json:"template"`
	CustomerInfo string                 `gorm:"column:customer_info" json:"customerInfo"`
	CreateTime   time.Time              `gorm:"column:create_time;not null" json:"createTime"`
}

// TableName binds the history ledger table.
func (Order) TableName() string {
	return "orders"
}

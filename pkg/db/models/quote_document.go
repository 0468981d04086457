package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fairwayev/quotedesk-backend/pkg/enums"
	"github.com/fairwayev/quotedesk-backend/pkg/types"
)

// QuoteDocument is the canonical priced document tracked while a quote is in
// review. Subtotal, tax and total are derived from items+discount and are
// only ever written together.
type QuoteDocument struct {
	ID           uuid.UUID              `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	QuoteNumber  string                 `gorm:"column:quote_number;not null" json:"quoteNumber"`
	Items        types.LineItems        `gorm:"column:items;type:jsonb" json:"items"`
	ProductCount int                    `gorm:"column:product_count;not null;default:0" json:"productCount"`
	Subtotal     decimal.Decimal        `gorm:"column:subtotal;type:numeric;not null" json:"subtotal"`
	Discount     decimal.Decimal        `gorm:"column:discount;type:numeric;not null" json:"discount"`
	Tax          decimal.Decimal        `gorm:"column:tax;type:numeric;not null" json:"tax"`
	Total        decimal.Decimal        `gorm:"column:total;type:numeric;not null" json:"total"`
	Status       enums.QuoteStatus      `gorm:"column:status;type:text;not null;default:'pending'" json:"status"`
	Template     types.TemplateSnapshot `gorm:"column:template;type:jsonb" json:"template"`
	CustomerInfo string                 `gorm:"column:customer_info" json:"customerInfo"`
	Remarks      string                 `gorm:"column:remarks" json:"remarks"`
	CreateTime   time.Time              `gorm:"column:create_time;not null" json:"createTime"`
	UpdateTime   time.Time              `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

// TableName binds the mirror table used when the remote store is unreachable.
func (QuoteDocument) TableName() string {
	return "quote_documents"
}

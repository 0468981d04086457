package models

import "time"

// QuoteTemplate is the single editable presentation template. Quotes capture
// a snapshot of it at creation time (see types.TemplateSnapshot).
type QuoteTemplate struct {
	ID             int       `gorm:"column:id;primaryKey" json:"-"`
	CompanyName    string    `gorm:"column:company_name;not null" json:"companyName"`
	CompanyPhone   string    `gorm:"column:company_phone" json:"companyPhone"`
	CompanyAddress string    `gorm:"column:company_address" json:"companyAddress"`
	ValidityDays   int       `gorm:"column:validity_days;not null;default:30" json:"validityDays"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

// TableName binds the template table.
func (QuoteTemplate) TableName() string {
	return "quote_templates"
}

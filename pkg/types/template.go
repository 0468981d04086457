package types

import (
	"database/sql/driver"
	"encoding/json"
)

// TemplateSnapshot is the presentation template captured into a quote at
// creation time, so later template edits never alter historical documents.
type TemplateSnapshot struct {
	CompanyName    string `json:"companyName"`
	CompanyPhone   string `json:"companyPhone"`
	CompanyAddress string `json:"companyAddress"`
	ValidityDays   int    `json:"validityDays"`
}

// Value serializes the snapshot to JSON.
func (t TemplateSnapshot) Value() (driver.Value, error) {
	return json.Marshal(t)
}

// Scan decodes a JSON column into the snapshot.
func (t *TemplateSnapshot) Scan(value interface{}) error {
	if value == nil {
		*t = TemplateSnapshot{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, t)
}

package export

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fairwayev/quotedesk-backend/pkg/db/models"
	"github.com/fairwayev/quotedesk-backend/pkg/types"
)

// Boilerplate terms printed at the foot of every exported quote.
var standardTerms = []string{
	"Prices are quoted in local currency and include 13% VAT.",
	"This quotation is valid until the date shown above.",
	"Goods remain the property of the seller until paid in full.",
}

// ImageState records what happened to a referenced image during the load
// join. Broken images render as broken rather than blocking the export.
type ImageState string

const (
	ImageStateNone   ImageState = "none"
	ImageStateLoaded ImageState = "loaded"
	ImageStateBroken ImageState = "broken"
)

// ViewLine is one rendered line item with its running total.
type ViewLine struct {
	Index        int             `json:"index"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	ImageRef     string          `json:"imageRef"`
	ImageState   ImageState      `json:"imageState"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	RunningTotal decimal.Decimal `json:"runningTotal"`
}

// ViewModel is the fully derived, renderer-ready representation of a quote.
// Building it twice from the same document yields identical values.
type ViewModel struct {
	QuoteNumber  string                 `json:"quoteNumber"`
	IssuedOn     string                 `json:"issuedOn"`
	ValidUntil   string                 `json:"validUntil"`
	Company      types.TemplateSnapshot `json:"company"`
	CustomerInfo string                 `json:"customerInfo"`
	Lines        []ViewLine             `json:"lines"`
	Subtotal     decimal.Decimal        `json:"subtotal"`
	Discount     decimal.Decimal        `json:"discount"`
	Tax          decimal.Decimal        `json:"tax"`
	Total        decimal.Decimal        `json:"total"`
	Remarks      string                 `json:"remarks"`
	Terms        []string               `json:"terms"`
}

// ViewInput is the document-shape both quotes and archived orders share.
type ViewInput struct {
	QuoteNumber  string
	Items        types.LineItems
	Subtotal     decimal.Decimal
	Discount     decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
	Template     types.TemplateSnapshot
	CustomerInfo string
	Remarks      string
	CreateTime   time.Time
}

// FromQuote adapts a review-queue document for view building.
func FromQuote(doc *models.QuoteDocument) ViewInput {
	return ViewInput{
		QuoteNumber:  doc.QuoteNumber,
		Items:        doc.Items,
		Subtotal:     doc.Subtotal,
		Discount:     doc.Discount,
		Tax:          doc.Tax,
		Total:        doc.Total,
		Template:     doc.Template,
		CustomerInfo: doc.CustomerInfo,
		Remarks:      doc.Remarks,
		CreateTime:   doc.CreateTime,
	}
}

// FromOrder adapts an archived history entry for view building.
func FromOrder(order *models.Order) ViewInput {
	return ViewInput{
		QuoteNumber:  order.QuoteNumber,
		Items:        order.Items,
		Subtotal:     order.Subtotal,
		Discount:     order.Discount,
		Tax:          order.Tax,
		Total:        order.Total,
		Template:     order.Template,
		CustomerInfo: order.CustomerInfo,
		CreateTime:   order.CreateTime,
	}
}

// BuildViewModel derives the renderer-ready view. Image states start as none
// or broken-agnostic pending; the coordinator fills them in after the load
// join.
func BuildViewModel(input ViewInput) *ViewModel {
	lines := make([]ViewLine, 0, len(input.Items))
	running := decimal.Zero
	for i, item := range input.Items {
		running = running.Add(item.UnitPrice)
		state := ImageStateNone
		if item.ImageRef != "" {
			state = ImageStateBroken
		}
		lines = append(lines, ViewLine{
			Index:        i + 1,
			SKU:          item.SKU,
			Name:         item.Name,
			Description:  item.Description,
			ImageRef:     item.ImageRef,
			ImageState:   state,
			UnitPrice:    item.UnitPrice,
			RunningTotal: running,
		})
	}

	validUntil := ""
	if days := input.Template.ValidityDays; days > 0 {
		validUntil = input.CreateTime.AddDate(0, 0, days).Format("2006-01-02")
	}

	return &ViewModel{
		QuoteNumber:  input.QuoteNumber,
		IssuedOn:     input.CreateTime.Format("2006-01-02"),
		ValidUntil:   validUntil,
		Company:      input.Template,
		CustomerInfo: input.CustomerInfo,
		Lines:        lines,
		Subtotal:     input.Subtotal,
		Discount:     input.Discount,
		Tax:          input.Tax,
		Total:        input.Total,
		Remarks:      input.Remarks,
		Terms:        standardTerms,
	}
}

// ArtifactName formats the download filename for an exported document.
func ArtifactName(label, quoteNumber, ext string) string {
	return fmt.Sprintf("%s_%s.%s", label, quoteNumber, ext)
}

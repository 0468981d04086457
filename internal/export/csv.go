package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/fairwayev/quotedesk-backend/internal/catalog"
	"github.com/fairwayev/quotedesk-backend/pkg/db/models"
)

// utf8BOM keeps spreadsheet tools from misreading non-ASCII customer names.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// OrdersCSV renders the order history as a comma-separated document with a
// UTF-8 byte-order marker and double-quoted text fields.
func OrdersCSV(orders []models.Order) []byte {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	writeCSVRow(&buf, "Quote Number", "Customer", "Products", "Subtotal", "Discount", "Tax", "Total", "Created")
	for _, order := range orders {
		writeCSVRow(&buf,
			order.QuoteNumber,
			order.CustomerInfo,
			fmt.Sprintf("%d", order.ProductCount),
			order.Subtotal.StringFixed(2),
			order.Discount.StringFixed(2),
			order.Tax.StringFixed(2),
			order.Total.StringFixed(2),
			order.CreateTime.Format("2006-01-02 15:04:05"),
		)
	}
	return buf.Bytes()
}

// PriceListCSV renders the current catalog prices.
func PriceListCSV(products []catalog.Product) []byte {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	writeCSVRow(&buf, "SKU", "Name", "Category", "Price", "Stock")
	for _, product := range products {
		writeCSVRow(&buf,
			product.SKU,
			product.Name,
			product.Category,
			product.Price.StringFixed(2),
			fmt.Sprintf("%d", product.Stock),
		)
	}
	return buf.Bytes()
}

// CSVListName formats the download filename for list exports, which have no
// single quote number to carry.
func CSVListName(label string, at time.Time) string {
	return fmt.Sprintf("%s_%s.csv", label, at.Format("20060102"))
}

func writeCSVRow(buf *bytes.Buffer, fields ...string) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteString("\r\n")
}

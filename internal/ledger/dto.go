package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fairwayev/quotedesk-backend/pkg/enums"
)

// Filter narrows the order history listing. Bucket and search compose with
// logical AND; the zero value matches everything.
type Filter struct {
	Bucket enums.DateBucket
	Search string
}

// CutoffAt resolves the bucket to an inclusive lower bound on create_time at
// the given instant. The second return is false for the all bucket.
func (f Filter) CutoffAt(now time.Time) (time.Time, bool) {
	switch f.Bucket {
	case enums.DateBucketToday:
		year, month, day := now.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, now.Location()), true
	case enums.DateBucketLast7Days:
		return now.AddDate(0, 0, -7), true
	case enums.DateBucketLastMonth:
		return now.AddDate(0, -1, 0), true
	default:
		return time.Time{}, false
	}
}

// NormalizedSearch returns the lowercased trimmed search term, empty when the
// filter has no text component.
func (f Filter) NormalizedSearch() string {
	return strings.ToLower(strings.TrimSpace(f.Search))
}

// Summary aggregates a listed slice of orders for the history header.
type Summary struct {
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TodayCount  int             `json:"todayCount"`
}

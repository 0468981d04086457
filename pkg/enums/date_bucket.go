package enums

import "fmt"

// DateBucket names the relative creation-time windows the order history
// list can filter on.
type DateBucket string

const (
	DateBucketToday     DateBucket = "today"
	DateBucketLast7Days DateBucket = "last7days"
	DateBucketLastMonth DateBucket = "lastMonth"
	DateBucketAll       DateBucket = "all"
)

var validDateBuckets = []DateBucket{
	DateBucketToday,
	DateBucketLast7Days,
	DateBucketLastMonth,
	DateBucketAll,
}

// String implements fmt.Stringer.
func (d DateBucket) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DateBucket.
func (d DateBucket) IsValid() bool {
	for _, candidate := range validDateBuckets {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDateBucket converts raw input into a DateBucket.
func ParseDateBucket(value string) (DateBucket, error) {
	if value == "" {
		return DateBucketAll, nil
	}
	for _, candidate := range validDateBuckets {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid date bucket %q", value)
}

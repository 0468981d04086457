package enums

import "fmt"

// QuoteStatus tracks the review lifecycle of a quote document.
type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "pending"
	QuoteStatusApproved  QuoteStatus = "approved"
	QuoteStatusRejected  QuoteStatus = "rejected"
	QuoteStatusCompleted QuoteStatus = "completed"
)

var validQuoteStatuses = []QuoteStatus{
	QuoteStatusPending,
	QuoteStatusApproved,
	QuoteStatusRejected,
	QuoteStatusCompleted,
}

// allowedQuoteTransitions lists every legal edge of the state machine.
// Rejected and completed are terminal.
var allowedQuoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteStatusPending:  {QuoteStatusApproved, QuoteStatusRejected},
	QuoteStatusApproved: {QuoteStatusCompleted},
}

// String implements fmt.Stringer.
func (q QuoteStatus) String() string {
	return string(q)
}

// IsValid reports whether the value is a known QuoteStatus.
func (q QuoteStatus) IsValid() bool {
	for _, candidate := range validQuoteStatuses {
		if candidate == q {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves this status.
func (q QuoteStatus) IsTerminal() bool {
	return len(allowedQuoteTransitions[q]) == 0
}

// CanTransitionTo reports whether the state machine permits moving to next.
func (q QuoteStatus) CanTransitionTo(next QuoteStatus) bool {
	for _, candidate := range allowedQuoteTransitions[q] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ParseQuoteStatus converts raw input into a QuoteStatus.
func ParseQuoteStatus(value string) (QuoteStatus, error) {
	for _, candidate := range validQuoteStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quote status %q", value)
}

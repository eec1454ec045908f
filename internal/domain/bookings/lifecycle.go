package bookings

import (
	"club-booking/backend/internal/fault"
)

// transitions is the full booking state machine. cancelled and completed
// are terminal: they key to empty sets.
var transitions = map[string]map[string]bool{
	StatusPending: {
		StatusConfirmed: true,
		StatusCancelled: true,
	},
	StatusConfirmed: {
		StatusCancelled: true,
		StatusCompleted: true,
	},
	StatusCancelled: {},
	StatusCompleted: {},
}

// CanTransition reports whether from -> to is a legal lifecycle step.
func CanTransition(from, to string) bool {
	return transitions[from][to]
}

// ValidateTransition returns an InvalidTransition fault for illegal steps.
func ValidateTransition(from, to string) error {
	if !CanTransition(from, to) {
		return &fault.InvalidTransition{From: from, To: to}
	}
	return nil
}

// IsTerminal reports whether no further transition is permitted.
func IsTerminal(status string) bool {
	return status == StatusCancelled || status == StatusCompleted
}

// CountsAsActive reports whether a booking in this status contributes to
// the member's activeBookingsCount.
func CountsAsActive(status string) bool {
	return status == StatusPending || status == StatusConfirmed
}

// ValidatePayment checks the embedded payment's internal consistency:
// a paid payment must carry its paid-at timestamp.
func ValidatePayment(p *Payment) error {
	if p == nil {
		return nil
	}
	if p.Status == PaymentPaid && p.PaidAt == nil {
		return &fault.Validation{Field: "payment.paidAt", Message: "paid payment requires paidAt"}
	}
	return nil
}

// nextCounter applies a delta to activeBookingsCount, clamped at zero so
// a repaired or stale member document can never go negative.
func nextCounter(count int64, delta int) int64 {
	count += int64(delta)
	if count < 0 {
		return 0
	}
	return count
}

// counterDelta is the activeBookingsCount adjustment for a transition.
func counterDelta(from, to string) int {
	switch {
	case CountsAsActive(from) && !CountsAsActive(to):
		return -1
	case !CountsAsActive(from) && CountsAsActive(to):
		return 1
	default:
		return 0
	}
}

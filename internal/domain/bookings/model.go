package bookings

import (
	"strings"
	"time"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"

	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"

	MethodCard     = "card"
	MethodCash     = "cash"
	MethodTransfer = "transfer"
)

// MinDurationMinutes is the shortest bookable slot.
const MinDurationMinutes = 15

var ValidStatuses = []string{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Payment is embedded in a booking once payment has been initiated.
// It has no identity or lifecycle of its own.
type Payment struct {
	Amount float64    `firestore:"amount" json:"amount" validate:"gte=0"`
	Method string     `firestore:"method" json:"method" validate:"required,oneof=card cash transfer"`
	Status string     `firestore:"status" json:"status" validate:"required,oneof=pending paid refunded"`
	PaidAt *time.Time `firestore:"paidAt,omitempty" json:"paidAt,omitempty"`
}

// Booking represents a member's reservation of a facility
type Booking struct {
	ID              string    `firestore:"id" json:"id"`
	MemberID        string    `firestore:"memberId" json:"memberId"`
	FacilityID      string    `firestore:"facilityId" json:"facilityId"`
	StartTime       time.Time `firestore:"startTime" json:"startTime"`
	EndTime         time.Time `firestore:"endTime" json:"endTime"`
	DurationMinutes int       `firestore:"durationMinutes" json:"durationMinutes"`
	Status          string    `firestore:"status" json:"status"`
	Payment         *Payment  `firestore:"payment,omitempty" json:"payment,omitempty"`
	CreatedAt       time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// CreateBookingInput represents input for creating a booking
type CreateBookingInput struct {
	MemberID   string    `json:"memberId" validate:"required"`
	FacilityID string    `json:"facilityId" validate:"required"`
	StartTime  time.Time `json:"startTime" validate:"required"`
	EndTime    time.Time `json:"endTime" validate:"required"`
	Status     string    `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed"`
	Payment    *Payment  `json:"payment,omitempty"`
}

func (in *CreateBookingInput) Trim() {
	in.MemberID = strings.TrimSpace(in.MemberID)
	in.FacilityID = strings.TrimSpace(in.FacilityID)
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	if in.Payment != nil {
		in.Payment.Method = strings.ToLower(strings.TrimSpace(in.Payment.Method))
		in.Payment.Status = strings.ToLower(strings.TrimSpace(in.Payment.Status))
	}
}

// AttachPaymentInput records payment initiation on an existing booking.
type AttachPaymentInput struct {
	Amount float64    `json:"amount" validate:"gte=0"`
	Method string     `json:"method" validate:"required,oneof=card cash transfer"`
	Status string     `json:"status" validate:"required,oneof=pending paid refunded"`
	PaidAt *time.Time `json:"paidAt,omitempty"`
}

func (in *AttachPaymentInput) Trim() {
	in.Method = strings.ToLower(strings.TrimSpace(in.Method))
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
}

// ListBookingsInput represents input for listing bookings
type ListBookingsInput struct {
	MemberID   string `json:"memberId,omitempty"`
	FacilityID string `json:"facilityId,omitempty"`
	Status     string `json:"status,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

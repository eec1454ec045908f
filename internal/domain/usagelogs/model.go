package usagelogs

import (
	"strings"
	"time"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// UsageLog is one facility visit: created at check-in, completed at
// check-out, when the duration is derived from the two timestamps.
type UsageLog struct {
	ID              string     `firestore:"id" json:"id"`
	MemberID        string     `firestore:"memberId" json:"memberId"`
	FacilityID      string     `firestore:"facilityId" json:"facilityId"`
	CheckIn         time.Time  `firestore:"checkIn" json:"checkIn"`
	CheckOut        *time.Time `firestore:"checkOut,omitempty" json:"checkOut,omitempty"`
	DurationMinutes int        `firestore:"durationMinutes" json:"durationMinutes"`
	Status          string     `firestore:"status" json:"status"`
	CreatedAt       time.Time  `firestore:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time  `firestore:"updatedAt" json:"updatedAt"`
}

// CheckInInput represents input for recording a check-in
type CheckInInput struct {
	MemberID   string     `json:"memberId" validate:"required"`
	FacilityID string     `json:"facilityId" validate:"required"`
	CheckIn    *time.Time `json:"checkIn,omitempty"` // defaults to now
}

func (in *CheckInInput) Trim() {
	in.MemberID = strings.TrimSpace(in.MemberID)
	in.FacilityID = strings.TrimSpace(in.FacilityID)
}

// CheckOutInput represents input for completing a session
type CheckOutInput struct {
	CheckOut *time.Time `json:"checkOut,omitempty"` // defaults to now
}

// ListUsageLogsInput represents input for listing usage logs
type ListUsageLogsInput struct {
	MemberID     string     `json:"memberId,omitempty"`
	FacilityID   string     `json:"facilityId,omitempty"`
	CheckInAfter *time.Time `json:"checkInAfter,omitempty"`
	Limit        int        `json:"limit,omitempty"`
}

package reports

import (
	"club-booking/backend/internal/domain/bookings"
	"club-booking/backend/internal/domain/facilities"
	"club-booking/backend/internal/domain/members"
	"club-booking/backend/internal/domain/usagelogs"
)

// Snapshot is the set of records a report computation sees. Reports never
// mutate it; rebuilding a snapshot and re-running a report is always safe.
type Snapshot struct {
	Bookings   []bookings.Booking
	UsageLogs  []usagelogs.UsageLog
	Members    []members.Member
	Facilities []facilities.Facility
}

// StatusCount is one row of the bookings-by-status report.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// MethodRevenue is one row of the revenue-by-payment-method report.
type MethodRevenue struct {
	Method       string  `json:"method"`
	TotalRevenue float64 `json:"totalRevenue"`
	BookingCount int     `json:"bookingCount"`
}

// MemberUsageRow is one row of the member usage report.
type MemberUsageRow struct {
	MemberID          string  `json:"memberId"`
	FirstName         string  `json:"firstName"`
	TotalMinutes      int     `json:"totalMinutes"`
	SessionCount      int     `json:"sessionCount"`
	AvgSessionMinutes float64 `json:"avgSessionMinutes"`
}

// FacilityUsageRow is one row of the facility usage distribution report.
type FacilityUsageRow struct {
	FacilityID        string  `json:"facilityId"`
	Name              string  `json:"name"`
	Type              string  `json:"type"`
	TotalVisits       int     `json:"totalVisits"`
	TotalMinutes      int     `json:"totalMinutes"`
	AvgSessionMinutes float64 `json:"avgSessionMinutes"`
}

package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club-booking/backend/internal/domain/bookings"
	"club-booking/backend/internal/domain/facilities"
	"club-booking/backend/internal/domain/members"
	"club-booking/backend/internal/domain/usagelogs"
)

func paid(amount float64, method string) *bookings.Payment {
	return &bookings.Payment{Amount: amount, Method: method, Status: bookings.PaymentPaid}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{name: "repeating third", input: 100.0 / 3.0, expected: 33.33},
		{name: "repeating two thirds", input: 200.0 / 3.0, expected: 66.67},
		{name: "rounds up", input: 1.006, expected: 1.01},
		{name: "negative rounds away from zero", input: -1.006, expected: -1.01},
		{name: "rounds down", input: 1.004, expected: 1.0},
		{name: "already exact", input: 12.5, expected: 12.5},
		{name: "zero", input: 0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Round2(tt.input), 1e-9)
		})
	}
}

func TestBookingsByStatus(t *testing.T) {
	snap := Snapshot{
		Bookings: []bookings.Booking{
			{ID: "b1", Status: bookings.StatusConfirmed},
			{ID: "b2", Status: bookings.StatusConfirmed},
			{ID: "b3", Status: bookings.StatusPending},
			{ID: "b4", Status: bookings.StatusCancelled},
			{ID: "b5", Status: bookings.StatusCompleted},
			{ID: "b6", Status: bookings.StatusCompleted},
		},
	}

	rows := BookingsByStatus(snap)
	require.Len(t, rows, 4)

	// count desc, status asc on ties
	assert.Equal(t, []StatusCount{
		{Status: "completed", Count: 2},
		{Status: "confirmed", Count: 2},
		{Status: "cancelled", Count: 1},
		{Status: "pending", Count: 1},
	}, rows)

	sum := 0
	for _, r := range rows {
		sum += r.Count
	}
	assert.Equal(t, BookingTotals(snap), sum)
}

func TestBookingsByStatusEmptySnapshot(t *testing.T) {
	rows := BookingsByStatus(Snapshot{})
	assert.Empty(t, rows)
	assert.Equal(t, 0, BookingTotals(Snapshot{}))
}

func TestRevenueByPaymentMethod(t *testing.T) {
	pending := &bookings.Payment{Amount: 999, Method: bookings.MethodCard, Status: bookings.PaymentPending}
	refunded := &bookings.Payment{Amount: 50, Method: bookings.MethodCash, Status: bookings.PaymentRefunded}

	snap := Snapshot{
		Bookings: []bookings.Booking{
			{ID: "b1", Payment: paid(120, bookings.MethodCard)},
			{ID: "b2", Payment: paid(240, bookings.MethodCard)},
			{ID: "b3", Payment: paid(120, bookings.MethodCard)},
			{ID: "b4", Payment: paid(150, bookings.MethodCash)},
			{ID: "b5", Payment: pending},
			{ID: "b6", Payment: refunded},
			{ID: "b7"}, // no payment at all
		},
	}

	rows := RevenueByPaymentMethod(snap)
	require.Len(t, rows, 2)
	assert.Equal(t, MethodRevenue{Method: "card", TotalRevenue: 480, BookingCount: 3}, rows[0])
	assert.Equal(t, MethodRevenue{Method: "cash", TotalRevenue: 150, BookingCount: 1}, rows[1])
}

func TestRevenueByPaymentMethodTieBreak(t *testing.T) {
	snap := Snapshot{
		Bookings: []bookings.Booking{
			{ID: "b1", Payment: paid(100, bookings.MethodTransfer)},
			{ID: "b2", Payment: paid(100, bookings.MethodCash)},
		},
	}

	rows := RevenueByPaymentMethod(snap)
	require.Len(t, rows, 2)
	assert.Equal(t, "cash", rows[0].Method)
	assert.Equal(t, "transfer", rows[1].Method)
}

func TestMemberUsageStatsWindowBoundary(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	cutoff := now.AddDate(0, 0, -30)

	snap := Snapshot{
		UsageLogs: []usagelogs.UsageLog{
			{ID: "l1", MemberID: "m1", CheckIn: cutoff, DurationMinutes: 60},                      // exactly on cutoff: included
			{ID: "l2", MemberID: "m2", CheckIn: cutoff.Add(-time.Second), DurationMinutes: 999},  // one second before: excluded
			{ID: "l3", MemberID: "m1", CheckIn: now.Add(-time.Hour), DurationMinutes: 40},
		},
		Members: []members.Member{
			{ID: "m1", FirstName: "Alice"},
			{ID: "m2", FirstName: "Bob"},
		},
	}

	rows := MemberUsageStats(snap, 0, 30, now)
	require.Len(t, rows, 1)
	assert.Equal(t, "m1", rows[0].MemberID)
	assert.Equal(t, "Alice", rows[0].FirstName)
	assert.Equal(t, 100, rows[0].TotalMinutes)
	assert.Equal(t, 2, rows[0].SessionCount)
	assert.InDelta(t, 50.0, rows[0].AvgSessionMinutes, 1e-9)
}

func TestMemberUsageStatsOrderingAndTopN(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	in := now.Add(-time.Hour)

	snap := Snapshot{
		UsageLogs: []usagelogs.UsageLog{
			{ID: "l1", MemberID: "m3", CheckIn: in, DurationMinutes: 90},
			{ID: "l2", MemberID: "m1", CheckIn: in, DurationMinutes: 45},
			{ID: "l3", MemberID: "m2", CheckIn: in, DurationMinutes: 45},
		},
		Members: []members.Member{{ID: "m1", FirstName: "Alice"}},
	}

	rows := MemberUsageStats(snap, 0, 30, now)
	require.Len(t, rows, 3)
	// minutes desc, member id asc on ties
	assert.Equal(t, "m3", rows[0].MemberID)
	assert.Equal(t, "m1", rows[1].MemberID)
	assert.Equal(t, "m2", rows[2].MemberID)

	// a log whose member is unknown keeps its row, name empty
	assert.Equal(t, "", rows[0].FirstName)

	top := MemberUsageStats(snap, 2, 30, now)
	require.Len(t, top, 2)
	assert.Equal(t, rows[:2], top)
}

func TestMemberUsageStatsDeterministic(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	in := now.Add(-time.Hour)

	snap := Snapshot{
		UsageLogs: []usagelogs.UsageLog{
			{ID: "l1", MemberID: "m2", CheckIn: in, DurationMinutes: 30},
			{ID: "l2", MemberID: "m1", CheckIn: in, DurationMinutes: 30},
			{ID: "l3", MemberID: "m3", CheckIn: in, DurationMinutes: 30},
		},
	}

	first := MemberUsageStats(snap, 0, 30, now)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, MemberUsageStats(snap, 0, 30, now))
	}
}

func TestFacilityUsageDistribution(t *testing.T) {
	snap := Snapshot{
		UsageLogs: []usagelogs.UsageLog{
			{ID: "l1", FacilityID: "f1", DurationMinutes: 60},
			{ID: "l2", FacilityID: "f1", DurationMinutes: 30},
			{ID: "l3", FacilityID: "f2", DurationMinutes: 45},
		},
		Facilities: []facilities.Facility{
			{ID: "f1", Name: "Gym A", Type: facilities.TypeGym},
			{ID: "f2", Name: "Pool 1", Type: facilities.TypePool},
			{ID: "f3", Name: "Court 2", Type: facilities.TypeCourt}, // zero logs: absent
		},
	}

	rows := FacilityUsageDistribution(snap)
	require.Len(t, rows, 2)

	assert.Equal(t, "f1", rows[0].FacilityID)
	assert.Equal(t, "Gym A", rows[0].Name)
	assert.Equal(t, "gym", rows[0].Type)
	assert.Equal(t, 2, rows[0].TotalVisits)
	assert.Equal(t, 90, rows[0].TotalMinutes)
	assert.InDelta(t, 45.0, rows[0].AvgSessionMinutes, 1e-9)

	assert.Equal(t, "f2", rows[1].FacilityID)
	assert.Equal(t, 1, rows[1].TotalVisits)
}

func TestFacilityUsageDistributionTieBreak(t *testing.T) {
	snap := Snapshot{
		UsageLogs: []usagelogs.UsageLog{
			{ID: "l1", FacilityID: "f2", DurationMinutes: 10},
			{ID: "l2", FacilityID: "f1", DurationMinutes: 10},
		},
	}

	rows := FacilityUsageDistribution(snap)
	require.Len(t, rows, 2)
	assert.Equal(t, "f1", rows[0].FacilityID)
	assert.Equal(t, "f2", rows[1].FacilityID)
}

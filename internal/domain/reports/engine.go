package reports

import (
	"math"
	"sort"
	"time"

	"club-booking/backend/internal/domain/bookings"
)

// The engine is a set of pure functions over a Snapshot. No clock reads,
// no store access, no mutation: identical input yields identical output,
// including ordering, so every sort carries a total tie-break.

// Round2 rounds half away from zero to two decimal places.
func Round2(x float64) float64 {
	return math.Copysign(math.Floor(math.Abs(x)*100+0.5)/100, x)
}

// BookingTotals counts every booking in the snapshot, terminal ones
// included.
func BookingTotals(snap Snapshot) int {
	return len(snap.Bookings)
}

// BookingsByStatus groups bookings by status, ordered by count descending
// with ties broken by status name ascending.
func BookingsByStatus(snap Snapshot) []StatusCount {
	counts := make(map[string]int)
	for _, b := range snap.Bookings {
		counts[b.Status]++
	}

	rows := make([]StatusCount, 0, len(counts))
	for status, count := range counts {
		rows = append(rows, StatusCount{Status: status, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Status < rows[j].Status
	})
	return rows
}

// RevenueByPaymentMethod sums paid payments by method, ordered by total
// revenue descending, ties by method name ascending. Bookings without a
// payment, or whose payment is not paid, contribute nothing; a method
// appears only if at least one paid booking used it.
func RevenueByPaymentMethod(snap Snapshot) []MethodRevenue {
	type agg struct {
		revenue float64
		count   int
	}
	byMethod := make(map[string]*agg)

	for _, b := range snap.Bookings {
		if b.Payment == nil || b.Payment.Status != bookings.PaymentPaid {
			continue
		}
		a := byMethod[b.Payment.Method]
		if a == nil {
			a = &agg{}
			byMethod[b.Payment.Method] = a
		}
		a.revenue += b.Payment.Amount
		a.count++
	}

	rows := make([]MethodRevenue, 0, len(byMethod))
	for method, a := range byMethod {
		rows = append(rows, MethodRevenue{
			Method:       method,
			TotalRevenue: a.revenue,
			BookingCount: a.count,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalRevenue != rows[j].TotalRevenue {
			return rows[i].TotalRevenue > rows[j].TotalRevenue
		}
		return rows[i].Method < rows[j].Method
	})
	return rows
}

// MemberUsageStats groups usage logs checked in within the trailing
// windowDays of now (boundary inclusive) by member, ordered by total
// minutes descending with ties by member id ascending, truncated to topN
// (topN <= 0 means no truncation). Members with zero qualifying sessions
// are absent; a log whose member is missing from the snapshot keeps its
// row with an empty first name.
func MemberUsageStats(snap Snapshot, topN, windowDays int, now time.Time) []MemberUsageRow {
	cutoff := now.AddDate(0, 0, -windowDays)

	type agg struct {
		minutes  int
		sessions int
	}
	byMember := make(map[string]*agg)

	for _, log := range snap.UsageLogs {
		if log.CheckIn.Before(cutoff) {
			continue
		}
		a := byMember[log.MemberID]
		if a == nil {
			a = &agg{}
			byMember[log.MemberID] = a
		}
		a.minutes += log.DurationMinutes
		a.sessions++
	}

	names := make(map[string]string, len(snap.Members))
	for _, m := range snap.Members {
		names[m.ID] = m.FirstName
	}

	rows := make([]MemberUsageRow, 0, len(byMember))
	for memberID, a := range byMember {
		rows = append(rows, MemberUsageRow{
			MemberID:          memberID,
			FirstName:         names[memberID],
			TotalMinutes:      a.minutes,
			SessionCount:      a.sessions,
			AvgSessionMinutes: Round2(float64(a.minutes) / float64(a.sessions)),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalMinutes != rows[j].TotalMinutes {
			return rows[i].TotalMinutes > rows[j].TotalMinutes
		}
		return rows[i].MemberID < rows[j].MemberID
	})

	if topN > 0 && len(rows) > topN {
		rows = rows[:topN]
	}
	return rows
}

// FacilityUsageDistribution groups usage logs by facility, ordered by
// visit count descending with ties by facility id ascending. Facilities
// with zero logs are absent.
func FacilityUsageDistribution(snap Snapshot) []FacilityUsageRow {
	type agg struct {
		minutes int
		visits  int
	}
	byFacility := make(map[string]*agg)

	for _, log := range snap.UsageLogs {
		a := byFacility[log.FacilityID]
		if a == nil {
			a = &agg{}
			byFacility[log.FacilityID] = a
		}
		a.minutes += log.DurationMinutes
		a.visits++
	}

	type facilityInfo struct {
		name string
		typ  string
	}
	info := make(map[string]facilityInfo, len(snap.Facilities))
	for _, f := range snap.Facilities {
		info[f.ID] = facilityInfo{name: f.Name, typ: f.Type}
	}

	rows := make([]FacilityUsageRow, 0, len(byFacility))
	for facilityID, a := range byFacility {
		fi := info[facilityID]
		rows = append(rows, FacilityUsageRow{
			FacilityID:        facilityID,
			Name:              fi.name,
			Type:              fi.typ,
			TotalVisits:       a.visits,
			TotalMinutes:      a.minutes,
			AvgSessionMinutes: Round2(float64(a.minutes) / float64(a.visits)),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalVisits != rows[j].TotalVisits {
			return rows[i].TotalVisits > rows[j].TotalVisits
		}
		return rows[i].FacilityID < rows[j].FacilityID
	})
	return rows
}

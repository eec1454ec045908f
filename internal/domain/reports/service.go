package reports

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"club-booking/backend/internal/domain/bookings"
	"club-booking/backend/internal/domain/facilities"
	"club-booking/backend/internal/domain/members"
	"club-booking/backend/internal/domain/usagelogs"
	"club-booking/backend/internal/fault"
)

// Service loads snapshots from Firestore and delegates to the pure engine.
// The clock is injected so window-relative reports never read wall time
// themselves.
type Service struct {
	client *firestore.Client
	now    func() time.Time
}

func NewService(client *firestore.Client) *Service {
	return &Service{client: client, now: time.Now}
}

// SetClock overrides the injected time source.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) BookingTotals(ctx context.Context) (int, error) {
	snap, err := s.loadBookingSnapshot(ctx)
	if err != nil {
		return 0, err
	}
	return BookingTotals(snap), nil
}

func (s *Service) BookingsByStatus(ctx context.Context) ([]StatusCount, error) {
	snap, err := s.loadBookingSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return BookingsByStatus(snap), nil
}

func (s *Service) RevenueByPaymentMethod(ctx context.Context) ([]MethodRevenue, error) {
	snap, err := s.loadBookingSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return RevenueByPaymentMethod(snap), nil
}

func (s *Service) MemberUsageStats(ctx context.Context, topN, windowDays int) ([]MemberUsageRow, error) {
	if windowDays <= 0 {
		return nil, fmt.Errorf("%w: windowDays must be positive", ErrBadRequest)
	}

	now := s.now().UTC()
	cutoff := now.AddDate(0, 0, -windowDays)

	snap := Snapshot{}
	var err error
	// pre-filter server-side; the engine re-applies the boundary
	if snap.UsageLogs, err = s.loadUsageLogs(ctx, &cutoff); err != nil {
		return nil, err
	}
	if snap.Members, err = s.loadMembers(ctx); err != nil {
		return nil, err
	}

	return MemberUsageStats(snap, topN, windowDays, now), nil
}

func (s *Service) FacilityUsageDistribution(ctx context.Context) ([]FacilityUsageRow, error) {
	snap := Snapshot{}
	var err error
	if snap.UsageLogs, err = s.loadUsageLogs(ctx, nil); err != nil {
		return nil, err
	}
	if snap.Facilities, err = s.loadFacilities(ctx); err != nil {
		return nil, err
	}
	return FacilityUsageDistribution(snap), nil
}

func (s *Service) loadBookingSnapshot(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{}
	iter := s.client.Collection("bookings").Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return snap, fault.FromStore("reports.loadBookings", err)
		}

		var b bookings.Booking
		if err := doc.DataTo(&b); err != nil {
			continue
		}
		b.ID = doc.Ref.ID
		snap.Bookings = append(snap.Bookings, b)
	}
	return snap, nil
}

func (s *Service) loadUsageLogs(ctx context.Context, since *time.Time) ([]usagelogs.UsageLog, error) {
	query := s.client.Collection("usageLogs").Query
	if since != nil {
		query = query.Where("checkIn", ">=", *since)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var out []usagelogs.UsageLog
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fault.FromStore("reports.loadUsageLogs", err)
		}

		var log usagelogs.UsageLog
		if err := doc.DataTo(&log); err != nil {
			continue
		}
		log.ID = doc.Ref.ID
		out = append(out, log)
	}
	return out, nil
}

func (s *Service) loadMembers(ctx context.Context) ([]members.Member, error) {
	iter := s.client.Collection("members").Documents(ctx)
	defer iter.Stop()

	var out []members.Member
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fault.FromStore("reports.loadMembers", err)
		}

		var m members.Member
		if err := doc.DataTo(&m); err != nil {
			continue
		}
		m.ID = doc.Ref.ID
		out = append(out, m)
	}
	return out, nil
}

func (s *Service) loadFacilities(ctx context.Context) ([]facilities.Facility, error) {
	iter := s.client.Collection("facilities").Documents(ctx)
	defer iter.Stop()

	var out []facilities.Facility
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fault.FromStore("reports.loadFacilities", err)
		}

		var f facilities.Facility
		if err := doc.DataTo(&f); err != nil {
			continue
		}
		f.ID = doc.Ref.ID
		out = append(out, f)
	}
	return out, nil
}

package bookings

import (
	"context"
	"fmt"
	"time"

	"club-booking/backend/internal/domain/facilities"
	"club-booking/backend/internal/domain/levels"
	"club-booking/backend/internal/domain/members"
	"club-booking/backend/internal/domain/notifications"
	"club-booking/backend/internal/fault"
	"club-booking/backend/internal/validate"
)

type Service struct {
	repo         *Repo
	memberRepo   *members.Repo
	facilityRepo *facilities.Repo
	levelRepo    *levels.Repo
	notifSvc     *notifications.Service

	now func() time.Time
}

func NewService(repo *Repo, memberRepo *members.Repo, facilityRepo *facilities.Repo, levelRepo *levels.Repo) *Service {
	return &Service{
		repo:         repo,
		memberRepo:   memberRepo,
		facilityRepo: facilityRepo,
		levelRepo:    levelRepo,
		now:          time.Now,
	}
}

// SetNotificationService wires booking lifecycle notifications. Optional.
func (s *Service) SetNotificationService(n *notifications.Service) {
	s.notifSvc = n
}

// checkPolicy applies the membership-level booking rules. Pure: everything
// it needs, including the clock, comes in as arguments.
func checkPolicy(m *members.Member, f *facilities.Facility, lvl *levels.MembershipLevel, start time.Time, sameDayActive int, now time.Time) error {
	if m.Status != members.StatusActive {
		return fmt.Errorf("%w: member is %s", ErrForbidden, m.Status)
	}
	if f.Status != facilities.StatusAvailable {
		return fmt.Errorf("%w: facility is %s", ErrForbidden, f.Status)
	}

	allowed := false
	for _, t := range lvl.AccessibleFacilityTypes {
		if t == f.Type {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: membership level %q does not include %s access", ErrForbidden, lvl.Name, f.Type)
	}

	windowEnd := now.AddDate(0, 0, lvl.AdvanceBookingWindowDays)
	if start.After(windowEnd) {
		return fmt.Errorf("%w: start time is beyond the %d-day advance booking window", ErrForbidden, lvl.AdvanceBookingWindowDays)
	}

	if sameDayActive >= lvl.MaxBookingsPerDay {
		return fmt.Errorf("%w: daily booking limit of %d reached", ErrForbidden, lvl.MaxBookingsPerDay)
	}

	return nil
}

// Create books a facility for a member, enforcing field constraints, the
// membership policy, and payment consistency before the write.
func (s *Service) Create(ctx context.Context, in CreateBookingInput) (*Booking, error) {
	in.Trim()
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	if !in.EndTime.After(in.StartTime) {
		return nil, &fault.Validation{Field: "endTime", Message: "must be after startTime"}
	}
	span := in.EndTime.Sub(in.StartTime)
	if span%time.Minute != 0 {
		return nil, &fault.Validation{Field: "endTime", Message: "must be a whole number of minutes after startTime"}
	}
	duration := int(span / time.Minute)
	if duration < MinDurationMinutes {
		return nil, &fault.Validation{Field: "durationMinutes", Message: fmt.Sprintf("must be at least %d", MinDurationMinutes)}
	}

	if in.Payment != nil {
		if err := validate.Struct(in.Payment); err != nil {
			return nil, err
		}
		if err := ValidatePayment(in.Payment); err != nil {
			return nil, err
		}
	}

	m, err := s.memberRepo.Get(ctx, in.MemberID)
	if err != nil {
		if fault.IsUnavailable(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: member not found", ErrNotFound)
	}
	f, err := s.facilityRepo.Get(ctx, in.FacilityID)
	if err != nil {
		if fault.IsUnavailable(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: facility not found", ErrNotFound)
	}
	lvl, err := s.levelRepo.Get(ctx, m.MembershipLevelID)
	if err != nil {
		return nil, fmt.Errorf("member %s has a dangling membership level: %w", m.ID, err)
	}

	now := s.now().UTC()
	dayStart := time.Date(in.StartTime.Year(), in.StartTime.Month(), in.StartTime.Day(), 0, 0, 0, 0, time.UTC)
	sameDayActive, err := s.repo.CountActiveStartingBetween(ctx, m.ID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	if err := checkPolicy(m, f, lvl, in.StartTime, sameDayActive, now); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = StatusPending
	}

	b := Booking{
		MemberID:        m.ID,
		FacilityID:      f.ID,
		StartTime:       in.StartTime.UTC(),
		EndTime:         in.EndTime.UTC(),
		DurationMinutes: duration,
		Status:          status,
		Payment:         in.Payment,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, err
	}

	if status == StatusConfirmed {
		s.notify(ctx, m.ID, fmt.Sprintf("Your booking at %s on %s is confirmed.", f.Name, created.StartTime.Format("2006-01-02 15:04")))
	}
	return created, nil
}

// Confirm moves a pending booking to confirmed and notifies the member.
func (s *Service) Confirm(ctx context.Context, bookingID string) (*Booking, error) {
	b, err := s.repo.Transition(ctx, bookingID, StatusConfirmed)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, b.MemberID, fmt.Sprintf("Your booking on %s is confirmed.", b.StartTime.Format("2006-01-02 15:04")))
	return b, nil
}

// Cancel moves a booking to cancelled. The record is retained for
// historical reporting.
func (s *Service) Cancel(ctx context.Context, bookingID string) (*Booking, error) {
	b, err := s.repo.Transition(ctx, bookingID, StatusCancelled)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, b.MemberID, fmt.Sprintf("Your booking on %s was cancelled.", b.StartTime.Format("2006-01-02 15:04")))
	return b, nil
}

// Complete marks a confirmed booking as completed.
func (s *Service) Complete(ctx context.Context, bookingID string) (*Booking, error) {
	return s.repo.Transition(ctx, bookingID, StatusCompleted)
}

// AttachPayment records payment initiation on an existing booking.
func (s *Service) AttachPayment(ctx context.Context, bookingID string, in AttachPaymentInput) (*Booking, error) {
	in.Trim()
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	return s.repo.AttachPayment(ctx, bookingID, Payment{
		Amount: in.Amount,
		Method: in.Method,
		Status: in.Status,
		PaidAt: in.PaidAt,
	})
}

func (s *Service) Get(ctx context.Context, bookingID string) (*Booking, error) {
	return s.repo.Get(ctx, bookingID)
}

func (s *Service) List(ctx context.Context, in ListBookingsInput) ([]Booking, error) {
	return s.repo.List(ctx, in)
}

// notify is best-effort: a failed notification write never fails the
// booking operation that triggered it.
func (s *Service) notify(ctx context.Context, memberID, message string) {
	if s.notifSvc == nil {
		return
	}
	_, _ = s.notifSvc.Create(ctx, notifications.CreateNotificationInput{
		MemberID: memberID,
		Message:  message,
	})
}

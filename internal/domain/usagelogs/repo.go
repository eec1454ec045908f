package usagelogs

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"club-booking/backend/internal/fault"
	"club-booking/backend/internal/validate"
)

type Repo struct {
	client *firestore.Client
}

func NewRepo(client *firestore.Client) *Repo {
	return &Repo{client: client}
}

func (r *Repo) col() *firestore.CollectionRef {
	return r.client.Collection("usageLogs")
}

// CheckIn opens a new usage session for a member at a facility.
func (r *Repo) CheckIn(ctx context.Context, in CheckInInput) (*UsageLog, error) {
	in.Trim()
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	checkIn := now
	if in.CheckIn != nil {
		checkIn = in.CheckIn.UTC()
	}

	log := UsageLog{
		MemberID:   in.MemberID,
		FacilityID: in.FacilityID,
		CheckIn:    checkIn,
		Status:     StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	ref := r.col().NewDoc()
	log.ID = ref.ID
	if _, err := ref.Set(ctx, log); err != nil {
		return nil, fault.FromStore("usagelogs.checkIn", err)
	}
	return &log, nil
}

// CheckOut completes an active session, deriving the duration from the
// check-in and check-out timestamps.
func (r *Repo) CheckOut(ctx context.Context, logID string, in CheckOutInput) (*UsageLog, error) {
	log, err := r.Get(ctx, logID)
	if err != nil {
		return nil, err
	}
	if log.Status == StatusCompleted {
		return nil, fmt.Errorf("%w: session already completed", ErrBadRequest)
	}

	now := time.Now().UTC()
	checkOut := now
	if in.CheckOut != nil {
		checkOut = in.CheckOut.UTC()
	}
	if !checkOut.After(log.CheckIn) {
		return nil, &fault.Validation{Field: "checkOut", Message: "must be after checkIn"}
	}

	log.CheckOut = &checkOut
	log.DurationMinutes = int(checkOut.Sub(log.CheckIn) / time.Minute)
	log.Status = StatusCompleted
	log.UpdatedAt = now

	if _, err := r.col().Doc(logID).Set(ctx, *log); err != nil {
		return nil, fault.FromStore("usagelogs.checkOut", err)
	}
	return log, nil
}

// Get retrieves a usage log by ID
func (r *Repo) Get(ctx context.Context, logID string) (*UsageLog, error) {
	doc, err := r.col().Doc(logID).Get(ctx)
	if err != nil {
		if mapped := fault.FromStore("usagelogs.get", err); fault.IsUnavailable(mapped) {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: usage log not found", ErrNotFound)
	}

	var log UsageLog
	if err := doc.DataTo(&log); err != nil {
		return nil, fmt.Errorf("failed to decode usage log: %w", err)
	}
	log.ID = doc.Ref.ID
	return &log, nil
}

// List lists usage logs, newest check-in first.
func (r *Repo) List(ctx context.Context, in ListUsageLogsInput) ([]UsageLog, error) {
	query := r.col().Query
	if in.MemberID != "" {
		query = query.Where("memberId", "==", in.MemberID)
	}
	if in.FacilityID != "" {
		query = query.Where("facilityId", "==", in.FacilityID)
	}
	if in.CheckInAfter != nil {
		query = query.Where("checkIn", ">=", in.CheckInAfter.UTC())
	}

	query = query.OrderBy("checkIn", firestore.Desc)

	limit := in.Limit
	if limit <= 0 || limit > 1000 {
		limit = 200
	}
	query = query.Limit(limit)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var out []UsageLog
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fault.FromStore("usagelogs.list", err)
		}

		var log UsageLog
		if err := doc.DataTo(&log); err != nil {
			continue
		}
		log.ID = doc.Ref.ID
		out = append(out, log)
	}

	if out == nil {
		out = []UsageLog{}
	}
	return out, nil
}

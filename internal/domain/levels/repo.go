package levels

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
	return r.client.Collection("membershipLevels")
}

// Create validates and persists a new membership level.
func (r *Repo) Create(ctx context.Context, in CreateLevelInput) (*MembershipLevel, error) {
	in.Trim()
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	lvl := MembershipLevel{
		Name:                     in.Name,
		MaxBookingsPerDay:        in.MaxBookingsPerDay,
		AdvanceBookingWindowDays: in.AdvanceBookingWindowDays,
		AccessibleFacilityTypes:  in.AccessibleFacilityTypes,
		Price:                    in.Price,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	ref := r.col().NewDoc()
	lvl.ID = ref.ID
	if _, err := ref.Set(ctx, lvl); err != nil {
		return nil, fault.FromStore("levels.create", err)
	}
	return &lvl, nil
}

// Get retrieves a membership level by ID
func (r *Repo) Get(ctx context.Context, levelID string) (*MembershipLevel, error) {
	doc, err := r.col().Doc(levelID).Get(ctx)
	if err != nil {
		if mapped := fault.FromStore("levels.get", err); fault.IsUnavailable(mapped) {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: membership level not found", ErrNotFound)
	}

	var lvl MembershipLevel
	if err := doc.DataTo(&lvl); err != nil {
		return nil, fmt.Errorf("failed to decode membership level: %w", err)
	}
	lvl.ID = doc.Ref.ID
	return &lvl, nil
}

// Update applies a partial edit after re-validating the merged document.
func (r *Repo) Update(ctx context.Context, levelID string, in UpdateLevelInput) (*MembershipLevel, error) {
	in.Trim()
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	lvl, err := r.Get(ctx, levelID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		lvl.Name = *in.Name
	}
	if in.MaxBookingsPerDay != nil {
		lvl.MaxBookingsPerDay = *in.MaxBookingsPerDay
	}
	if in.AdvanceBookingWindowDays != nil {
		lvl.AdvanceBookingWindowDays = *in.AdvanceBookingWindowDays
	}
	if in.AccessibleFacilityTypes != nil {
		lvl.AccessibleFacilityTypes = *in.AccessibleFacilityTypes
	}
	if in.Price != nil {
		lvl.Price = *in.Price
	}
	lvl.UpdatedAt = time.Now().UTC()

	if _, err := r.col().Doc(levelID).Set(ctx, lvl); err != nil {
		return nil, fault.FromStore("levels.update", err)
	}
	return lvl, nil
}

// Delete removes a level unless a member still points at it.
func (r *Repo) Delete(ctx context.Context, levelID string) error {
	if _, err := r.Get(ctx, levelID); err != nil {
		return err
	}

	iter := r.client.Collection("members").
		Where("membershipLevelId", "==", levelID).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == nil {
		return &fault.ReferentialIntegrity{
			Entity:  "membershipLevel",
			ID:      levelID,
			Message: "members still reference this level",
		}
	}
	if err != iterator.Done {
		return fault.FromStore("levels.delete", err)
	}

	if _, err := r.col().Doc(levelID).Delete(ctx); err != nil {
		return fault.FromStore("levels.delete", err)
	}
	return nil
}

// List lists membership levels in document-ID order.
func (r *Repo) List(ctx context.Context, limit int) ([]MembershipLevel, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}

	iter := r.col().Limit(limit).Documents(ctx)
	defer iter.Stop()

	var out []MembershipLevel
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fault.FromStore("levels.list", err)
		}

		var lvl MembershipLevel
		if err := doc.DataTo(&lvl); err != nil {
			continue
		}
		lvl.ID = doc.Ref.ID
		out = append(out, lvl)
	}

	if out == nil {
		out = []MembershipLevel{}
	}
	return out, nil
}

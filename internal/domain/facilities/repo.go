package facilities

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"club-booking/backend/internal/fault"
	"club-booking/backend/internal/utils"
	"club-booking/backend/internal/validate"
)

type Repo struct {
	client *firestore.Client
}

func NewRepo(client *firestore.Client) *Repo {
	return &Repo{client: client}
}

func (r *Repo) col() *firestore.CollectionRef {
	return r.client.Collection("facilities")
}

// checkOpeningHours enforces Open < Close per window; the tag validator
// only checks the clock format.
func checkOpeningHours(windows []OpeningWindow) error {
	for _, w := range windows {
		if w.Open >= w.Close {
			return &fault.Validation{
				Field:   "openingHours",
				Message: fmt.Sprintf("window on %s closes (%s) before it opens (%s)", w.Day, w.Close, w.Open),
			}
		}
	}
	return nil
}

// Create validates and persists a new facility.
func (r *Repo) Create(ctx context.Context, in CreateFacilityInput) (*Facility, error) {
	in.Trim()
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if err := checkOpeningHours(in.OpeningHours); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = StatusAvailable
	}

	now := time.Now().UTC()
	f := Facility{
		Name:            in.Name,
		Type:            in.Type,
		Status:          status,
		MaintenanceNote: in.MaintenanceNote,
		AssignedStaff:   in.AssignedStaff,
		OpeningHours:    in.OpeningHours,
		SearchKeywords:  utils.SearchTokens(in.Name, in.Type),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if f.AssignedStaff == nil {
		f.AssignedStaff = []StaffAssignment{}
	}
	if f.OpeningHours == nil {
		f.OpeningHours = []OpeningWindow{}
	}

	ref := r.col().NewDoc()
	f.ID = ref.ID
	if _, err := ref.Set(ctx, f); err != nil {
		return nil, fault.FromStore("facilities.create", err)
	}
	return &f, nil
}

// Get retrieves a facility by ID
func (r *Repo) Get(ctx context.Context, facilityID string) (*Facility, error) {
	doc, err := r.col().Doc(facilityID).Get(ctx)
	if err != nil {
		if mapped := fault.FromStore("facilities.get", err); fault.IsUnavailable(mapped) {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: facility not found", ErrNotFound)
	}

	var f Facility
	if err := doc.DataTo(&f); err != nil {
		return nil, fmt.Errorf("failed to decode facility: %w", err)
	}
	f.ID = doc.Ref.ID
	return &f, nil
}

// Update applies a partial edit after re-validating the merged document.
func (r *Repo) Update(ctx context.Context, facilityID string, in UpdateFacilityInput) (*Facility, error) {
	in.Trim()
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if in.OpeningHours != nil {
		if err := checkOpeningHours(*in.OpeningHours); err != nil {
			return nil, err
		}
	}

	f, err := r.Get(ctx, facilityID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		f.Name = *in.Name
	}
	if in.Type != nil {
		f.Type = *in.Type
	}
	if in.Status != nil {
		f.Status = *in.Status
	}
	if in.MaintenanceNote != nil {
		f.MaintenanceNote = *in.MaintenanceNote
	}
	if in.AssignedStaff != nil {
		f.AssignedStaff = *in.AssignedStaff
	}
	if in.OpeningHours != nil {
		f.OpeningHours = *in.OpeningHours
	}
	f.SearchKeywords = utils.SearchTokens(f.Name, f.Type)
	f.UpdatedAt = time.Now().UTC()

	if _, err := r.col().Doc(facilityID).Set(ctx, f); err != nil {
		return nil, fault.FromStore("facilities.update", err)
	}
	return f, nil
}

// deleteBlockingStatuses are the booking statuses that keep a facility
// referenced. Terminal bookings are history and never block removal.
var deleteBlockingStatuses = []string{"pending", "confirmed"}

// bookingBlocksDelete reports whether a referencing booking in this status
// prevents facility removal.
func bookingBlocksDelete(status string) bool {
	for _, s := range deleteBlockingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Delete removes a facility unless a pending or confirmed booking still
// references it. Cancelled and completed bookings do not block deletion.
func (r *Repo) Delete(ctx context.Context, facilityID string) error {
	if _, err := r.Get(ctx, facilityID); err != nil {
		return err
	}

	iter := r.client.Collection("bookings").
		Where("facilityId", "==", facilityID).
		Where("status", "in", deleteBlockingStatuses).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == nil {
		return &fault.ReferentialIntegrity{
			Entity:  "facility",
			ID:      facilityID,
			Message: "active bookings still reference this facility",
		}
	}
	if err != iterator.Done {
		return fault.FromStore("facilities.delete", err)
	}

	if _, err := r.col().Doc(facilityID).Delete(ctx); err != nil {
		return fault.FromStore("facilities.delete", err)
	}
	return nil
}

// List lists facilities, optionally filtered by type and status.
func (r *Repo) List(ctx context.Context, in ListFacilitiesInput) ([]Facility, error) {
	query := r.col().Query
	if in.Type != "" {
		query = query.Where("type", "==", in.Type)
	}
	if in.Status != "" {
		query = query.Where("status", "==", in.Status)
	}

	limit := in.Limit
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	query = query.Limit(limit)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var out []Facility
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fault.FromStore("facilities.list", err)
		}

		var f Facility
		if err := doc.DataTo(&f); err != nil {
			continue
		}
		f.ID = doc.Ref.ID
		out = append(out, f)
	}

	if out == nil {
		out = []Facility{}
	}
	return out, nil
}

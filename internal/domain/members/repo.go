package members

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"club-booking/backend/internal/domain/levels"
	"club-booking/backend/internal/fault"
	"club-booking/backend/internal/utils"
	"club-booking/backend/internal/validate"
)

type Repo struct {
	client    *firestore.Client
	levelRepo *levels.Repo
}

func NewRepo(client *firestore.Client, levelRepo *levels.Repo) *Repo {
	return &Repo{client: client, levelRepo: levelRepo}
}

func (r *Repo) col() *firestore.CollectionRef {
	return r.client.Collection("members")
}

// Create validates and persists a new member. Email uniqueness is enforced
// inside a transaction: the duplicate check and the insert commit together.
func (r *Repo) Create(ctx context.Context, in CreateMemberInput) (*Member, error) {
	in.Trim()
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	if _, err := r.levelRepo.Get(ctx, in.MembershipLevelID); err != nil {
		if fault.IsUnavailable(err) {
			return nil, err
		}
		return nil, &fault.Validation{Field: "membershipLevelId", Message: "membership level does not exist"}
	}

	status := in.Status
	if status == "" {
		status = StatusActive
	}

	now := time.Now().UTC()
	m := Member{
		FirstName:           in.FirstName,
		LastName:            in.LastName,
		Email:               in.Email,
		Phone:               in.Phone,
		MembershipLevelID:   in.MembershipLevelID,
		Status:              status,
		ActiveBookingsCount: 0,
		PasswordHash:        in.PasswordHash,
		NameLower:           utils.NormalizeNameLower(in.FirstName + " " + in.LastName),
		SearchKeywords:      utils.SearchTokens(in.FirstName, in.LastName, in.Email),
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	ref := r.col().NewDoc()
	m.ID = ref.ID

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		dup := tx.Documents(r.col().Where("email", "==", m.Email).Limit(1))
		defer dup.Stop()

		if _, err := dup.Next(); err == nil {
			return &fault.Validation{Field: "email", Message: "email is already registered"}
		} else if err != iterator.Done {
			return err
		}

		return tx.Create(ref, m)
	})
	if err != nil {
		if fault.IsValidation(err) {
			return nil, err
		}
		return nil, fault.FromStore("members.create", err)
	}

	return &m, nil
}

// Get retrieves a member by ID
func (r *Repo) Get(ctx context.Context, memberID string) (*Member, error) {
	doc, err := r.col().Doc(memberID).Get(ctx)
	if err != nil {
		if mapped := fault.FromStore("members.get", err); fault.IsUnavailable(mapped) {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: member not found", ErrNotFound)
	}

	var m Member
	if err := doc.DataTo(&m); err != nil {
		return nil, fmt.Errorf("failed to decode member: %w", err)
	}
	m.ID = doc.Ref.ID
	return &m, nil
}

// GetByEmail finds a member by their unique email address.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*Member, error) {
	iter := r.col().Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("%w: member not found", ErrNotFound)
	}
	if err != nil {
		return nil, fault.FromStore("members.getByEmail", err)
	}

	var m Member
	if err := doc.DataTo(&m); err != nil {
		return nil, fmt.Errorf("failed to decode member: %w", err)
	}
	m.ID = doc.Ref.ID
	return &m, nil
}

// Update applies a partial edit. An email change re-runs the uniqueness
// check transactionally; a level change must reference an existing level.
func (r *Repo) Update(ctx context.Context, memberID string, in UpdateMemberInput) (*Member, error) {
	in.Trim()
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	m, err := r.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if in.MembershipLevelID != nil && *in.MembershipLevelID != m.MembershipLevelID {
		if _, err := r.levelRepo.Get(ctx, *in.MembershipLevelID); err != nil {
			if fault.IsUnavailable(err) {
				return nil, err
			}
			return nil, &fault.Validation{Field: "membershipLevelId", Message: "membership level does not exist"}
		}
	}

	emailChanged := in.Email != nil && *in.Email != m.Email

	if in.FirstName != nil {
		m.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		m.LastName = *in.LastName
	}
	if in.Email != nil {
		m.Email = *in.Email
	}
	if in.Phone != nil {
		m.Phone = *in.Phone
	}
	if in.MembershipLevelID != nil {
		m.MembershipLevelID = *in.MembershipLevelID
	}
	if in.Status != nil {
		m.Status = *in.Status
	}
	m.NameLower = utils.NormalizeNameLower(m.FirstName + " " + m.LastName)
	m.SearchKeywords = utils.SearchTokens(m.FirstName, m.LastName, m.Email)
	m.UpdatedAt = time.Now().UTC()

	ref := r.col().Doc(memberID)
	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if emailChanged {
			dup := tx.Documents(r.col().Where("email", "==", m.Email).Limit(1))
			defer dup.Stop()

			if doc, err := dup.Next(); err == nil {
				if doc.Ref.ID != memberID {
					return &fault.Validation{Field: "email", Message: "email is already registered"}
				}
			} else if err != iterator.Done {
				return err
			}
		}
		return tx.Set(ref, *m)
	})
	if err != nil {
		if fault.IsValidation(err) {
			return nil, err
		}
		return nil, fault.FromStore("members.update", err)
	}

	return m, nil
}

// deleteBlockingStatuses are the booking statuses that keep a member
// referenced. Terminal bookings are history and never block removal.
var deleteBlockingStatuses = []string{"pending", "confirmed"}

// bookingBlocksDelete reports whether a referencing booking in this status
// prevents member removal.
func bookingBlocksDelete(status string) bool {
	for _, s := range deleteBlockingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Delete removes a member unless a pending or confirmed booking still
// references them. Terminal bookings do not block deletion.
func (r *Repo) Delete(ctx context.Context, memberID string) error {
	if _, err := r.Get(ctx, memberID); err != nil {
		return err
	}

	iter := r.client.Collection("bookings").
		Where("memberId", "==", memberID).
		Where("status", "in", deleteBlockingStatuses).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == nil {
		return &fault.ReferentialIntegrity{
			Entity:  "member",
			ID:      memberID,
			Message: "active bookings still reference this member",
		}
	}
	if err != iterator.Done {
		return fault.FromStore("members.delete", err)
	}

	if _, err := r.col().Doc(memberID).Delete(ctx); err != nil {
		return fault.FromStore("members.delete", err)
	}
	return nil
}

// List lists members, optionally filtered by email or status.
func (r *Repo) List(ctx context.Context, in ListMembersInput) ([]Member, error) {
	query := r.col().Query
	if in.Email != "" {
		query = query.Where("email", "==", in.Email)
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

	var out []Member
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fault.FromStore("members.list", err)
		}

		var m Member
		if err := doc.DataTo(&m); err != nil {
			continue
		}
		m.ID = doc.Ref.ID
		out = append(out, m)
	}

	if out == nil {
		out = []Member{}
	}
	return out, nil
}

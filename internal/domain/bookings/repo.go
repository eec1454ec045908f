package bookings

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"club-booking/backend/internal/fault"
)

type Repo struct {
	client *firestore.Client
}

func NewRepo(client *firestore.Client) *Repo {
	return &Repo{client: client}
}

func (r *Repo) col() *firestore.CollectionRef {
	return r.client.Collection("bookings")
}

func (r *Repo) memberRef(memberID string) *firestore.DocumentRef {
	return r.client.Collection("members").Doc(memberID)
}

// Create persists a booking and, when its status counts as active, bumps
// the member's activeBookingsCount in the same transaction so the counter
// can never drift from the write that caused it.
func (r *Repo) Create(ctx context.Context, b Booking) (*Booking, error) {
	ref := r.col().NewDoc()
	b.ID = ref.ID

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if CountsAsActive(b.Status) {
			memberDoc, err := tx.Get(r.memberRef(b.MemberID))
			if err != nil {
				return fmt.Errorf("%w: member not found", ErrNotFound)
			}
			count, _ := memberDoc.Data()["activeBookingsCount"].(int64)
			if err := tx.Update(memberDoc.Ref, []firestore.Update{
				{Path: "activeBookingsCount", Value: nextCounter(count, 1)},
				{Path: "updatedAt", Value: b.CreatedAt},
			}); err != nil {
				return err
			}
		}
		return tx.Create(ref, b)
	})
	if err != nil {
		if IsErrNotFound(err) {
			return nil, err
		}
		return nil, fault.FromStore("bookings.create", err)
	}

	return &b, nil
}

// Get retrieves a booking by ID
func (r *Repo) Get(ctx context.Context, bookingID string) (*Booking, error) {
	doc, err := r.col().Doc(bookingID).Get(ctx)
	if err != nil {
		if mapped := fault.FromStore("bookings.get", err); fault.IsUnavailable(mapped) {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: booking not found", ErrNotFound)
	}

	var b Booking
	if err := doc.DataTo(&b); err != nil {
		return nil, fmt.Errorf("failed to decode booking: %w", err)
	}
	b.ID = doc.Ref.ID
	return &b, nil
}

// Transition moves a booking to a new lifecycle status. The status write
// and the member counter adjustment are a single transaction; Firestore
// retries contention internally and the exhausted case surfaces as a
// concurrency conflict.
func (r *Repo) Transition(ctx context.Context, bookingID, to string) (*Booking, error) {
	ref := r.col().Doc(bookingID)
	var out Booking

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return fmt.Errorf("%w: booking not found", ErrNotFound)
		}

		var b Booking
		if err := doc.DataTo(&b); err != nil {
			return fmt.Errorf("failed to decode booking: %w", err)
		}
		b.ID = doc.Ref.ID

		if err := ValidateTransition(b.Status, to); err != nil {
			return err
		}
		if CountsAsActive(to) {
			if err := ValidatePayment(b.Payment); err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		delta := counterDelta(b.Status, to)
		if delta != 0 {
			// member deletion is blocked while a non-terminal booking
			// references them, so this read must succeed; aborting keeps
			// the status write and the counter write one unit
			memberDoc, err := tx.Get(r.memberRef(b.MemberID))
			if err != nil {
				return fmt.Errorf("reading member for counter update: %w", err)
			}
			count, _ := memberDoc.Data()["activeBookingsCount"].(int64)
			if err := tx.Update(memberDoc.Ref, []firestore.Update{
				{Path: "activeBookingsCount", Value: nextCounter(count, delta)},
				{Path: "updatedAt", Value: now},
			}); err != nil {
				return err
			}
		}

		b.Status = to
		b.UpdatedAt = now
		out = b
		return tx.Set(ref, b)
	})
	if err != nil {
		if IsErrNotFound(err) || fault.IsInvalidTransition(err) || fault.IsValidation(err) {
			return nil, err
		}
		return nil, fault.FromStore("bookings.transition", err)
	}

	return &out, nil
}

// AttachPayment sets the embedded payment on a non-terminal booking. The
// terminal check and the write share a transaction, and only the payment
// fields are written, so a concurrent transition is never overwritten.
func (r *Repo) AttachPayment(ctx context.Context, bookingID string, p Payment) (*Booking, error) {
	if err := ValidatePayment(&p); err != nil {
		return nil, err
	}

	ref := r.col().Doc(bookingID)
	var out Booking

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return fmt.Errorf("%w: booking not found", ErrNotFound)
		}

		var b Booking
		if err := doc.DataTo(&b); err != nil {
			return fmt.Errorf("failed to decode booking: %w", err)
		}
		b.ID = doc.Ref.ID

		if IsTerminal(b.Status) {
			return fmt.Errorf("%w: booking is %s", ErrForbidden, b.Status)
		}

		now := time.Now().UTC()
		b.Payment = &p
		b.UpdatedAt = now
		out = b

		return tx.Update(ref, []firestore.Update{
			{Path: "payment", Value: p},
			{Path: "updatedAt", Value: now},
		})
	})
	if err != nil {
		if IsErrNotFound(err) || IsErrForbidden(err) {
			return nil, err
		}
		return nil, fault.FromStore("bookings.attachPayment", err)
	}
	return &out, nil
}

// List lists bookings on the indexed filters, newest start first.
func (r *Repo) List(ctx context.Context, in ListBookingsInput) ([]Booking, error) {
	query := r.col().Query
	if in.MemberID != "" {
		query = query.Where("memberId", "==", in.MemberID)
	}
	if in.FacilityID != "" {
		query = query.Where("facilityId", "==", in.FacilityID)
	}
	if in.Status != "" {
		query = query.Where("status", "==", in.Status)
	}

	query = query.OrderBy("startTime", firestore.Desc)

	limit := in.Limit
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	query = query.Limit(limit)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var out []Booking
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fault.FromStore("bookings.list", err)
		}

		var b Booking
		if err := doc.DataTo(&b); err != nil {
			continue
		}
		b.ID = doc.Ref.ID
		out = append(out, b)
	}

	if out == nil {
		out = []Booking{}
	}
	return out, nil
}

// CountActiveStartingBetween counts a member's active bookings whose start
// falls inside [from, to). Used for the per-day booking cap.
func (r *Repo) CountActiveStartingBetween(ctx context.Context, memberID string, from, to time.Time) (int, error) {
	iter := r.col().
		Where("memberId", "==", memberID).
		Where("status", "in", []string{StatusPending, StatusConfirmed}).
		Where("startTime", ">=", from).
		Where("startTime", "<", to).
		Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fault.FromStore("bookings.countActive", err)
		}
		count++
	}
	return count, nil
}

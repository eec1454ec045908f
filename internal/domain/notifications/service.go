package notifications

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"club-booking/backend/internal/fault"
	"club-booking/backend/internal/validate"
)

type Service struct {
	client *firestore.Client
}

func NewService(client *firestore.Client) *Service {
	return &Service{client: client}
}

func (s *Service) col() *firestore.CollectionRef {
	return s.client.Collection("notifications")
}

// Create writes a new unread notification.
func (s *Service) Create(ctx context.Context, in CreateNotificationInput) (*Notification, error) {
	in.Trim()
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	n := Notification{
		MemberID:  in.MemberID,
		Message:   in.Message,
		Status:    StatusUnread,
		CreatedAt: time.Now().UTC(),
	}

	ref := s.col().NewDoc()
	n.ID = ref.ID
	if _, err := ref.Set(ctx, n); err != nil {
		return nil, fault.FromStore("notifications.create", err)
	}
	return &n, nil
}

// List returns a member's notifications newest first, with an unread count.
func (s *Service) List(ctx context.Context, in ListNotificationsInput) (*ListResult, error) {
	if in.MemberID == "" {
		return nil, fmt.Errorf("%w: memberId is required", ErrBadRequest)
	}

	query := s.col().Where("memberId", "==", in.MemberID)
	if in.UnreadOnly {
		query = query.Where("status", "==", StatusUnread)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	limit := in.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query = query.Limit(limit)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var out []Notification
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fault.FromStore("notifications.list", err)
		}

		var n Notification
		if err := doc.DataTo(&n); err != nil {
			continue
		}
		n.ID = doc.Ref.ID
		out = append(out, n)
	}
	if out == nil {
		out = []Notification{}
	}

	// unread count (simple scan)
	unreadIter := s.col().
		Where("memberId", "==", in.MemberID).
		Where("status", "==", StatusUnread).
		Documents(ctx)
	defer unreadIter.Stop()

	unreadCount := int64(0)
	for {
		_, err := unreadIter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fault.FromStore("notifications.unreadCount", err)
		}
		unreadCount++
	}

	return &ListResult{Notifications: out, UnreadCount: unreadCount}, nil
}

// SetStatus toggles a single notification between read and unread.
func (s *Service) SetStatus(ctx context.Context, notificationID, status string) (*Notification, error) {
	if status != StatusRead && status != StatusUnread {
		return nil, &fault.Validation{Field: "status", Message: "must be one of [read unread]"}
	}

	ref := s.col().Doc(notificationID)
	doc, err := ref.Get(ctx)
	if err != nil {
		if mapped := fault.FromStore("notifications.setStatus", err); fault.IsUnavailable(mapped) {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: notification not found", ErrNotFound)
	}

	var n Notification
	if err := doc.DataTo(&n); err != nil {
		return nil, fmt.Errorf("failed to decode notification: %w", err)
	}
	n.ID = doc.Ref.ID
	n.Status = status

	if _, err := ref.Update(ctx, []firestore.Update{{Path: "status", Value: status}}); err != nil {
		return nil, fault.FromStore("notifications.setStatus", err)
	}
	return &n, nil
}

// MarkAllRead flips every unread notification for a member, batched.
func (s *Service) MarkAllRead(ctx context.Context, memberID string) (int, error) {
	if memberID == "" {
		return 0, fmt.Errorf("%w: memberId is required", ErrBadRequest)
	}

	iter := s.col().
		Where("memberId", "==", memberID).
		Where("status", "==", StatusUnread).
		Documents(ctx)

	batch := s.client.Batch()
	count := 0

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fault.FromStore("notifications.markAllRead", err)
		}

		batch.Update(doc.Ref, []firestore.Update{{Path: "status", Value: StatusRead}})
		count++

		// Firestore caps batches at 500 writes
		if count%500 == 0 {
			if _, err := batch.Commit(ctx); err != nil {
				return count, fault.FromStore("notifications.markAllRead", err)
			}
			batch = s.client.Batch()
		}
	}

	if count%500 != 0 {
		if _, err := batch.Commit(ctx); err != nil {
			return count, fault.FromStore("notifications.markAllRead", err)
		}
	}
	return count, nil
}

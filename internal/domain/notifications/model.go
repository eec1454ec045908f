package notifications

import (
	"strings"
	"time"
)

const (
	StatusUnread = "unread"
	StatusRead   = "read"
)

// Notification is a system-generated message for a member. Only the
// read/unread status ever changes after creation.
type Notification struct {
	ID        string    `firestore:"id" json:"id"`
	MemberID  string    `firestore:"memberId" json:"memberId"`
	Message   string    `firestore:"message" json:"message"`
	Status    string    `firestore:"status" json:"status"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

// CreateNotificationInput represents input for creating a notification
type CreateNotificationInput struct {
	MemberID string `json:"memberId" validate:"required"`
	Message  string `json:"message" validate:"required"`
}

func (in *CreateNotificationInput) Trim() {
	in.MemberID = strings.TrimSpace(in.MemberID)
	in.Message = strings.TrimSpace(in.Message)
}

// ListNotificationsInput represents input for listing notifications
type ListNotificationsInput struct {
	MemberID   string `json:"memberId"`
	UnreadOnly bool   `json:"unreadOnly,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// ListResult pairs a page of notifications with the member's unread count.
type ListResult struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int64          `json:"unreadCount"`
}

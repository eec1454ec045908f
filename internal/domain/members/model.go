package members

import (
	"strings"
	"time"
)

const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

var ValidStatuses = []string{StatusActive, StatusInactive, StatusSuspended}

func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Member represents a club member
type Member struct {
	ID                  string    `firestore:"id" json:"id"`
	FirstName           string    `firestore:"firstName" json:"firstName"`
	LastName            string    `firestore:"lastName" json:"lastName"`
	Email               string    `firestore:"email" json:"email"`
	Phone               string    `firestore:"phone" json:"phone"`
	MembershipLevelID   string    `firestore:"membershipLevelId" json:"membershipLevelId"`
	Status              string    `firestore:"status" json:"status"`
	ActiveBookingsCount int       `firestore:"activeBookingsCount" json:"activeBookingsCount"`
	PasswordHash        string    `firestore:"passwordHash,omitempty" json:"-"`
	NameLower           string    `firestore:"nameLower,omitempty" json:"-"`
	SearchKeywords      []string  `firestore:"searchKeywords,omitempty" json:"-"`
	CreatedAt           time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// CreateMemberInput represents input for creating a member
type CreateMemberInput struct {
	FirstName         string `json:"firstName" validate:"required"`
	LastName          string `json:"lastName" validate:"required"`
	Email             string `json:"email" validate:"required,email"`
	Phone             string `json:"phone,omitempty"`
	MembershipLevelID string `json:"membershipLevelId" validate:"required"`
	Status            string `json:"status,omitempty" validate:"omitempty,oneof=active inactive suspended"`
	PasswordHash      string `json:"passwordHash,omitempty"`
}

func (in *CreateMemberInput) Trim() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.MembershipLevelID = strings.TrimSpace(in.MembershipLevelID)
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
}

// UpdateMemberInput represents input for updating a member.
// Nil fields are left untouched. ActiveBookingsCount is owned by the
// booking lifecycle and is deliberately not editable here.
type UpdateMemberInput struct {
	FirstName         *string `json:"firstName,omitempty" validate:"omitempty,min=1"`
	LastName          *string `json:"lastName,omitempty" validate:"omitempty,min=1"`
	Email             *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone             *string `json:"phone,omitempty"`
	MembershipLevelID *string `json:"membershipLevelId,omitempty" validate:"omitempty,min=1"`
	Status            *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive suspended"`
}

func (in *UpdateMemberInput) Trim() {
	if in.FirstName != nil {
		v := strings.TrimSpace(*in.FirstName)
		*in.FirstName = v
	}
	if in.LastName != nil {
		v := strings.TrimSpace(*in.LastName)
		*in.LastName = v
	}
	if in.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*in.Email))
		*in.Email = v
	}
	if in.Phone != nil {
		v := strings.TrimSpace(*in.Phone)
		*in.Phone = v
	}
	if in.MembershipLevelID != nil {
		v := strings.TrimSpace(*in.MembershipLevelID)
		*in.MembershipLevelID = v
	}
	if in.Status != nil {
		v := strings.ToLower(strings.TrimSpace(*in.Status))
		*in.Status = v
	}
}

// ListMembersInput represents input for listing members
type ListMembersInput struct {
	Email  string `json:"email,omitempty"`
	Status string `json:"status,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

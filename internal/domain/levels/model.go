package levels

import (
	"strings"
	"time"
)

// MembershipLevel is the reference data a member's plan points at.
type MembershipLevel struct {
	ID                       string    `firestore:"id" json:"id"`
	Name                     string    `firestore:"name" json:"name"`
	MaxBookingsPerDay        int       `firestore:"maxBookingsPerDay" json:"maxBookingsPerDay"`
	AdvanceBookingWindowDays int       `firestore:"advanceBookingWindowDays" json:"advanceBookingWindowDays"`
	AccessibleFacilityTypes  []string  `firestore:"accessibleFacilityTypes" json:"accessibleFacilityTypes"`
	Price                    float64   `firestore:"price" json:"price"`
	CreatedAt                time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt                time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// CreateLevelInput represents input for creating a membership level
type CreateLevelInput struct {
	Name                     string   `json:"name" validate:"required"`
	MaxBookingsPerDay        int      `json:"maxBookingsPerDay" validate:"gte=1"`
	AdvanceBookingWindowDays int      `json:"advanceBookingWindowDays" validate:"gte=1"`
	AccessibleFacilityTypes  []string `json:"accessibleFacilityTypes" validate:"required,min=1,dive,oneof=gym pool court studio"`
	Price                    float64  `json:"price" validate:"gte=0"`
}

func (in *CreateLevelInput) Trim() {
	in.Name = strings.TrimSpace(in.Name)
	for i, t := range in.AccessibleFacilityTypes {
		in.AccessibleFacilityTypes[i] = strings.ToLower(strings.TrimSpace(t))
	}
}

// UpdateLevelInput represents input for updating a membership level.
// Nil fields are left untouched.
type UpdateLevelInput struct {
	Name                     *string   `json:"name,omitempty" validate:"omitempty,min=1"`
	MaxBookingsPerDay        *int      `json:"maxBookingsPerDay,omitempty" validate:"omitempty,gte=1"`
	AdvanceBookingWindowDays *int      `json:"advanceBookingWindowDays,omitempty" validate:"omitempty,gte=1"`
	AccessibleFacilityTypes  *[]string `json:"accessibleFacilityTypes,omitempty" validate:"omitempty,min=1,dive,oneof=gym pool court studio"`
	Price                    *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
}

func (in *UpdateLevelInput) Trim() {
	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		*in.Name = v
	}
	if in.AccessibleFacilityTypes != nil {
		for i, t := range *in.AccessibleFacilityTypes {
			(*in.AccessibleFacilityTypes)[i] = strings.ToLower(strings.TrimSpace(t))
		}
	}
}

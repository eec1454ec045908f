package facilities

import (
	"strings"
	"time"
)

const (
	TypeGym    = "gym"
	TypePool   = "pool"
	TypeCourt  = "court"
	TypeStudio = "studio"

	StatusAvailable   = "available"
	StatusMaintenance = "maintenance"
	StatusClosed      = "closed"
)

var ValidTypes = []string{TypeGym, TypePool, TypeCourt, TypeStudio}
var ValidStatuses = []string{StatusAvailable, StatusMaintenance, StatusClosed}

func IsValidType(t string) bool {
	for _, v := range ValidTypes {
		if v == t {
			return true
		}
	}
	return false
}

func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// StaffAssignment is a staff entry embedded in a facility document.
type StaffAssignment struct {
	Name    string `firestore:"name" json:"name" validate:"required"`
	Role    string `firestore:"role" json:"role" validate:"required"`
	Contact string `firestore:"contact" json:"contact"`
}

// OpeningWindow is one weekly opening-hours window, "HH:MM" 24h clock.
type OpeningWindow struct {
	Day   string `firestore:"day" json:"day" validate:"required,oneof=Mon Tue Wed Thu Fri Sat Sun"`
	Open  string `firestore:"open" json:"open" validate:"required,hhmm"`
	Close string `firestore:"close" json:"close" validate:"required,hhmm"`
}

// Facility represents a bookable facility
type Facility struct {
	ID              string            `firestore:"id" json:"id"`
	Name            string            `firestore:"name" json:"name"`
	Type            string            `firestore:"type" json:"type"`
	Status          string            `firestore:"status" json:"status"`
	MaintenanceNote string            `firestore:"maintenanceNote,omitempty" json:"maintenanceNote,omitempty"`
	AssignedStaff   []StaffAssignment `firestore:"assignedStaff" json:"assignedStaff"`
	OpeningHours    []OpeningWindow   `firestore:"openingHours" json:"openingHours"`
	SearchKeywords  []string          `firestore:"searchKeywords,omitempty" json:"-"`
	CreatedAt       time.Time         `firestore:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time         `firestore:"updatedAt" json:"updatedAt"`
}

// CreateFacilityInput represents input for creating a facility
type CreateFacilityInput struct {
	Name            string            `json:"name" validate:"required"`
	Type            string            `json:"type" validate:"required,oneof=gym pool court studio"`
	Status          string            `json:"status,omitempty" validate:"omitempty,oneof=available maintenance closed"`
	MaintenanceNote string            `json:"maintenanceNote,omitempty"`
	AssignedStaff   []StaffAssignment `json:"assignedStaff,omitempty" validate:"omitempty,dive"`
	OpeningHours    []OpeningWindow   `json:"openingHours,omitempty" validate:"omitempty,dive"`
}

func (in *CreateFacilityInput) Trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	in.MaintenanceNote = strings.TrimSpace(in.MaintenanceNote)
	for i := range in.AssignedStaff {
		in.AssignedStaff[i].Name = strings.TrimSpace(in.AssignedStaff[i].Name)
		in.AssignedStaff[i].Role = strings.ToLower(strings.TrimSpace(in.AssignedStaff[i].Role))
		in.AssignedStaff[i].Contact = strings.TrimSpace(in.AssignedStaff[i].Contact)
	}
	for i := range in.OpeningHours {
		in.OpeningHours[i].Day = strings.TrimSpace(in.OpeningHours[i].Day)
		in.OpeningHours[i].Open = strings.TrimSpace(in.OpeningHours[i].Open)
		in.OpeningHours[i].Close = strings.TrimSpace(in.OpeningHours[i].Close)
	}
}

// UpdateFacilityInput represents input for updating a facility.
// Nil fields are left untouched.
type UpdateFacilityInput struct {
	Name            *string            `json:"name,omitempty" validate:"omitempty,min=1"`
	Type            *string            `json:"type,omitempty" validate:"omitempty,oneof=gym pool court studio"`
	Status          *string            `json:"status,omitempty" validate:"omitempty,oneof=available maintenance closed"`
	MaintenanceNote *string            `json:"maintenanceNote,omitempty"`
	AssignedStaff   *[]StaffAssignment `json:"assignedStaff,omitempty" validate:"omitempty,dive"`
	OpeningHours    *[]OpeningWindow   `json:"openingHours,omitempty" validate:"omitempty,dive"`
}

func (in *UpdateFacilityInput) Trim() {
	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		*in.Name = v
	}
	if in.Type != nil {
		v := strings.ToLower(strings.TrimSpace(*in.Type))
		*in.Type = v
	}
	if in.Status != nil {
		v := strings.ToLower(strings.TrimSpace(*in.Status))
		*in.Status = v
	}
	if in.MaintenanceNote != nil {
		v := strings.TrimSpace(*in.MaintenanceNote)
		*in.MaintenanceNote = v
	}
}

// ListFacilitiesInput represents input for listing facilities
type ListFacilitiesInput struct {
	Type   string `json:"type,omitempty"`
	Status string `json:"status,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

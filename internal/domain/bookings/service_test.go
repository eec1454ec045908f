package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club-booking/backend/internal/domain/facilities"
	"club-booking/backend/internal/domain/levels"
	"club-booking/backend/internal/domain/members"
	"club-booking/backend/internal/fault"
)

func TestCheckPolicy(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	activeMember := &members.Member{ID: "m1", Status: members.StatusActive}
	gym := &facilities.Facility{ID: "f1", Type: facilities.TypeGym, Status: facilities.StatusAvailable}
	basic := &levels.MembershipLevel{
		ID:                       "lvl1",
		Name:                     "Basic",
		MaxBookingsPerDay:        1,
		AdvanceBookingWindowDays: 7,
		AccessibleFacilityTypes:  []string{"gym"},
	}

	tests := []struct {
		name          string
		member        *members.Member
		facility      *facilities.Facility
		level         *levels.MembershipLevel
		start         time.Time
		sameDayActive int
		wantErr       bool
	}{
		{
			name:     "ok within window",
			member:   activeMember,
			facility: gym,
			level:    basic,
			start:    now.Add(48 * time.Hour),
		},
		{
			name:     "ok exactly at window end",
			member:   activeMember,
			facility: gym,
			level:    basic,
			start:    now.AddDate(0, 0, 7),
		},
		{
			name:     "suspended member",
			member:   &members.Member{ID: "m2", Status: members.StatusSuspended},
			facility: gym,
			level:    basic,
			start:    now.Add(time.Hour),
			wantErr:  true,
		},
		{
			name:     "facility in maintenance",
			member:   activeMember,
			facility: &facilities.Facility{ID: "f2", Type: facilities.TypeGym, Status: facilities.StatusMaintenance},
			level:    basic,
			start:    now.Add(time.Hour),
			wantErr:  true,
		},
		{
			name:     "facility type not in plan",
			member:   activeMember,
			facility: &facilities.Facility{ID: "f3", Type: facilities.TypePool, Status: facilities.StatusAvailable},
			level:    basic,
			start:    now.Add(time.Hour),
			wantErr:  true,
		},
		{
			name:     "past the advance window",
			member:   activeMember,
			facility: gym,
			level:    basic,
			start:    now.AddDate(0, 0, 8),
			wantErr:  true,
		},
		{
			name:          "daily cap reached",
			member:        activeMember,
			facility:      gym,
			level:         basic,
			start:         now.Add(time.Hour),
			sameDayActive: 1,
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkPolicy(tt.member, tt.facility, tt.level, tt.start, tt.sameDayActive, now)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrForbidden), "expected a forbidden error, got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateTimeRangeValidation(t *testing.T) {
	// these inputs fail before any store access
	svc := NewService(nil, nil, nil, nil)
	start := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		wantField string
	}{
		{
			name:      "end before start",
			start:     start,
			end:       start.Add(-time.Hour),
			wantField: "endTime",
		},
		{
			name:      "end equals start",
			start:     start,
			end:       start,
			wantField: "endTime",
		},
		{
			name:      "not a whole number of minutes",
			start:     start,
			end:       start.Add(30*time.Minute + 30*time.Second),
			wantField: "endTime",
		},
		{
			name:      "below minimum duration",
			start:     start,
			end:       start.Add(10 * time.Minute),
			wantField: "durationMinutes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), CreateBookingInput{
				MemberID:   "m1",
				FacilityID: "f1",
				StartTime:  tt.start,
				EndTime:    tt.end,
			})
			require.Error(t, err)
			assert.True(t, fault.IsValidation(err))
			assert.Equal(t, tt.wantField, fault.Field(err))
		})
	}
}

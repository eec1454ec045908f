package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club-booking/backend/internal/domain/bookings"
	"club-booking/backend/internal/domain/levels"
	"club-booking/backend/internal/domain/reports"
	"club-booking/backend/internal/fault"
)

func TestMapFault(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "validation", err: &fault.Validation{Field: "email", Message: "is required"}, status: 400},
		{name: "referential integrity", err: &fault.ReferentialIntegrity{Entity: "level", ID: "l1"}, status: 409},
		{name: "conflict", err: &fault.Conflict{Message: "retries exhausted"}, status: 409},
		{name: "invalid transition", err: &fault.InvalidTransition{From: "cancelled", To: "confirmed"}, status: 409},
		{name: "unavailable", err: &fault.Unavailable{Op: "op", Err: errors.New("down")}, status: 503},
		{name: "not a fault", err: errors.New("whatever"), status: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, mapFault(tt.err))
		})
	}
}

func TestMapBookingsError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: fmt.Errorf("%w: booking x", bookings.ErrNotFound), status: 404},
		{name: "bad request", err: fmt.Errorf("%w: nope", bookings.ErrBadRequest), status: 400},
		{name: "forbidden", err: fmt.Errorf("%w: daily booking limit of 1 reached", bookings.ErrForbidden), status: 403},
		{name: "invalid transition fault", err: &fault.InvalidTransition{From: "completed", To: "cancelled"}, status: 409},
		{name: "unknown", err: errors.New("boom"), status: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := mapBookingsError(tt.err)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestMapLevelsError(t *testing.T) {
	status, _ := mapLevelsError(fmt.Errorf("%w: level x", levels.ErrNotFound))
	assert.Equal(t, 404, status)

	status, _ = mapLevelsError(&fault.ReferentialIntegrity{Entity: "membershipLevel", ID: "l1"})
	assert.Equal(t, 409, status)
}

func TestMapReportsError(t *testing.T) {
	status, _ := mapReportsError(fmt.Errorf("%w: windowDays must be positive", reports.ErrBadRequest))
	assert.Equal(t, 400, status)

	status, _ = mapReportsError(&fault.Unavailable{Op: "reports.load", Err: errors.New("down")})
	assert.Equal(t, 503, status)
}

func TestFailErrRendersFaultShape(t *testing.T) {
	rec := httptest.NewRecorder()
	FailErr(rec, 400, &fault.Validation{Field: "email", Message: "is required"})

	require.Equal(t, 400, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Error APIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, fault.KindValidation, body.Error.Kind)
	assert.Equal(t, "email", body.Error.Field)
	assert.NotEmpty(t, body.Error.Message)
}

func TestFailErrPlainError(t *testing.T) {
	rec := httptest.NewRecorder()
	FailErr(rec, 500, errors.New("boom"))

	var body struct {
		Error APIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body.Error.Kind)
	assert.Equal(t, "", body.Error.Field)
	assert.Equal(t, "boom", body.Error.Message)
}

package bookings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club-booking/backend/internal/fault"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{name: "pending to confirmed", from: StatusPending, to: StatusConfirmed, allowed: true},
		{name: "pending to cancelled", from: StatusPending, to: StatusCancelled, allowed: true},
		{name: "pending to completed", from: StatusPending, to: StatusCompleted, allowed: false},
		{name: "confirmed to cancelled", from: StatusConfirmed, to: StatusCancelled, allowed: true},
		{name: "confirmed to completed", from: StatusConfirmed, to: StatusCompleted, allowed: true},
		{name: "confirmed to pending", from: StatusConfirmed, to: StatusPending, allowed: false},
		{name: "cancelled to confirmed", from: StatusCancelled, to: StatusConfirmed, allowed: false},
		{name: "cancelled to pending", from: StatusCancelled, to: StatusPending, allowed: false},
		{name: "completed to cancelled", from: StatusCompleted, to: StatusCancelled, allowed: false},
		{name: "same status", from: StatusPending, to: StatusPending, allowed: false},
		{name: "unknown status", from: "bogus", to: StatusConfirmed, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestValidateTransition(t *testing.T) {
	require.NoError(t, ValidateTransition(StatusPending, StatusConfirmed))

	err := ValidateTransition(StatusCancelled, StatusConfirmed)
	require.Error(t, err)
	assert.True(t, fault.IsInvalidTransition(err))

	var it *fault.InvalidTransition
	require.ErrorAs(t, err, &it)
	assert.Equal(t, StatusCancelled, it.From)
	assert.Equal(t, StatusConfirmed, it.To)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(StatusPending))
	assert.False(t, IsTerminal(StatusConfirmed))
	assert.True(t, IsTerminal(StatusCancelled))
	assert.True(t, IsTerminal(StatusCompleted))
}

func TestCountsAsActive(t *testing.T) {
	assert.True(t, CountsAsActive(StatusPending))
	assert.True(t, CountsAsActive(StatusConfirmed))
	assert.False(t, CountsAsActive(StatusCancelled))
	assert.False(t, CountsAsActive(StatusCompleted))
}

func TestCounterDelta(t *testing.T) {
	tests := []struct {
		name  string
		from  string
		to    string
		delta int
	}{
		{name: "confirm keeps active", from: StatusPending, to: StatusConfirmed, delta: 0},
		{name: "cancel releases slot", from: StatusPending, to: StatusCancelled, delta: -1},
		{name: "complete releases slot", from: StatusConfirmed, to: StatusCompleted, delta: -1},
		{name: "cancel confirmed releases slot", from: StatusConfirmed, to: StatusCancelled, delta: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.delta, counterDelta(tt.from, tt.to))
		})
	}
}

func TestNextCounter(t *testing.T) {
	tests := []struct {
		name  string
		count int64
		delta int
		want  int64
	}{
		{name: "increment", count: 2, delta: 1, want: 3},
		{name: "decrement by exactly one", count: 2, delta: -1, want: 1},
		{name: "decrement to zero", count: 1, delta: -1, want: 0},
		{name: "never negative", count: 0, delta: -1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextCounter(tt.count, tt.delta))
		})
	}
}

func TestValidatePayment(t *testing.T) {
	require.NoError(t, ValidatePayment(nil))

	now := time.Now()
	require.NoError(t, ValidatePayment(&Payment{Amount: 50, Method: MethodCard, Status: PaymentPaid, PaidAt: &now}))
	require.NoError(t, ValidatePayment(&Payment{Amount: 50, Method: MethodCash, Status: PaymentPending}))
	require.NoError(t, ValidatePayment(&Payment{Amount: 0, Method: MethodCash, Status: PaymentPaid, PaidAt: &now}))

	err := ValidatePayment(&Payment{Amount: 50, Method: MethodCard, Status: PaymentPaid})
	require.Error(t, err)
	assert.True(t, fault.IsValidation(err))
	assert.Equal(t, "payment.paidAt", fault.Field(err))
}

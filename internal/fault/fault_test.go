package fault

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestKindAndHelpers(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind string
	}{
		{name: "validation", err: &Validation{Field: "email", Message: "is required"}, wantKind: KindValidation},
		{name: "referential integrity", err: &ReferentialIntegrity{Entity: "level", ID: "l1", Message: "members reference it"}, wantKind: KindReferentialIntegrity},
		{name: "conflict", err: &Conflict{Message: "retries exhausted"}, wantKind: KindConflict},
		{name: "unavailable", err: &Unavailable{Op: "members.get", Err: errors.New("boom")}, wantKind: KindUnavailable},
		{name: "invalid transition", err: &InvalidTransition{From: "cancelled", To: "confirmed"}, wantKind: KindInvalidTransition},
		{name: "plain error", err: errors.New("whatever"), wantKind: ""},
		{name: "nil", err: nil, wantKind: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantKind, Kind(tt.err))
		})
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("creating member: %w", &Validation{Field: "email", Message: "taken"})
	assert.True(t, IsValidation(err))
	assert.Equal(t, KindValidation, Kind(err))
	assert.Equal(t, "email", Field(err))
}

func TestFieldNonValidation(t *testing.T) {
	assert.Equal(t, "", Field(&Conflict{Message: "x"}))
	assert.Equal(t, "", Field(nil))
}

func TestUnavailableUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &Unavailable{Op: "bookings.list", Err: cause}
	assert.ErrorIs(t, err, cause)
}

func TestFromStore(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, FromStore("op", nil))
	})

	t.Run("context deadline becomes unavailable", func(t *testing.T) {
		err := FromStore("members.list", context.DeadlineExceeded)
		require.True(t, IsUnavailable(err))
		var u *Unavailable
		require.ErrorAs(t, err, &u)
		assert.Equal(t, "members.list", u.Op)
	})

	t.Run("grpc unavailable becomes unavailable", func(t *testing.T) {
		err := FromStore("bookings.create", status.Error(codes.Unavailable, "backend down"))
		assert.True(t, IsUnavailable(err))
	})

	t.Run("grpc aborted becomes conflict", func(t *testing.T) {
		err := FromStore("bookings.transition", status.Error(codes.Aborted, "too much contention"))
		assert.True(t, IsConflict(err))
	})

	t.Run("other errors pass through", func(t *testing.T) {
		cause := status.Error(codes.NotFound, "no such document")
		assert.Equal(t, cause, FromStore("op", cause))
	})
}

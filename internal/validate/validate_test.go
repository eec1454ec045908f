package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club-booking/backend/internal/fault"
)

type sampleInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Kind  string `json:"kind" validate:"omitempty,oneof=gym pool"`
	Open  string `json:"open" validate:"omitempty,hhmm"`
	Count int    `json:"count" validate:"gte=0"`
}

func TestStructValid(t *testing.T) {
	in := sampleInput{Name: "Gym A", Email: "alice@club.example", Kind: "gym", Open: "06:00"}
	require.NoError(t, Struct(in))
}

func TestStructViolations(t *testing.T) {
	tests := []struct {
		name      string
		input     sampleInput
		wantField string
	}{
		{
			name:      "missing required",
			input:     sampleInput{Email: "a@b.example"},
			wantField: "name",
		},
		{
			name:      "bad email",
			input:     sampleInput{Name: "x", Email: "not-an-email"},
			wantField: "email",
		},
		{
			name:      "bad enum",
			input:     sampleInput{Name: "x", Email: "a@b.example", Kind: "sauna"},
			wantField: "kind",
		},
		{
			name:      "bad clock string",
			input:     sampleInput{Name: "x", Email: "a@b.example", Open: "25:00"},
			wantField: "open",
		},
		{
			name:      "negative count",
			input:     sampleInput{Name: "x", Email: "a@b.example", Count: -1},
			wantField: "count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			require.Error(t, err)
			assert.True(t, fault.IsValidation(err))
			// field reported under its json name
			assert.Equal(t, tt.wantField, fault.Field(err))
		})
	}
}

package facilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club-booking/backend/internal/fault"
)

func TestCheckOpeningHours(t *testing.T) {
	ok := []OpeningWindow{
		{Day: "Mon", Open: "06:00", Close: "22:00"},
		{Day: "Sun", Open: "09:00", Close: "18:00"},
	}
	require.NoError(t, checkOpeningHours(ok))
	require.NoError(t, checkOpeningHours(nil))

	bad := []OpeningWindow{{Day: "Tue", Open: "20:00", Close: "08:00"}}
	err := checkOpeningHours(bad)
	require.Error(t, err)
	assert.True(t, fault.IsValidation(err))
	assert.Equal(t, "openingHours", fault.Field(err))

	// zero-length window is also rejected
	zero := []OpeningWindow{{Day: "Wed", Open: "10:00", Close: "10:00"}}
	assert.Error(t, checkOpeningHours(zero))
}

func TestBookingBlocksDelete(t *testing.T) {
	tests := []struct {
		name   string
		status string
		blocks bool
	}{
		{name: "pending blocks", status: "pending", blocks: true},
		{name: "confirmed blocks", status: "confirmed", blocks: true},
		{name: "cancelled does not block", status: "cancelled", blocks: false},
		{name: "completed does not block", status: "completed", blocks: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.blocks, bookingBlocksDelete(tt.status))
		})
	}
}

func TestIsValidType(t *testing.T) {
	for _, v := range ValidTypes {
		assert.True(t, IsValidType(v))
	}
	assert.False(t, IsValidType("sauna"))
	assert.False(t, IsValidType(""))
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range ValidStatuses {
		assert.True(t, IsValidStatus(s))
	}
	assert.False(t, IsValidStatus("open"))
}

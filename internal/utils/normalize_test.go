package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNameLower(t *testing.T) {
	assert.Equal(t, "gym a", NormalizeNameLower("  Gym   A  "))
	assert.Equal(t, "alice nguyen", NormalizeNameLower("Alice\tNguyen"))
	assert.Equal(t, "", NormalizeNameLower("   "))
}

func TestFoldASCII(t *testing.T) {
	assert.Equal(t, "Jose", FoldASCII("José"))
	assert.Equal(t, "Francois", FoldASCII("François"))
	assert.Equal(t, "plain", FoldASCII("plain"))
}

func TestSearchTokens(t *testing.T) {
	tokens := SearchTokens("José García", "Pool 1")
	assert.Contains(t, tokens, "jose garcia")
	assert.Contains(t, tokens, "jose")
	assert.Contains(t, tokens, "garcia")
	assert.Contains(t, tokens, "pool 1")
	assert.Contains(t, tokens, "pool")
	// single-character words are dropped
	assert.NotContains(t, tokens, "1")

	// duplicates collapse
	again := SearchTokens("gym", "gym")
	assert.Equal(t, []string{"gym"}, again)
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{name: "rfc3339", input: "2026-06-01T10:30:00Z", want: time.Date(2026, 6, 1, 10, 30, 0, 0, time.UTC)},
		{name: "date only", input: "2026-06-01", want: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)},
		{name: "space separated", input: "2026-06-01 10:30:00", want: time.Date(2026, 6, 1, 10, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTime(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}

	_, err := ParseTime("not a time")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestIsHHMM(t *testing.T) {
	valid := []string{"00:00", "09:30", "19:05", "23:59"}
	for _, s := range valid {
		assert.True(t, IsHHMM(s), s)
	}

	invalid := []string{"24:00", "9:30", "12:60", "12-30", "", "noon"}
	for _, s := range invalid {
		assert.False(t, IsHHMM(s), s)
	}
}

func TestTrimMax(t *testing.T) {
	assert.Equal(t, "abc", TrimMax("  abc  ", 10))
	assert.Equal(t, "ab", TrimMax("abcdef", 2))
}

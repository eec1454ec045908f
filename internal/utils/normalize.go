package utils

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var wsRe = regexp.MustCompile(`\s+`)

// ErrInvalidTimeFormat is returned when time parsing fails
var ErrInvalidTimeFormat = errors.New("invalid time format")

func NormalizeNameLower(s string) string {
	s = strings.TrimSpace(s)
	s = wsRe.ReplaceAllString(s, " ")
	return strings.ToLower(s)
}

// FoldASCII strips diacritics so accented member and facility names match
// plain-ascii search input.
func FoldASCII(s string) string {
	t := norm.NFKD.String(s)
	b := make([]rune, 0, len(t))
	for _, r := range t {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b = append(b, r)
	}
	return string(b)
}

// SearchTokens generates lowercase search tokens from multiple strings
func SearchTokens(strs ...string) []string {
	tokens := make([]string, 0)
	seen := make(map[string]bool)
	for _, s := range strs {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		lower := strings.ToLower(FoldASCII(s))
		if !seen[lower] {
			tokens = append(tokens, lower)
			seen[lower] = true
		}
		for _, word := range strings.Fields(lower) {
			if !seen[word] && len(word) >= 2 {
				tokens = append(tokens, word)
				seen[word] = true
			}
		}
	}
	return tokens
}

// TrimMax trims a string to a maximum length
func TrimMax(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// ParseTime parses a time string in RFC3339 or other common formats
func ParseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTimeFormat
}

var hhmmRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// IsHHMM reports whether s is a 24h "HH:MM" clock string.
func IsHHMM(s string) bool {
	return hhmmRe.MatchString(s)
}

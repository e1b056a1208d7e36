package syncer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"pure date passes through", "2024-03-10", "2024-03-10"},
		{"no offset keeps clock", "2024-03-10T14:30:00", "2024-03-10T14:30:00"},
		{"utc shifts to site time", "2024-03-10T20:30:00Z", "2024-03-10T14:30:00"},
		{"explicit offset shifts", "2024-03-10T15:30:00-05:00", "2024-03-10T14:30:00"},
		{"site offset unchanged clock", "2024-03-10T14:30:00-06:00", "2024-03-10T14:30:00"},
		{"fractional seconds", "2024-03-10T20:30:00.123Z", "2024-03-10T14:30:00"},
		{"garbage returned unchanged", "not a date", "not a date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTimestamp(tt.in))
		})
	}
}

func TestNullTimestamp(t *testing.T) {
	assert.False(t, nullTimestamp("").Valid)

	v := nullTimestamp("2024-03-10T20:30:00Z")
	assert.True(t, v.Valid)
	assert.Equal(t, "2024-03-10T14:30:00", v.String)
}

func TestParseDate(t *testing.T) {
	v := parseDate("2024-03-10")
	assert.True(t, v.Valid)
	assert.Equal(t, "2024-03-10", v.Time.Format("2006-01-02"))

	// Datetime values keep only the calendar part.
	v = parseDate("2024-03-10T08:00:00Z")
	assert.True(t, v.Valid)
	assert.Equal(t, "2024-03-10", v.Time.Format("2006-01-02"))

	assert.False(t, parseDate("").Valid)
	assert.False(t, parseDate("junk").Valid)
}

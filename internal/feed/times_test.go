package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{
			name:     "Midnight",
			input:    "0:00:00",
			expected: 0,
		},
		{
			name:     "Morning departure",
			input:    "07:30:15",
			expected: 7*3600 + 30*60 + 15,
		},
		{
			name:     "Past midnight",
			input:    "25:10:00",
			expected: 25*3600 + 10*60,
		},
		{
			name:     "Whitespace tolerated",
			input:    " 08:00:00 ",
			expected: 8 * 3600,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTime(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseTimeErrors(t *testing.T) {
	for _, input := range []string{"", "07:30", "7h30m00s", "07:61:00", "07:00:75", "100:00:00", "-1:00:00"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseTime(input)
			assert.Error(t, err)
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("20250110")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2025-01-10", FormatISODate(d))

	_, err = ParseDate("2025-01-10")
	assert.Error(t, err)
}

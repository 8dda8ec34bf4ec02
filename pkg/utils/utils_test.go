package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "valid date",
			input:    "2026-03-15",
			expected: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "wrong layout",
			input:   "15/03/2026",
			wantErr: true,
		},
		{
			name:    "not a date",
			input:   "soon",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseDate_EmptyDefaultsToToday(t *testing.T) {
	got, err := ParseDate("")
	require.NoError(t, err)

	now := time.Now().UTC()
	assert.Equal(t, now.Year(), got.Year())
	assert.Equal(t, now.Month(), got.Month())
	assert.Equal(t, now.Day(), got.Day())
	assert.Zero(t, got.Hour())
}

func TestParseAmount(t *testing.T) {
	amount, err := ParseAmount("1234.56")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromFloat(1234.56)))

	_, err = ParseAmount("a lot")
	assert.Error(t, err)
}

func TestParseRate(t *testing.T) {
	rate, err := ParseRate("22")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromInt(22)))

	_, err = ParseRate("22%")
	assert.Error(t, err)
}

func TestIsDateOverdue(t *testing.T) {
	assert.True(t, IsDateOverdue(time.Now().Add(-24*time.Hour)))
	assert.False(t, IsDateOverdue(time.Now().Add(24*time.Hour)))
}

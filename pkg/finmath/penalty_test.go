package finmath

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPenaltyRate(t *testing.T) {
	tests := []struct {
		name     string
		baseRate int64
		missed   int
		expected int64
	}{
		{name: "no missed payments", baseRate: 10, missed: 0, expected: 10},
		{name: "one missed", baseRate: 10, missed: 1, expected: 12},
		{name: "three missed", baseRate: 10, missed: 3, expected: 16},
		{name: "surcharge capped at ten points", baseRate: 10, missed: 7, expected: 20},
		{name: "cap boundary", baseRate: 22, missed: 5, expected: 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PenaltyRate(decimal.NewFromInt(tt.baseRate), tt.missed)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.expected)),
				"expected %d, got %s", tt.expected, got)
		})
	}
}

func TestTotalPenalty(t *testing.T) {
	// 1000 at 10% base escalated to 16%: spread is 6 points annual,
	// 0.5% monthly, so 5.00 per month of arrears.
	got := TotalPenalty(decimal.NewFromInt(1000), decimal.NewFromInt(10), decimal.NewFromInt(16), 3)
	assert.InDelta(t, 15, got.InexactFloat64(), 0.001)
}

func TestTotalPenalty_ExcludesBaseInterest(t *testing.T) {
	// No escalation means no penalty, whatever the base rate.
	got := TotalPenalty(decimal.NewFromInt(5000), decimal.NewFromInt(22), decimal.NewFromInt(22), 4)
	assert.True(t, got.IsZero())
}

package finmath

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adiprw/fintrack/pkg/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAmortize(t *testing.T) {
	start := date(2026, time.March, 1)

	tests := []struct {
		name            string
		remaining       decimal.Decimal
		annualRate      decimal.Decimal
		end             time.Time
		freq            Frequency
		expectedPayment float64
		expectedPeriods int
	}{
		{
			name:            "monthly closed form",
			remaining:       decimal.NewFromInt(250000),
			annualRate:      decimal.NewFromInt(22),
			end:             start.AddDate(0, 6, 0),
			freq:            Monthly,
			expectedPayment: 44380.75,
			expectedPeriods: 6,
		},
		{
			name:            "zero rate degenerates to straight line",
			remaining:       decimal.NewFromInt(1000),
			annualRate:      decimal.Zero,
			end:             start.AddDate(0, 10, 0),
			freq:            Monthly,
			expectedPayment: 100,
			expectedPeriods: 10,
		},
		{
			name:            "weekly at period-adjusted rate",
			remaining:       decimal.NewFromInt(5200),
			annualRate:      decimal.Zero,
			end:             start.AddDate(0, 0, 7*26),
			freq:            Weekly,
			expectedPayment: 200,
			expectedPeriods: 26,
		},
		{
			name:            "yearly",
			remaining:       decimal.NewFromInt(9000),
			annualRate:      decimal.Zero,
			end:             start.AddDate(3, 0, 0),
			freq:            Yearly,
			expectedPayment: 3000,
			expectedPeriods: 3,
		},
		{
			name:            "one-time is a single bullet payment",
			remaining:       decimal.NewFromInt(750),
			annualRate:      decimal.NewFromInt(5),
			end:             start.AddDate(0, 2, 0),
			freq:            OneTime,
			expectedPayment: 750,
			expectedPeriods: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Amortize(tt.remaining, tt.annualRate, start, tt.end, start, tt.freq)
			require.NoError(t, err)

			assert.InDelta(t, tt.expectedPayment, s.PaymentAmount.InexactFloat64(), 0.01)
			assert.Equal(t, tt.expectedPeriods, s.TotalPayments)
			assert.True(t, s.NextPaymentAmount.Equal(s.PaymentAmount))
		})
	}
}

func TestAmortize_NextPaymentDate(t *testing.T) {
	start := date(2026, time.March, 15)
	end := start.AddDate(1, 0, 0)

	s, err := Amortize(decimal.NewFromInt(1200), decimal.Zero, start, end, start, Monthly)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.April, 1), s.NextPaymentDate)

	s, err = Amortize(decimal.NewFromInt(1200), decimal.Zero, start, end, start, Weekly)
	require.NoError(t, err)
	assert.Equal(t, start.AddDate(0, 0, 7), s.NextPaymentDate)
}

func TestAmortize_ReamortizesToOriginalEndDate(t *testing.T) {
	start := date(2026, time.January, 1)
	end := start.AddDate(1, 0, 0)

	// Four months in, only eight monthly periods remain.
	now := date(2026, time.May, 1)
	s, err := Amortize(decimal.NewFromInt(800), decimal.Zero, start, end, now, Monthly)
	require.NoError(t, err)

	assert.Equal(t, 8, s.TotalPayments)
	assert.InDelta(t, 100, s.PaymentAmount.InexactFloat64(), 0.001)
	assert.Equal(t, date(2026, time.June, 1), s.NextPaymentDate)
}

func TestAmortize_Errors(t *testing.T) {
	start := date(2026, time.March, 1)

	t.Run("term already over", func(t *testing.T) {
		_, err := Amortize(decimal.NewFromInt(100), decimal.Zero, start, start, start, Monthly)
		assert.ErrorIs(t, err, errors.ErrInvalidTerm)
	})

	t.Run("unknown frequency", func(t *testing.T) {
		_, err := Amortize(decimal.NewFromInt(100), decimal.Zero, start, start.AddDate(1, 0, 0), start, Frequency("daily"))
		assert.ErrorIs(t, err, errors.ErrInvalidFrequency)
	})

	t.Run("negative balance", func(t *testing.T) {
		_, err := Amortize(decimal.NewFromInt(-1), decimal.Zero, start, start.AddDate(1, 0, 0), start, Monthly)
		assert.ErrorIs(t, err, errors.ErrInvalidAmount)
	})
}

func TestParseFrequency(t *testing.T) {
	for _, valid := range []string{"one_time", "weekly", "monthly", "yearly"} {
		f, err := ParseFrequency(valid)
		require.NoError(t, err)
		assert.Equal(t, Frequency(valid), f)
	}

	_, err := ParseFrequency("biweekly")
	assert.ErrorIs(t, err, errors.ErrInvalidFrequency)
}

func TestSpreadOverMonths(t *testing.T) {
	from := date(2026, time.January, 15)

	got := SpreadOverMonths(decimal.NewFromInt(1200), from, from.AddDate(1, 0, 0))
	assert.InDelta(t, 100, got.InexactFloat64(), 0.001)

	// Due within the current month: the full amount is the monthly cost.
	got = SpreadOverMonths(decimal.NewFromInt(1200), from, from.AddDate(0, 0, 10))
	assert.InDelta(t, 1200, got.InexactFloat64(), 0.001)
}

func TestMonthlyEquivalent(t *testing.T) {
	weekly := MonthlyEquivalent(decimal.NewFromInt(120), Weekly)
	assert.InDelta(t, 520, weekly.InexactFloat64(), 0.01)

	yearly := MonthlyEquivalent(decimal.NewFromInt(1200), Yearly)
	assert.InDelta(t, 100, yearly.InexactFloat64(), 0.01)
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adiprw/fintrack/internal/cache"
	"github.com/adiprw/fintrack/internal/domain"
	"github.com/adiprw/fintrack/internal/repository"
	"github.com/adiprw/fintrack/pkg/finmath"
)

func TestSummary_EmptyPortfolio(t *testing.T) {
	env := newTestEnv(t)

	summary, err := env.aggregator.Summary(context.Background())
	require.NoError(t, err)

	assert.True(t, summary.TotalOutstanding.IsZero())
	assert.Zero(t, summary.ActiveDebts)
	assert.Nil(t, summary.HighestInterestDebt)
	assert.Nil(t, summary.UpcomingRepayment)
	assert.True(t, summary.DebtToIncomeRatio.IsZero())
	assert.Empty(t, summary.Debts)
	assert.Empty(t, summary.PaymentHistory)
	assert.False(t, summary.GeneratedAt.IsZero())
}

func TestSummary_AggregatesPortfolio(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	debtA := env.createDebt(t, 12000, 0, 12)
	debtB := env.createDebt(t, 3000, 18, 6)

	_, err := env.service.AddRepayment(ctx, debtA,
		decimal.NewFromInt(2000), time.Now().UTC(), finmath.Monthly, "", nullExpense)
	require.NoError(t, err)

	summary, err := env.aggregator.Summary(ctx)
	require.NoError(t, err)

	assert.True(t, summary.TotalOutstanding.Equal(decimal.NewFromInt(13000)),
		"outstanding = %s", summary.TotalOutstanding)
	assert.Equal(t, 2, summary.ActiveDebts)
	assert.Len(t, summary.Debts, 2)

	require.NotNil(t, summary.HighestInterestDebt)
	assert.Equal(t, debtB, summary.HighestInterestDebt.ID)

	// 10000 over 12 months at 0% plus 3000 over 6 months at 18%.
	assert.InDelta(t, 1359.91, summary.MonthlyRepaymentTotal.InexactFloat64(), 0.01)
	assert.InDelta(t, 34.00, summary.DebtToIncomeRatio.InexactFloat64(), 0.01)

	require.NotNil(t, summary.UpcomingRepayment)
	assert.False(t, summary.UpcomingRepayment.Date.IsZero())
	assert.True(t, summary.UpcomingRepayment.Amount.IsPositive())
}

func TestSummary_SpreadsOneTimeDebtOverMonthsLeft(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	start := time.Now().UTC().Truncate(24 * time.Hour)
	_, err := env.service.Create(ctx, &domain.CreateDebtRequest{
		Creditor:        "Balloon Finance",
		TotalAmount:     decimal.NewFromInt(1200),
		InterestRate:    decimal.Zero,
		StartDate:       start,
		ExpectedEndDate: start.AddDate(1, 0, 0),
		Frequency:       "one_time",
	})
	require.NoError(t, err)

	summary, err := env.aggregator.Summary(ctx)
	require.NoError(t, err)

	// The bullet is due in twelve months, so it costs 100 a month, not
	// 1200.
	assert.InDelta(t, 100, summary.MonthlyRepaymentTotal.InexactFloat64(), 0.01)
	assert.InDelta(t, 2.5, summary.DebtToIncomeRatio.InexactFloat64(), 0.01)
}

func TestSummary_MissedPaymentsAndPenalties(t *testing.T) {
	env := newTestEnv(t)

	debtID := env.createDebt(t, 1000, 10, 10)
	env.upsertStatus(t, debtID, "2026-01", domain.PaymentStatusPaid)
	env.upsertStatus(t, debtID, "2026-02", domain.PaymentStatusMissed)
	env.upsertStatus(t, debtID, "2026-03", domain.PaymentStatusMissed)
	env.upsertStatus(t, debtID, "2026-04", domain.PaymentStatusMissed)

	summary, err := env.aggregator.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.MissedPayments)

	// Three consecutive misses push the rate from 10% to 16%; the 6%
	// surcharge on 1000 over three months is 15.
	assert.True(t, summary.TotalPenalties.Equal(decimal.NewFromInt(15)),
		"penalties = %s", summary.TotalPenalties)

	require.Len(t, summary.PaymentHistory, 4)
	assert.Equal(t, "2026-01", summary.PaymentHistory[0].Month)
	assert.Equal(t, "2026-04", summary.PaymentHistory[3].Month)
}

func TestSummary_PaidMonthResetsPenaltyStreak(t *testing.T) {
	env := newTestEnv(t)

	debtID := env.createDebt(t, 1000, 10, 10)
	env.upsertStatus(t, debtID, "2026-01", domain.PaymentStatusMissed)
	env.upsertStatus(t, debtID, "2026-02", domain.PaymentStatusMissed)
	env.upsertStatus(t, debtID, "2026-03", domain.PaymentStatusPaid)

	summary, err := env.aggregator.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.MissedPayments)
	assert.True(t, summary.TotalPenalties.IsZero(),
		"a paid month ends the streak, penalties = %s", summary.TotalPenalties)
}

// errDebtRepo fails every read, standing in for a broken store.
type errDebtRepo struct {
	repository.DebtRepository
}

var errStoreDown = errors.New("store down")

func (errDebtRepo) List(context.Context, sqlx.ExtContext) ([]*domain.Debt, error) {
	return nil, errStoreDown
}

func TestSummary_FallsBackToCachedSummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createDebt(t, 1000, 10, 10)

	// A healthy run populates the cache.
	fresh, err := env.aggregator.Summary(ctx)
	require.NoError(t, err)

	broken := NewAggregatorService(env.db, errDebtRepo{}, env.statuses,
		NewStaticIncomeProvider(env.income), env.cache)

	degraded, err := broken.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh.GeneratedAt, degraded.GeneratedAt)
	assert.True(t, fresh.TotalOutstanding.Equal(degraded.TotalOutstanding))
}

func TestSummary_ErrorsWithoutCachedFallback(t *testing.T) {
	env := newTestEnv(t)

	broken := NewAggregatorService(env.db, errDebtRepo{}, env.statuses,
		NewStaticIncomeProvider(env.income), cache.NewMemorySummaryCache())

	_, err := broken.Summary(context.Background())
	require.ErrorIs(t, err, errStoreDown)
}

package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/adiprw/fintrack/internal/cache"
	"github.com/adiprw/fintrack/internal/domain"
	"github.com/adiprw/fintrack/internal/repository"
)

// testEnv wires the services over a throwaway sqlite database, the same
// stack production runs on.
type testEnv struct {
	db         *sqlx.DB
	debts      repository.DebtRepository
	ledger     repository.LedgerRepository
	statuses   repository.PaymentStatusRepository
	expenses   repository.ExpenseRepository
	service    *DebtService
	linker     *LinkerService
	aggregator *AggregatorService
	cache      *cache.MemorySummaryCache
	income     decimal.Decimal
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := repository.Open(filepath.Join(t.TempDir(), "fintrack_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	env := &testEnv{
		db:       db,
		debts:    repository.NewDebtRepository(),
		ledger:   repository.NewLedgerRepository(),
		statuses: repository.NewPaymentStatusRepository(),
		expenses: repository.NewExpenseRepository(),
		cache:    cache.NewMemorySummaryCache(),
		income:   decimal.NewFromInt(4000),
	}

	env.service = NewDebtService(db, env.debts, env.ledger, env.statuses, env.expenses, "USD")
	env.linker = NewLinkerService(db, env.debts, env.ledger, env.statuses, env.expenses)
	env.aggregator = NewAggregatorService(db, env.debts, env.statuses, NewStaticIncomeProvider(env.income), env.cache)

	return env
}

func (e *testEnv) createDebt(t *testing.T, total int64, ratePct int64, months int) uuid.UUID {
	t.Helper()

	start := time.Now().UTC().Truncate(24 * time.Hour)
	id, err := e.service.Create(context.Background(), &domain.CreateDebtRequest{
		Creditor:        "Acme Bank",
		TotalAmount:     decimal.NewFromInt(total),
		InterestRate:    decimal.NewFromInt(ratePct),
		StartDate:       start,
		ExpectedEndDate: start.AddDate(0, months, 0),
		Frequency:       "monthly",
	})
	require.NoError(t, err)

	return id
}

func (e *testEnv) createExpense(t *testing.T, debtID uuid.UUID, amount int64, due time.Time) uuid.UUID {
	t.Helper()

	now := time.Now().UTC()
	expense := &domain.LinkedExpense{
		ID:             uuid.New(),
		Amount:         decimal.NewFromInt(amount),
		Status:         domain.ExpenseStatusPending,
		DueDate:        due,
		LinkedItemType: domain.LinkedItemTypeDebt,
		LinkedItemID:   uuid.NullUUID{UUID: debtID, Valid: true},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, e.expenses.Create(context.Background(), e.db, expense))

	return expense.ID
}

// requireInvariant asserts remaining == total - sum(ledger) straight from
// the store, bypassing the services.
func (e *testEnv) requireInvariant(t *testing.T, debtID uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	debt, err := e.debts.GetByID(ctx, e.db, debtID)
	require.NoError(t, err)

	repaid, err := e.ledger.SumByDebt(ctx, e.db, debtID)
	require.NoError(t, err)

	require.True(t, debt.RemainingAmount.Equal(debt.TotalAmount.Sub(repaid)),
		"remaining %s != total %s - ledger %s", debt.RemainingAmount, debt.TotalAmount, repaid)
}

func (e *testEnv) ledgerCount(t *testing.T, debtID uuid.UUID) int {
	t.Helper()
	entries, err := e.ledger.ListByDebt(context.Background(), e.db, debtID)
	require.NoError(t, err)
	return len(entries)
}

func (e *testEnv) statusRows(t *testing.T, debtID uuid.UUID) []domain.PaymentStatusRecord {
	t.Helper()
	records, err := e.statuses.ListByDebt(context.Background(), e.db, debtID)
	require.NoError(t, err)
	return records
}

func (e *testEnv) upsertStatus(t *testing.T, debtID uuid.UUID, month, status string) {
	t.Helper()
	require.NoError(t, e.statuses.Upsert(context.Background(), e.db, &domain.PaymentStatusRecord{
		DebtID:      debtID,
		Month:       month,
		Status:      status,
		PenaltyRate: decimal.Zero,
		UpdatedAt:   time.Now().UTC(),
	}))
}

var nullExpense = uuid.NullUUID{}

package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/adiprw/fintrack/internal/domain"
)

// Repositories take an sqlx.ExtContext so a service can run several of
// them inside one transaction: pass the *sqlx.DB for single-statement
// reads, or the *sqlx.Tx the service opened for multi-table mutations.

// DebtRepository defines the interface for debt data operations
type DebtRepository interface {
	// Create inserts a new debt
	Create(ctx context.Context, q sqlx.ExtContext, debt *domain.Debt) error

	// GetByID retrieves a debt by id
	GetByID(ctx context.Context, q sqlx.ExtContext, id uuid.UUID) (*domain.Debt, error)

	// List retrieves all debts ordered by creation time
	List(ctx context.Context, q sqlx.ExtContext) ([]*domain.Debt, error)

	// UpdateDetails updates the mutable presentation fields
	UpdateDetails(ctx context.Context, q sqlx.ExtContext, id uuid.UUID, creditor, notes string) error

	// RecalcRemaining re-establishes remaining = total - sum(ledger) and
	// returns the new remaining amount. Must run in the same transaction
	// as the ledger write it follows.
	RecalcRemaining(ctx context.Context, q sqlx.ExtContext, id uuid.UUID) (decimal.Decimal, error)

	// Delete removes the debt row
	Delete(ctx context.Context, q sqlx.ExtContext, id uuid.UUID) error
}

// LedgerRepository defines the interface for repayment ledger operations
type LedgerRepository interface {
	// Insert appends a ledger entry
	Insert(ctx context.Context, q sqlx.ExtContext, entry *domain.RepaymentLedgerEntry) error

	// ListByDebt retrieves a debt's entries ordered by repayment date
	ListByDebt(ctx context.Context, q sqlx.ExtContext, debtID uuid.UUID) ([]*domain.RepaymentLedgerEntry, error)

	// SumByDebt totals a debt's entries
	SumByDebt(ctx context.Context, q sqlx.ExtContext, debtID uuid.UUID) (decimal.Decimal, error)

	// DeleteByExpense removes the entry tagged with an expense, if any
	DeleteByExpense(ctx context.Context, q sqlx.ExtContext, expenseID uuid.UUID) error

	// DeleteByDebt removes all entries of a debt
	DeleteByDebt(ctx context.Context, q sqlx.ExtContext, debtID uuid.UUID) error
}

// PaymentStatusRepository defines the interface for per-month status rows
type PaymentStatusRepository interface {
	// Upsert replaces the row for (debt, month)
	Upsert(ctx context.Context, q sqlx.ExtContext, rec *domain.PaymentStatusRecord) error

	// Delete removes the row for (debt, month), if any
	Delete(ctx context.Context, q sqlx.ExtContext, debtID uuid.UUID, month string) error

	// ListByDebt retrieves a debt's rows ordered by month ascending
	ListByDebt(ctx context.Context, q sqlx.ExtContext, debtID uuid.UUID) ([]domain.PaymentStatusRecord, error)

	// DeleteByDebt removes all rows of a debt
	DeleteByDebt(ctx context.Context, q sqlx.ExtContext, debtID uuid.UUID) error
}

// ExpenseRepository covers the slice of the externally-owned expenses
// table the engine touches
type ExpenseRepository interface {
	// Create inserts an expense (seeding and tests; the expense subsystem
	// owns this table in the full application)
	Create(ctx context.Context, q sqlx.ExtContext, e *domain.LinkedExpense) error

	// GetByID retrieves an expense by id
	GetByID(ctx context.Context, q sqlx.ExtContext, id uuid.UUID) (*domain.LinkedExpense, error)

	// ListByDebt retrieves all expenses linked to a debt
	ListByDebt(ctx context.Context, q sqlx.ExtContext, debtID uuid.UUID) ([]*domain.LinkedExpense, error)

	// UpdateStatus rewrites an expense's status and paid date
	UpdateStatus(ctx context.Context, q sqlx.ExtContext, id uuid.UUID, status string, paidDate sql.NullTime) error

	// MarkPendingPaid flips every pending expense of a debt to paid
	MarkPendingPaid(ctx context.Context, q sqlx.ExtContext, debtID uuid.UUID, paidAt time.Time) error

	// DeleteByDebt removes all expenses linked to a debt
	DeleteByDebt(ctx context.Context, q sqlx.ExtContext, debtID uuid.UUID) error
}

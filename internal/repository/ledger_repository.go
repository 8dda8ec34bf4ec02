package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/adiprw/fintrack/internal/domain"
)

type ledgerRepository struct{}

func NewLedgerRepository() LedgerRepository {
	return &ledgerRepository{}
}

func (r *ledgerRepository) Insert(ctx context.Context, q sqlx.ExtContext, entry *domain.RepaymentLedgerEntry) error {
	query := `
		INSERT INTO debt_repayments (id, debt_id, amount, repayment_date, frequency, notes, expense_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := q.ExecContext(ctx, query,
		entry.ID,
		entry.DebtID,
		entry.Amount,
		entry.RepaymentDate,
		entry.Frequency,
		entry.Notes,
		entry.ExpenseID,
		entry.CreatedAt,
	)

	return err
}

func (r *ledgerRepository) ListByDebt(ctx context.Context, q sqlx.ExtContext, debtID uuid.UUID) ([]*domain.RepaymentLedgerEntry, error) {
	query := `
		SELECT id, debt_id, amount, repayment_date, frequency, notes, expense_id, created_at
		FROM debt_repayments
		WHERE debt_id = ?
		ORDER BY repayment_date, created_at
	`

	entries := []*domain.RepaymentLedgerEntry{}
	if err := sqlx.SelectContext(ctx, q, &entries, query, debtID); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *ledgerRepository) SumByDebt(ctx context.Context, q sqlx.ExtContext, debtID uuid.UUID) (decimal.Decimal, error) {
	amounts := []decimal.Decimal{}
	if err := sqlx.SelectContext(ctx, q, &amounts, `SELECT amount FROM debt_repayments WHERE debt_id = ?`, debtID); err != nil {
		return decimal.Zero, err
	}

	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(a)
	}

	return sum, nil
}

func (r *ledgerRepository) DeleteByExpense(ctx context.Context, q sqlx.ExtContext, expenseID uuid.UUID) error {
	_, err := q.ExecContext(ctx, `DELETE FROM debt_repayments WHERE expense_id = ?`, expenseID)
	return err
}

func (r *ledgerRepository) DeleteByDebt(ctx context.Context, q sqlx.ExtContext, debtID uuid.UUID) error {
	_, err := q.ExecContext(ctx, `DELETE FROM debt_repayments WHERE debt_id = ?`, debtID)
	return err
}

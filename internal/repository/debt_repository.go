package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/adiprw/fintrack/internal/domain"
	engineErrors "github.com/adiprw/fintrack/pkg/errors"
)

type debtRepository struct{}

func NewDebtRepository() DebtRepository {
	return &debtRepository{}
}

func (r *debtRepository) Create(ctx context.Context, q sqlx.ExtContext, debt *domain.Debt) error {
	query := `
		INSERT INTO debts (id, creditor, total_amount, remaining_amount, interest_rate, currency,
			start_date, expected_end_date, frequency, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := q.ExecContext(ctx, query,
		debt.ID,
		debt.Creditor,
		debt.TotalAmount,
		debt.RemainingAmount,
		debt.InterestRate,
		debt.Currency,
		debt.StartDate,
		debt.ExpectedEndDate,
		debt.Frequency,
		debt.Notes,
		debt.CreatedAt,
		debt.UpdatedAt,
	)

	return err
}

func (r *debtRepository) GetByID(ctx context.Context, q sqlx.ExtContext, id uuid.UUID) (*domain.Debt, error) {
	query := `
		SELECT id, creditor, total_amount, remaining_amount, interest_rate, currency,
			start_date, expected_end_date, frequency, notes, created_at, updated_at
		FROM debts
		WHERE id = ?
	`

	var debt domain.Debt
	if err := sqlx.GetContext(ctx, q, &debt, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, engineErrors.WrapDebtNotFound(id.String())
		}
		return nil, err
	}

	return &debt, nil
}

func (r *debtRepository) List(ctx context.Context, q sqlx.ExtContext) ([]*domain.Debt, error) {
	query := `
		SELECT id, creditor, total_amount, remaining_amount, interest_rate, currency,
			start_date, expected_end_date, frequency, notes, created_at, updated_at
		FROM debts
		ORDER BY created_at, id
	`

	debts := []*domain.Debt{}
	if err := sqlx.SelectContext(ctx, q, &debts, query); err != nil {
		return nil, err
	}

	return debts, nil
}

func (r *debtRepository) UpdateDetails(ctx context.Context, q sqlx.ExtContext, id uuid.UUID, creditor, notes string) error {
	query := `
		UPDATE debts
		SET creditor = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`

	res, err := q.ExecContext(ctx, query, creditor, notes, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return engineErrors.WrapDebtNotFound(id.String())
	}

	return nil
}

// RecalcRemaining sums the ledger in decimal space rather than in SQL so
// the balance never picks up floating-point drift. It also enforces the
// overpayment rule: a ledger state that would drive the balance negative
// aborts the surrounding transaction.
func (r *debtRepository) RecalcRemaining(ctx context.Context, q sqlx.ExtContext, id uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := sqlx.GetContext(ctx, q, &total, `SELECT total_amount FROM debts WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, engineErrors.WrapDebtNotFound(id.String())
		}
		return decimal.Zero, err
	}

	amounts := []decimal.Decimal{}
	if err := sqlx.SelectContext(ctx, q, &amounts, `SELECT amount FROM debt_repayments WHERE debt_id = ?`, id); err != nil {
		return decimal.Zero, err
	}

	repaid := decimal.Zero
	for _, a := range amounts {
		repaid = repaid.Add(a)
	}

	remaining := total.Sub(repaid)
	if remaining.IsNegative() {
		return decimal.Zero, engineErrors.WrapOverpayment(id.String(), repaid.String(), total.String())
	}

	_, err := q.ExecContext(ctx,
		`UPDATE debts SET remaining_amount = ?, updated_at = ? WHERE id = ?`,
		remaining, time.Now().UTC(), id,
	)
	if err != nil {
		return decimal.Zero, err
	}

	return remaining, nil
}

func (r *debtRepository) Delete(ctx context.Context, q sqlx.ExtContext, id uuid.UUID) error {
	res, err := q.ExecContext(ctx, `DELETE FROM debts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return engineErrors.WrapDebtNotFound(id.String())
	}

	return nil
}

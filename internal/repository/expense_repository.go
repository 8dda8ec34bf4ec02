package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/adiprw/fintrack/internal/domain"
	engineErrors "github.com/adiprw/fintrack/pkg/errors"
)

type expenseRepository struct{}

func NewExpenseRepository() ExpenseRepository {
	return &expenseRepository{}
}

func (r *expenseRepository) Create(ctx context.Context, q sqlx.ExtContext, e *domain.LinkedExpense) error {
	query := `
		INSERT INTO expenses (id, amount, status, due_date, paid_date, linked_item_type, linked_item_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := q.ExecContext(ctx, query,
		e.ID,
		e.Amount,
		e.Status,
		e.DueDate,
		e.PaidDate,
		e.LinkedItemType,
		e.LinkedItemID,
		e.CreatedAt,
		e.UpdatedAt,
	)

	return err
}

func (r *expenseRepository) GetByID(ctx context.Context, q sqlx.ExtContext, id uuid.UUID) (*domain.LinkedExpense, error) {
	query := `
		SELECT id, amount, status, due_date, paid_date, linked_item_type, linked_item_id, created_at, updated_at
		FROM expenses
		WHERE id = ?
	`

	var e domain.LinkedExpense
	if err := sqlx.GetContext(ctx, q, &e, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, engineErrors.WrapExpenseNotFound(id.String())
		}
		return nil, err
	}

	return &e, nil
}

func (r *expenseRepository) ListByDebt(ctx context.Context, q sqlx.ExtContext, debtID uuid.UUID) ([]*domain.LinkedExpense, error) {
	query := `
		SELECT id, amount, status, due_date, paid_date, linked_item_type, linked_item_id, created_at, updated_at
		FROM expenses
		WHERE linked_item_type = ? AND linked_item_id = ?
		ORDER BY due_date, id
	`

	expenses := []*domain.LinkedExpense{}
	if err := sqlx.SelectContext(ctx, q, &expenses, query, domain.LinkedItemTypeDebt, debtID); err != nil {
		return nil, err
	}

	return expenses, nil
}

func (r *expenseRepository) UpdateStatus(ctx context.Context, q sqlx.ExtContext, id uuid.UUID, status string, paidDate sql.NullTime) error {
	query := `
		UPDATE expenses
		SET status = ?, paid_date = ?, updated_at = ?
		WHERE id = ?
	`

	res, err := q.ExecContext(ctx, query, status, paidDate, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return engineErrors.WrapExpenseNotFound(id.String())
	}

	return nil
}

func (r *expenseRepository) MarkPendingPaid(ctx context.Context, q sqlx.ExtContext, debtID uuid.UUID, paidAt time.Time) error {
	query := `
		UPDATE expenses
		SET status = ?, paid_date = ?, updated_at = ?
		WHERE linked_item_type = ? AND linked_item_id = ? AND status = ?
	`

	_, err := q.ExecContext(ctx, query,
		domain.ExpenseStatusPaid,
		paidAt,
		paidAt,
		domain.LinkedItemTypeDebt,
		debtID,
		domain.ExpenseStatusPending,
	)

	return err
}

func (r *expenseRepository) DeleteByDebt(ctx context.Context, q sqlx.ExtContext, debtID uuid.UUID) error {
	_, err := q.ExecContext(ctx, `DELETE FROM expenses WHERE linked_item_type = ? AND linked_item_id = ?`, domain.LinkedItemTypeDebt, debtID)
	return err
}

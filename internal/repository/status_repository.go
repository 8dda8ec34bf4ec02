package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/adiprw/fintrack/internal/domain"
)

type paymentStatusRepository struct{}

func NewPaymentStatusRepository() PaymentStatusRepository {
	return &paymentStatusRepository{}
}

func (r *paymentStatusRepository) Upsert(ctx context.Context, q sqlx.ExtContext, rec *domain.PaymentStatusRecord) error {
	query := `
		INSERT INTO debt_payment_status (debt_id, month, status, penalty_rate, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (debt_id, month)
		DO UPDATE SET status = excluded.status, penalty_rate = excluded.penalty_rate, updated_at = excluded.updated_at
	`

	_, err := q.ExecContext(ctx, query,
		rec.DebtID,
		rec.Month,
		rec.Status,
		rec.PenaltyRate,
		rec.UpdatedAt,
	)

	return err
}

func (r *paymentStatusRepository) Delete(ctx context.Context, q sqlx.ExtContext, debtID uuid.UUID, month string) error {
	_, err := q.ExecContext(ctx, `DELETE FROM debt_payment_status WHERE debt_id = ? AND month = ?`, debtID, month)
	return err
}

func (r *paymentStatusRepository) ListByDebt(ctx context.Context, q sqlx.ExtContext, debtID uuid.UUID) ([]domain.PaymentStatusRecord, error) {
	query := `
		SELECT debt_id, month, status, penalty_rate, updated_at
		FROM debt_payment_status
		WHERE debt_id = ?
		ORDER BY month
	`

	records := []domain.PaymentStatusRecord{}
	if err := sqlx.SelectContext(ctx, q, &records, query, debtID); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *paymentStatusRepository) DeleteByDebt(ctx context.Context, q sqlx.ExtContext, debtID uuid.UUID) error {
	_, err := q.ExecContext(ctx, `DELETE FROM debt_payment_status WHERE debt_id = ?`, debtID)
	return err
}

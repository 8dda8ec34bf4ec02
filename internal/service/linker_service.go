package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/adiprw/fintrack/internal/domain"
	"github.com/adiprw/fintrack/internal/repository"
	engineErrors "github.com/adiprw/fintrack/pkg/errors"
)

// LinkerService synchronizes a debt's ledger and payment-status rows with
// the expense subsystem's status transitions. Each transition is one
// atomic unit: the ledger write, the status row, and the expense's own
// status field commit or roll back together.
type LinkerService struct {
	db       *sqlx.DB
	debts    repository.DebtRepository
	ledger   repository.LedgerRepository
	statuses repository.PaymentStatusRepository
	expenses repository.ExpenseRepository

	now func() time.Time
}

func NewLinkerService(
	db *sqlx.DB,
	debts repository.DebtRepository,
	ledger repository.LedgerRepository,
	statuses repository.PaymentStatusRepository,
	expenses repository.ExpenseRepository,
) *LinkerService {
	return &LinkerService{
		db:       db,
		debts:    debts,
		ledger:   ledger,
		statuses: statuses,
		expenses: expenses,
		now:      time.Now,
	}
}

// ApplyStatus runs one state-machine transition for a debt-linked expense.
// Cleanup comes before insertion, so replaying a transition can never
// produce duplicate ledger rows: the entry tagged with this expense and
// the month's status row are dropped first, then rebuilt for the new
// status. The month key is taken from the expense due date, so a reversal
// always targets the same row the original transition wrote.
func (s *LinkerService) ApplyStatus(ctx context.Context, expenseID uuid.UUID, newStatus string) error {
	if !domain.ValidExpenseStatus(newStatus) {
		return engineErrors.WrapValidation(engineErrors.ErrInvalidStatus)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return engineErrors.WrapDatabaseError(err)
	}
	defer tx.Rollback()

	expense, err := s.expenses.GetByID(ctx, tx, expenseID)
	if err != nil {
		return err
	}

	if expense.LinkedItemType != domain.LinkedItemTypeDebt || !expense.LinkedItemID.Valid {
		return engineErrors.WrapValidation(engineErrors.ErrNotDebtLinked)
	}
	debtID := expense.LinkedItemID.UUID

	debt, err := s.debts.GetByID(ctx, tx, debtID)
	if err != nil {
		return err
	}

	month := domain.MonthKey(expense.DueDate)
	now := s.now().UTC()

	// Idempotent cleanup of whatever a previous transition wrote.
	if err := s.ledger.DeleteByExpense(ctx, tx, expenseID); err != nil {
		return engineErrors.WrapTransaction("expense transition", err)
	}
	if err := s.statuses.Delete(ctx, tx, debtID, month); err != nil {
		return engineErrors.WrapTransaction("expense transition", err)
	}

	paidDate := sql.NullTime{}

	switch newStatus {
	case domain.ExpenseStatusPaid:
		entry := &domain.RepaymentLedgerEntry{
			ID:            uuid.New(),
			DebtID:        debtID,
			Amount:        expense.Amount,
			RepaymentDate: expense.DueDate,
			Frequency:     debt.Frequency,
			ExpenseID:     uuid.NullUUID{UUID: expenseID, Valid: true},
			CreatedAt:     now,
		}
		if err := s.ledger.Insert(ctx, tx, entry); err != nil {
			return engineErrors.WrapTransaction("expense transition", err)
		}

		record := &domain.PaymentStatusRecord{
			DebtID:      debtID,
			Month:       month,
			Status:      domain.PaymentStatusPaid,
			PenaltyRate: decimal.Zero,
			UpdatedAt:   now,
		}
		if err := s.statuses.Upsert(ctx, tx, record); err != nil {
			return engineErrors.WrapTransaction("expense transition", err)
		}

		paidDate = sql.NullTime{Time: now, Valid: true}

	case domain.ExpenseStatusMissed:
		// No money moves on a miss, only the month's status row.
		record := &domain.PaymentStatusRecord{
			DebtID:      debtID,
			Month:       month,
			Status:      domain.PaymentStatusMissed,
			PenaltyRate: decimal.Zero,
			UpdatedAt:   now,
		}
		if err := s.statuses.Upsert(ctx, tx, record); err != nil {
			return engineErrors.WrapTransaction("expense transition", err)
		}

	case domain.ExpenseStatusPending:
		// Neutral state: no ledger entry, no status row.
	}

	if err := s.expenses.UpdateStatus(ctx, tx, expenseID, newStatus, paidDate); err != nil {
		return engineErrors.WrapTransaction("expense transition", err)
	}

	if _, err := s.debts.RecalcRemaining(ctx, tx, debtID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return engineErrors.WrapTransaction("expense transition", err)
	}

	slog.InfoContext(ctx, "expense transition applied",
		"expense_id", expenseID,
		"debt_id", debtID,
		"status", newStatus,
		"month", month)

	return nil
}

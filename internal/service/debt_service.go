package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/adiprw/fintrack/internal/domain"
	"github.com/adiprw/fintrack/internal/repository"
	engineErrors "github.com/adiprw/fintrack/pkg/errors"
	"github.com/adiprw/fintrack/pkg/finmath"
)

// DebtService is the debt registry: it owns debt lifecycle mutations and
// guarantees that remaining_amount and the repayment ledger never disagree
// once a transaction commits.
type DebtService struct {
	db       *sqlx.DB
	debts    repository.DebtRepository
	ledger   repository.LedgerRepository
	statuses repository.PaymentStatusRepository
	expenses repository.ExpenseRepository

	defaultCurrency string
	now             func() time.Time
}

func NewDebtService(
	db *sqlx.DB,
	debts repository.DebtRepository,
	ledger repository.LedgerRepository,
	statuses repository.PaymentStatusRepository,
	expenses repository.ExpenseRepository,
	defaultCurrency string,
) *DebtService {
	return &DebtService{
		db:              db,
		debts:           debts,
		ledger:          ledger,
		statuses:        statuses,
		expenses:        expenses,
		defaultCurrency: defaultCurrency,
		now:             time.Now,
	}
}

// Create validates and registers a new debt with remaining = total.
func (s *DebtService) Create(ctx context.Context, req *domain.CreateDebtRequest) (uuid.UUID, error) {
	if err := req.Validate(); err != nil {
		return uuid.Nil, err
	}

	frequency, err := finmath.ParseFrequency(req.Frequency)
	if err != nil {
		return uuid.Nil, engineErrors.WrapValidation(err)
	}

	currency := req.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}

	now := s.now().UTC()
	debt := &domain.Debt{
		ID:              uuid.New(),
		Creditor:        req.Creditor,
		TotalAmount:     req.TotalAmount,
		RemainingAmount: req.TotalAmount,
		InterestRate:    req.InterestRate,
		Currency:        currency,
		StartDate:       req.StartDate.UTC(),
		ExpectedEndDate: req.ExpectedEndDate.UTC(),
		Frequency:       frequency,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.debts.Create(ctx, s.db, debt); err != nil {
		return uuid.Nil, engineErrors.WrapDatabaseError(err)
	}

	slog.InfoContext(ctx, "debt created",
		"debt_id", debt.ID,
		"creditor", debt.Creditor,
		"total_amount", debt.TotalAmount,
		"frequency", debt.Frequency)

	return debt.ID, nil
}

func (s *DebtService) Get(ctx context.Context, id uuid.UUID) (*domain.Debt, error) {
	return s.debts.GetByID(ctx, s.db, id)
}

func (s *DebtService) List(ctx context.Context) ([]*domain.Debt, error) {
	return s.debts.List(ctx, s.db)
}

// Update rewrites the presentation fields; money fields only ever move
// through the ledger.
func (s *DebtService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateDebtRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.debts.UpdateDetails(ctx, s.db, id, req.Creditor, req.Notes)
}

// Ledger returns a debt's repayment entries, oldest first.
func (s *DebtService) Ledger(ctx context.Context, id uuid.UUID) ([]*domain.RepaymentLedgerEntry, error) {
	if _, err := s.debts.GetByID(ctx, s.db, id); err != nil {
		return nil, err
	}
	return s.ledger.ListByDebt(ctx, s.db, id)
}

// Schedule computes the ephemeral amortization plan against the current
// remaining balance. Never cached.
func (s *DebtService) Schedule(ctx context.Context, id uuid.UUID) (*finmath.Schedule, error) {
	debt, err := s.debts.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	schedule, err := finmath.Amortize(
		debt.RemainingAmount,
		debt.InterestRate,
		debt.StartDate,
		debt.ExpectedEndDate,
		s.now().UTC(),
		debt.Frequency,
	)
	if err != nil {
		return nil, engineErrors.WrapComputation(err)
	}

	return &schedule, nil
}

// AddRepayment appends a ledger entry and re-establishes the balance
// invariant in the same transaction. A repayment larger than the remaining
// balance is rejected; early payoff goes through MarkPaidOff.
func (s *DebtService) AddRepayment(
	ctx context.Context,
	debtID uuid.UUID,
	amount decimal.Decimal,
	date time.Time,
	frequency finmath.Frequency,
	notes string,
	expenseID uuid.NullUUID,
) (uuid.UUID, error) {
	if !amount.IsPositive() {
		return uuid.Nil, engineErrors.WrapValidation(engineErrors.ErrInvalidAmount)
	}
	if _, err := finmath.ParseFrequency(string(frequency)); err != nil {
		return uuid.Nil, engineErrors.WrapValidation(err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, engineErrors.WrapDatabaseError(err)
	}
	defer tx.Rollback()

	debt, err := s.debts.GetByID(ctx, tx, debtID)
	if err != nil {
		return uuid.Nil, err
	}

	if amount.GreaterThan(debt.RemainingAmount) {
		return uuid.Nil, engineErrors.WrapOverpayment(debtID.String(), amount.String(), debt.RemainingAmount.String())
	}

	entry := &domain.RepaymentLedgerEntry{
		ID:            uuid.New(),
		DebtID:        debtID,
		Amount:        amount,
		RepaymentDate: date.UTC(),
		Frequency:     frequency,
		Notes:         notes,
		ExpenseID:     expenseID,
		CreatedAt:     s.now().UTC(),
	}

	if err := s.ledger.Insert(ctx, tx, entry); err != nil {
		return uuid.Nil, engineErrors.WrapTransaction("add repayment", err)
	}

	if _, err := s.debts.RecalcRemaining(ctx, tx, debtID); err != nil {
		return uuid.Nil, err
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, engineErrors.WrapTransaction("add repayment", err)
	}

	slog.InfoContext(ctx, "repayment recorded",
		"debt_id", debtID,
		"entry_id", entry.ID,
		"amount", amount)

	return entry.ID, nil
}

// MarkPaidOff settles a debt in one transaction: a final ledger entry for
// exactly the remaining balance, every still-pending linked expense
// flipped to paid, and the current month recorded as paid. Calling it
// again on a settled debt is a no-op, not an error.
func (s *DebtService) MarkPaidOff(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return engineErrors.WrapDatabaseError(err)
	}
	defer tx.Rollback()

	debt, err := s.debts.GetByID(ctx, tx, id)
	if err != nil {
		return err
	}

	now := s.now().UTC()

	if debt.RemainingAmount.IsPositive() {
		entry := &domain.RepaymentLedgerEntry{
			ID:            uuid.New(),
			DebtID:        id,
			Amount:        debt.RemainingAmount,
			RepaymentDate: now,
			Frequency:     debt.Frequency,
			Notes:         "final payoff",
			CreatedAt:     now,
		}
		if err := s.ledger.Insert(ctx, tx, entry); err != nil {
			return engineErrors.WrapTransaction("mark paid off", err)
		}
	}

	if err := s.expenses.MarkPendingPaid(ctx, tx, id, now); err != nil {
		return engineErrors.WrapTransaction("mark paid off", err)
	}

	record := &domain.PaymentStatusRecord{
		DebtID:      id,
		Month:       domain.MonthKey(now),
		Status:      domain.PaymentStatusPaid,
		PenaltyRate: decimal.Zero,
		UpdatedAt:   now,
	}
	if err := s.statuses.Upsert(ctx, tx, record); err != nil {
		return engineErrors.WrapTransaction("mark paid off", err)
	}

	if _, err := s.debts.RecalcRemaining(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return engineErrors.WrapTransaction("mark paid off", err)
	}

	slog.InfoContext(ctx, "debt marked paid off", "debt_id", id)

	return nil
}

// Delete removes a debt and everything hanging off it, all-or-nothing:
// linked expenses, ledger entries, status rows, then the debt itself.
func (s *DebtService) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return engineErrors.WrapDatabaseError(err)
	}
	defer tx.Rollback()

	if _, err := s.debts.GetByID(ctx, tx, id); err != nil {
		return err
	}

	if err := s.expenses.DeleteByDebt(ctx, tx, id); err != nil {
		return engineErrors.WrapTransaction("delete debt", err)
	}
	if err := s.ledger.DeleteByDebt(ctx, tx, id); err != nil {
		return engineErrors.WrapTransaction("delete debt", err)
	}
	if err := s.statuses.DeleteByDebt(ctx, tx, id); err != nil {
		return engineErrors.WrapTransaction("delete debt", err)
	}
	if err := s.debts.Delete(ctx, tx, id); err != nil {
		return engineErrors.WrapTransaction("delete debt", err)
	}

	if err := tx.Commit(); err != nil {
		return engineErrors.WrapTransaction("delete debt", err)
	}

	slog.InfoContext(ctx, "debt deleted", "debt_id", id)

	return nil
}

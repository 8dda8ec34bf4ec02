package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adiprw/fintrack/pkg/finmath"
)

// RepaymentLedgerEntry is one money movement against a debt. Entries are
// append-only: they are never updated, and deleted only while atomically
// reversing an expense status or removing the whole debt.
type RepaymentLedgerEntry struct {
	ID            uuid.UUID         `json:"id" db:"id"`
	DebtID        uuid.UUID         `json:"debt_id" db:"debt_id"`
	Amount        decimal.Decimal   `json:"amount" db:"amount"`
	RepaymentDate time.Time         `json:"repayment_date" db:"repayment_date"`
	Frequency     finmath.Frequency `json:"frequency" db:"frequency"`
	Notes         string            `json:"notes" db:"notes"`
	ExpenseID     uuid.NullUUID     `json:"expense_id,omitempty" db:"expense_id"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
}

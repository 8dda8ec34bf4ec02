package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense statuses drive the linker's state machine. pending is the
// neutral state: no ledger entry, no status row.
const (
	ExpenseStatusPending = "pending"
	ExpenseStatusPaid    = "paid"
	ExpenseStatusMissed  = "missed"
)

// LinkedItemTypeDebt marks an expense as driving a debt's ledger.
const LinkedItemTypeDebt = "debt"

// LinkedExpense is owned by the expense subsystem; the engine only reads
// it and rewrites its status as part of a linker transaction.
type LinkedExpense struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	Amount         decimal.Decimal `json:"amount" db:"amount"`
	Status         string          `json:"status" db:"status"`
	DueDate        time.Time       `json:"due_date" db:"due_date"`
	PaidDate       sql.NullTime    `json:"paid_date,omitempty" db:"paid_date"`
	LinkedItemType string          `json:"linked_item_type" db:"linked_item_type"`
	LinkedItemID   uuid.NullUUID   `json:"linked_item_id,omitempty" db:"linked_item_id"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

func ValidExpenseStatus(s string) bool {
	switch s {
	case ExpenseStatusPending, ExpenseStatusPaid, ExpenseStatusMissed:
		return true
	}
	return false
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentStatusPaid   = "paid"
	PaymentStatusMissed = "missed"
)

// MonthKeyLayout formats a calendar month as the key of a payment status
// row, e.g. "2026-09".
const MonthKeyLayout = "2006-01"

func MonthKey(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// PaymentStatusRecord marks a debt's month as paid or missed. At most one
// row exists per debt per calendar month; writes replace.
type PaymentStatusRecord struct {
	DebtID      uuid.UUID       `json:"debt_id" db:"debt_id"`
	Month       string          `json:"month" db:"month"`
	Status      string          `json:"status" db:"status"`
	PenaltyRate decimal.Decimal `json:"penalty_rate" db:"penalty_rate"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// ConsecutiveMissed counts the trailing run of missed months in records,
// which must be sorted by month ascending. Any paid month resets the run.
func ConsecutiveMissed(records []PaymentStatusRecord) int {
	run := 0
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Status != PaymentStatusMissed {
			break
		}
		run++
	}
	return run
}

// CountMissed counts all missed months regardless of position.
func CountMissed(records []PaymentStatusRecord) int {
	missed := 0
	for _, r := range records {
		if r.Status == PaymentStatusMissed {
			missed++
		}
	}
	return missed
}

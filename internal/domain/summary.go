package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UpcomingRepayment is the earliest scheduled payment across active debts.
type UpcomingRepayment struct {
	DebtID   uuid.UUID       `json:"debt_id"`
	Creditor string          `json:"creditor"`
	Date     time.Time       `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
}

// DebtSummary is the read-only projection consumed by the presentation
// layer. It is always well-formed: an empty debt set yields zero values,
// never an error.
type DebtSummary struct {
	TotalOutstanding      decimal.Decimal       `json:"total_outstanding"`
	ActiveDebts           int                   `json:"active_debts"`
	HighestInterestDebt   *Debt                 `json:"highest_interest_debt,omitempty"`
	UpcomingRepayment     *UpcomingRepayment    `json:"upcoming_repayment,omitempty"`
	DebtToIncomeRatio     decimal.Decimal       `json:"debt_to_income_ratio"`
	MonthlyRepaymentTotal decimal.Decimal       `json:"monthly_repayment_total"`
	Debts                 []*Debt               `json:"debts"`
	MissedPayments        int                   `json:"missed_payments"`
	TotalPenalties        decimal.Decimal       `json:"total_penalties"`
	PaymentHistory        []PaymentStatusRecord `json:"payment_history"`
	GeneratedAt           time.Time             `json:"generated_at"`
}

// EmptySummary returns the zeroed projection for an empty debt set.
func EmptySummary(now time.Time) *DebtSummary {
	return &DebtSummary{
		Debts:          []*Debt{},
		PaymentHistory: []PaymentStatusRecord{},
		GeneratedAt:    now,
	}
}

package finmath

import "github.com/shopspring/decimal"

// Missed-payment escalation: +2 percentage points per consecutive missed
// month, capped at +10 points over the base rate.
var (
	penaltyStep = decimal.NewFromInt(2)
	penaltyCap  = decimal.NewFromInt(10)

	twelve = decimal.NewFromInt(12)
)

// PenaltyRate returns the escalated annual rate after a streak of
// consecutive missed payments.
func PenaltyRate(baseRate decimal.Decimal, consecutiveMissed int) decimal.Decimal {
	surcharge := penaltyStep.Mul(decimal.NewFromInt(int64(consecutiveMissed)))
	if surcharge.GreaterThan(penaltyCap) {
		surcharge = penaltyCap
	}
	return baseRate.Add(surcharge)
}

// TotalPenalty returns the extra cost of the escalated rate over the base
// rate, accrued monthly over monthsMissed. Base interest itself is excluded:
// only the surcharge counts as penalty.
func TotalPenalty(amount, baseRate, penaltyRate decimal.Decimal, monthsMissed int) decimal.Decimal {
	monthlySpread := penaltyRate.Sub(baseRate).Div(twelve).Div(hundred)
	return amount.Mul(monthlySpread).Mul(decimal.NewFromInt(int64(monthsMissed))).Round(2)
}

package finmath

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/adiprw/fintrack/pkg/errors"
)

// Frequency is the repayment cadence of a debt.
type Frequency string

const (
	OneTime Frequency = "one_time"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

// ParseFrequency normalizes a stored frequency value.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case OneTime, Weekly, Monthly, Yearly:
		return Frequency(s), nil
	}
	return "", errors.ErrInvalidFrequency
}

// PeriodsPerYear returns the number of repayment periods in a year.
// OneTime has no recurring period and returns 0.
func (f Frequency) PeriodsPerYear() int {
	switch f {
	case Weekly:
		return 52
	case Monthly:
		return 12
	case Yearly:
		return 1
	default:
		return 0
	}
}

// Schedule is an amortized payment plan. It is ephemeral: always computed
// from the current remaining balance, never persisted or cached.
type Schedule struct {
	PaymentAmount     decimal.Decimal `json:"payment_amount"`
	TotalPayments     int             `json:"total_payments"`
	NextPaymentDate   time.Time       `json:"next_payment_date"`
	NextPaymentAmount decimal.Decimal `json:"next_payment_amount"`
}

var hundred = decimal.NewFromInt(100)

// Amortize computes the level payment that retires remaining by the expected
// end date, using the closed-form annuity formula at the period-adjusted
// rate. The term is re-amortized to the original end date: periods are
// counted from start or from now, whichever is later, so an off-schedule
// balance is spread over the periods actually left.
//
//	payment = remaining * r(1+r)^n / ((1+r)^n - 1)
//
// where r is the per-period rate and n the remaining period count. A zero
// rate degenerates to remaining/n. Returns an error rather than NaN or
// Infinity when the term has no periods left.
func Amortize(remaining, annualRatePct decimal.Decimal, start, end, now time.Time, freq Frequency) (Schedule, error) {
	if remaining.IsNegative() {
		return Schedule{}, errors.ErrInvalidAmount
	}
	if annualRatePct.IsNegative() {
		return Schedule{}, errors.ErrInvalidInterestRate
	}

	anchor := start
	if now.After(start) {
		anchor = now
	}

	if freq == OneTime {
		if !end.After(anchor) {
			return Schedule{}, errors.ErrInvalidTerm
		}
		return Schedule{
			PaymentAmount:     remaining.Round(2),
			TotalPayments:     1,
			NextPaymentDate:   end,
			NextPaymentAmount: remaining.Round(2),
		}, nil
	}

	ppy := freq.PeriodsPerYear()
	if ppy == 0 {
		return Schedule{}, errors.ErrInvalidFrequency
	}

	n := periodsBetween(anchor, end, freq)
	if n <= 0 {
		return Schedule{}, errors.ErrInvalidTerm
	}

	periods := decimal.NewFromInt(int64(n))
	r := annualRatePct.Div(decimal.NewFromInt(int64(ppy))).Div(hundred)

	var payment decimal.Decimal
	if r.IsZero() {
		payment = remaining.Div(periods).Round(2)
	} else {
		compound := decimal.NewFromInt(1).Add(r).Pow(periods)
		payment = remaining.Mul(r).Mul(compound).Div(compound.Sub(decimal.NewFromInt(1))).Round(2)
	}

	return Schedule{
		PaymentAmount:     payment,
		TotalPayments:     n,
		NextPaymentDate:   nextPaymentDate(anchor, end, freq),
		NextPaymentAmount: payment,
	}, nil
}

// MonthlyEquivalent converts a recurring per-period payment to its monthly
// cost, for debt-to-income aggregation. One-time payments have no recurring
// period; spread those with SpreadOverMonths instead.
func MonthlyEquivalent(payment decimal.Decimal, freq Frequency) decimal.Decimal {
	ppy := freq.PeriodsPerYear()
	if ppy == 0 {
		return payment
	}
	return payment.Mul(decimal.NewFromInt(int64(ppy))).Div(decimal.NewFromInt(12)).Round(2)
}

// SpreadOverMonths spreads a one-time payment evenly over the whole months
// until it falls due. A payment due within the current month counts at its
// full amount.
func SpreadOverMonths(payment decimal.Decimal, from, until time.Time) decimal.Decimal {
	months := wholeMonths(from, until)
	if months < 1 {
		return payment
	}
	return payment.Div(decimal.NewFromInt(int64(months))).Round(2)
}

// periodsBetween counts whole repayment periods between a and b.
func periodsBetween(a, b time.Time, freq Frequency) int {
	switch freq {
	case Weekly:
		return int(b.Sub(a).Hours() / (24 * 7))
	case Monthly:
		return wholeMonths(a, b)
	case Yearly:
		years := b.Year() - a.Year()
		if b.Month() < a.Month() || (b.Month() == a.Month() && b.Day() < a.Day()) {
			years--
		}
		return years
	default:
		return 0
	}
}

func wholeMonths(a, b time.Time) int {
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() {
		months--
	}
	return months
}

func nextPaymentDate(anchor, end time.Time, freq Frequency) time.Time {
	switch freq {
	case Weekly:
		return anchor.AddDate(0, 0, 7)
	case Yearly:
		return anchor.AddDate(1, 0, 0)
	case Monthly:
		// First day of the month following the anchor.
		return time.Date(anchor.Year(), anchor.Month()+1, 1, 0, 0, 0, 0, anchor.Location())
	default:
		return end
	}
}

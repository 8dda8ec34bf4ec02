package utils

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format accepted on the command line.
const DateLayout = "2006-01-02"

// ParseDate parses a calendar date in UTC. An empty string yields today.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}

	return t, nil
}

// ParseAmount parses a monetary amount
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	return amount, nil
}

// ParseRate parses an annual interest rate in percent
func ParseRate(s string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid interest rate %q: %w", s, err)
	}

	return rate, nil
}

// IsDateOverdue checks if a date is overdue (past current date)
func IsDateOverdue(dueDate time.Time) bool {
	return time.Now().After(dueDate)
}

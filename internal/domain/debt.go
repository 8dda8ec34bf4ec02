package domain

import (
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adiprw/fintrack/pkg/errors"
	"github.com/adiprw/fintrack/pkg/finmath"
)

// Debt represents a tracked loan. RemainingAmount is derived state: it is
// kept equal to TotalAmount minus the sum of the debt's ledger entries in
// the same transaction as every ledger write.
type Debt struct {
	ID              uuid.UUID         `json:"id" db:"id"`
	Creditor        string            `json:"creditor" db:"creditor"`
	TotalAmount     decimal.Decimal   `json:"total_amount" db:"total_amount"`
	RemainingAmount decimal.Decimal   `json:"remaining_amount" db:"remaining_amount"`
	InterestRate    decimal.Decimal   `json:"interest_rate" db:"interest_rate"`
	Currency        string            `json:"currency" db:"currency"`
	StartDate       time.Time         `json:"start_date" db:"start_date"`
	ExpectedEndDate time.Time         `json:"expected_end_date" db:"expected_end_date"`
	Frequency       finmath.Frequency `json:"frequency" db:"frequency"`
	Notes           string            `json:"notes" db:"notes"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" db:"updated_at"`
}

// Active reports whether the debt still carries a balance.
func (d *Debt) Active() bool {
	return d.RemainingAmount.IsPositive()
}

// DTOs for requests and responses

type CreateDebtRequest struct {
	Creditor        string          `json:"creditor" validate:"required"`
	TotalAmount     decimal.Decimal `json:"total_amount" validate:"gt=0"`
	InterestRate    decimal.Decimal `json:"interest_rate" validate:"gte=0"`
	Currency        string          `json:"currency"`
	StartDate       time.Time       `json:"start_date" validate:"required"`
	ExpectedEndDate time.Time       `json:"expected_end_date" validate:"required"`
	Frequency       string          `json:"frequency" validate:"required"`
	Notes           string          `json:"notes"`
}

type UpdateDebtRequest struct {
	Creditor string `json:"creditor" validate:"required"`
	Notes    string `json:"notes"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Let gt/gte tags apply to decimal fields.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Validate rejects the request before any write happens.
func (r *CreateDebtRequest) Validate() error {
	if !r.TotalAmount.IsPositive() {
		return errors.WrapValidation(errors.ErrInvalidAmount)
	}
	if r.InterestRate.IsNegative() {
		return errors.WrapValidation(errors.ErrInvalidInterestRate)
	}
	if !r.ExpectedEndDate.After(r.StartDate) {
		return errors.WrapValidation(errors.ErrInvalidDateRange)
	}
	if _, err := finmath.ParseFrequency(r.Frequency); err != nil {
		return errors.WrapValidation(err)
	}
	if err := validate.Struct(r); err != nil {
		return errors.WrapValidation(err)
	}
	return nil
}

func (r *UpdateDebtRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return errors.WrapValidation(err)
	}
	return nil
}

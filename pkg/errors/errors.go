package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrDebtNotFound         = errors.New("debt not found")
	ErrExpenseNotFound      = errors.New("linked expense not found")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrInvalidInterestRate  = errors.New("interest rate must not be negative")
	ErrInvalidDateRange     = errors.New("expected end date must be after start date")
	ErrInvalidFrequency     = errors.New("unsupported repayment frequency")
	ErrInvalidStatus        = errors.New("unknown expense status")
	ErrOverpayment          = errors.New("repayment exceeds remaining balance")
	ErrExpenseAlreadyLinked = errors.New("expense already has a ledger entry")
	ErrInvalidTerm          = errors.New("no repayment periods left in term")
	ErrNotDebtLinked        = errors.New("expense is not linked to a debt")
)

// EngineError represents an engine-level error with a stable code
type EngineError struct {
	Code    string
	Message string
	Err     error
}

func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError creates a new engine error
func NewEngineError(code, message string, err error) *EngineError {
	return &EngineError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeValidation  = "VALIDATION_ERROR"
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeTransaction = "TRANSACTION_ERROR"
	ErrCodeComputation = "COMPUTATION_ERROR"
	ErrCodeDatabase    = "DATABASE_ERROR"
	ErrCodeCache       = "CACHE_ERROR"
)

// Wrap common errors with engine context
func WrapDebtNotFound(debtID string) *EngineError {
	return NewEngineError(
		ErrCodeNotFound,
		fmt.Sprintf("Debt with ID %s not found", debtID),
		ErrDebtNotFound,
	)
}

func WrapExpenseNotFound(expenseID string) *EngineError {
	return NewEngineError(
		ErrCodeNotFound,
		fmt.Sprintf("Expense with ID %s not found", expenseID),
		ErrExpenseNotFound,
	)
}

func WrapValidation(err error) *EngineError {
	return NewEngineError(
		ErrCodeValidation,
		"debt input failed validation",
		err,
	)
}

func WrapOverpayment(debtID, amount, remaining string) *EngineError {
	return NewEngineError(
		ErrCodeValidation,
		fmt.Sprintf("repayment of %s exceeds remaining balance %s on debt %s", amount, remaining, debtID),
		ErrOverpayment,
	)
}

func WrapTransaction(op string, err error) *EngineError {
	return NewEngineError(
		ErrCodeTransaction,
		fmt.Sprintf("%s rolled back", op),
		err,
	)
}

func WrapComputation(err error) *EngineError {
	return NewEngineError(
		ErrCodeComputation,
		"schedule computation failed",
		err,
	)
}

func WrapDatabaseError(err error) *EngineError {
	return NewEngineError(
		ErrCodeDatabase,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *EngineError {
	return NewEngineError(
		ErrCodeCache,
		"summary cache operation failed",
		err,
	)
}

package cli

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/adiprw/fintrack/internal/domain"
)

func TestExpenseView_Overdue(t *testing.T) {
	expense := func(status string, due time.Time) *domain.LinkedExpense {
		return &domain.LinkedExpense{
			ID:      uuid.New(),
			Amount:  decimal.NewFromInt(100),
			Status:  status,
			DueDate: due,
		}
	}

	past := time.Now().UTC().Add(-48 * time.Hour)
	future := time.Now().UTC().Add(48 * time.Hour)

	assert.True(t, newExpenseView(expense(domain.ExpenseStatusPending, past)).Overdue)
	assert.False(t, newExpenseView(expense(domain.ExpenseStatusPending, future)).Overdue)

	// A settled or written-off expense is never overdue, however old.
	assert.False(t, newExpenseView(expense(domain.ExpenseStatusPaid, past)).Overdue)
	assert.False(t, newExpenseView(expense(domain.ExpenseStatusMissed, past)).Overdue)
}

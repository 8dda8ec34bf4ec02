package cli

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/google/uuid"

	"github.com/adiprw/fintrack/internal/domain"
	"github.com/adiprw/fintrack/pkg/response"
	"github.com/adiprw/fintrack/pkg/utils"
)

type expenseAddCmd struct {
	debtID string
	amount string
	due    string
}

func (*expenseAddCmd) Name() string     { return "expense-add" }
func (*expenseAddCmd) Synopsis() string { return "create a pending expense linked to a debt" }
func (*expenseAddCmd) Usage() string {
	return `fintrack expense-add -debt <debt-id> -amount <amount> -due <date>

  Creates a pending expense linked to a debt. Settling or missing the
  expense later drives the debt's ledger through expense-set.
`
}

func (c *expenseAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.debtID, "debt", "", "Debt id the expense repays.")
	f.StringVar(&c.amount, "amount", "", "Expense amount.")
	f.StringVar(&c.due, "due", "", "Due date (YYYY-MM-DD, defaults to today).")
}

func (c *expenseAddCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := NewApp()
	if err != nil {
		return fail("startup failed", err)
	}
	defer app.Close()

	debtID, err := parseID(c.debtID)
	if err != nil {
		return fail("invalid debt id", err)
	}
	amount, err := utils.ParseAmount(c.amount)
	if err != nil {
		return fail("invalid amount", err)
	}
	due, err := utils.ParseDate(c.due)
	if err != nil {
		return fail("invalid due date", err)
	}

	// Ensure the debt exists before linking anything to it.
	if _, err := app.Debts.Get(ctx, debtID); err != nil {
		return fail("could not load debt", err)
	}

	now := time.Now().UTC()
	expense := &domain.LinkedExpense{
		ID:             uuid.New(),
		Amount:         amount,
		Status:         domain.ExpenseStatusPending,
		DueDate:        due,
		LinkedItemType: domain.LinkedItemTypeDebt,
		LinkedItemID:   uuid.NullUUID{UUID: debtID, Valid: true},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := app.Expenses.Create(ctx, app.DB, expense); err != nil {
		return fail("could not create expense", err)
	}

	response.Success(os.Stdout, newExpenseView(expense))
	return subcommands.ExitSuccess
}

package cli

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/adiprw/fintrack/internal/domain"
	"github.com/adiprw/fintrack/pkg/response"
	"github.com/adiprw/fintrack/pkg/utils"
)

// expenseView decorates a linked expense with whether it sits unpaid past
// its due date.
type expenseView struct {
	*domain.LinkedExpense
	Overdue bool `json:"overdue"`
}

func newExpenseView(e *domain.LinkedExpense) expenseView {
	return expenseView{
		LinkedExpense: e,
		Overdue:       e.Status == domain.ExpenseStatusPending && utils.IsDateOverdue(e.DueDate),
	}
}

type expenseSetCmd struct {
	id     string
	status string
}

func (*expenseSetCmd) Name() string     { return "expense-set" }
func (*expenseSetCmd) Synopsis() string { return "apply an expense status transition" }
func (*expenseSetCmd) Usage() string {
	return `fintrack expense-set -id <expense-id> -status <pending|paid|missed>

  Applies a status transition to a debt-linked expense. Marking it paid
  records a repayment for its month; marking it missed records the month
  as missed without moving money; moving it back to pending reverses
  whatever the previous status wrote. Transitions are idempotent.
`
}

func (c *expenseSetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Expense id.")
	f.StringVar(&c.status, "status", "", "New status: pending, paid or missed.")
}

func (c *expenseSetCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := NewApp()
	if err != nil {
		return fail("startup failed", err)
	}
	defer app.Close()

	id, err := parseID(c.id)
	if err != nil {
		return fail("invalid expense id", err)
	}

	if err := app.Linker.ApplyStatus(ctx, id, c.status); err != nil {
		return fail("could not apply transition", err)
	}

	expense, err := app.Expenses.GetByID(ctx, app.DB, id)
	if err != nil {
		return fail("could not read back expense", err)
	}

	response.Success(os.Stdout, newExpenseView(expense))
	return subcommands.ExitSuccess
}

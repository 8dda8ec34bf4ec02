package cli

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/google/uuid"

	"github.com/adiprw/fintrack/pkg/response"
	"github.com/adiprw/fintrack/pkg/utils"
)

type repayCmd struct {
	id     string
	amount string
	date   string
	notes  string
}

func (*repayCmd) Name() string     { return "repay" }
func (*repayCmd) Synopsis() string { return "record a repayment against a debt" }
func (*repayCmd) Usage() string {
	return `fintrack repay -id <debt-id> -amount <amount> [-date <date>] [-notes <text>]

  Appends a repayment to the debt's ledger and lowers its remaining
  balance. A repayment larger than the remaining balance is rejected.
`
}

func (c *repayCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Debt id.")
	f.StringVar(&c.amount, "amount", "", "Repayment amount.")
	f.StringVar(&c.date, "date", "", "Repayment date (YYYY-MM-DD, defaults to today).")
	f.StringVar(&c.notes, "notes", "", "Free-form notes.")
}

func (c *repayCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := NewApp()
	if err != nil {
		return fail("startup failed", err)
	}
	defer app.Close()

	id, err := parseID(c.id)
	if err != nil {
		return fail("invalid debt id", err)
	}
	amount, err := utils.ParseAmount(c.amount)
	if err != nil {
		return fail("invalid amount", err)
	}
	date, err := utils.ParseDate(c.date)
	if err != nil {
		return fail("invalid date", err)
	}

	debt, err := app.Debts.Get(ctx, id)
	if err != nil {
		return fail("could not load debt", err)
	}

	if _, err := app.Debts.AddRepayment(ctx, id, amount, date, debt.Frequency, c.notes, uuid.NullUUID{}); err != nil {
		return fail("could not record repayment", err)
	}

	debt, err = app.Debts.Get(ctx, id)
	if err != nil {
		return fail("could not read back debt", err)
	}

	response.Success(os.Stdout, debt)
	return subcommands.ExitSuccess
}

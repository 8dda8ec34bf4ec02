package cli

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/adiprw/fintrack/pkg/response"
)

type payoffCmd struct {
	id string
}

func (*payoffCmd) Name() string     { return "payoff" }
func (*payoffCmd) Synopsis() string { return "settle a debt in full" }
func (*payoffCmd) Usage() string {
	return `fintrack payoff -id <debt-id>

  Settles the debt: writes a final ledger entry for the remaining
  balance, marks pending linked expenses paid and records the current
  month as paid. Safe to repeat on an already settled debt.
`
}

func (c *payoffCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Debt id.")
}

func (c *payoffCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := NewApp()
	if err != nil {
		return fail("startup failed", err)
	}
	defer app.Close()

	id, err := parseID(c.id)
	if err != nil {
		return fail("invalid debt id", err)
	}

	if err := app.Debts.MarkPaidOff(ctx, id); err != nil {
		return fail("could not settle debt", err)
	}

	debt, err := app.Debts.Get(ctx, id)
	if err != nil {
		return fail("could not read back debt", err)
	}

	response.Success(os.Stdout, debt)
	return subcommands.ExitSuccess
}

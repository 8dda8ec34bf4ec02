package cli

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/adiprw/fintrack/pkg/response"
)

type ledgerCmd struct {
	id string
}

func (*ledgerCmd) Name() string     { return "ledger" }
func (*ledgerCmd) Synopsis() string { return "show a debt's repayment ledger" }
func (*ledgerCmd) Usage() string {
	return `fintrack ledger -id <debt-id>

  Lists every repayment recorded against the debt, ordered by date.
`
}

func (c *ledgerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Debt id.")
}

func (c *ledgerCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := NewApp()
	if err != nil {
		return fail("startup failed", err)
	}
	defer app.Close()

	id, err := parseID(c.id)
	if err != nil {
		return fail("invalid debt id", err)
	}

	entries, err := app.Debts.Ledger(ctx, id)
	if err != nil {
		return fail("could not load ledger", err)
	}

	response.Success(os.Stdout, entries)
	return subcommands.ExitSuccess
}

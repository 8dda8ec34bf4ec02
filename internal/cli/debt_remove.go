package cli

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/adiprw/fintrack/pkg/response"
)

type removeCmd struct {
	id string
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "delete a debt and its history" }
func (*removeCmd) Usage() string {
	return `fintrack remove -id <debt-id>

  Deletes a debt together with its ledger entries, payment status rows
  and linked expenses, in one transaction.
`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Debt id.")
}

func (c *removeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := NewApp()
	if err != nil {
		return fail("startup failed", err)
	}
	defer app.Close()

	id, err := parseID(c.id)
	if err != nil {
		return fail("invalid debt id", err)
	}

	if err := app.Debts.Delete(ctx, id); err != nil {
		return fail("could not delete debt", err)
	}

	response.Message(os.Stdout, "debt deleted")
	return subcommands.ExitSuccess
}

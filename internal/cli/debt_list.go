package cli

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/adiprw/fintrack/pkg/response"
)

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list all tracked debts" }
func (*listCmd) Usage() string {
	return `fintrack list

  Lists every tracked debt with its remaining balance.
`
}

func (*listCmd) SetFlags(*flag.FlagSet) {}

func (*listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := NewApp()
	if err != nil {
		return fail("startup failed", err)
	}
	defer app.Close()

	debts, err := app.Debts.List(ctx)
	if err != nil {
		return fail("could not list debts", err)
	}

	response.Success(os.Stdout, debts)
	return subcommands.ExitSuccess
}

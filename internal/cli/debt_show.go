package cli

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/adiprw/fintrack/pkg/response"
)

type showCmd struct {
	id string
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show one debt" }
func (*showCmd) Usage() string {
	return `fintrack show -id <debt-id>

  Shows a single debt with its current remaining balance.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Debt id.")
}

func (c *showCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := NewApp()
	if err != nil {
		return fail("startup failed", err)
	}
	defer app.Close()

	id, err := parseID(c.id)
	if err != nil {
		return fail("invalid debt id", err)
	}

	debt, err := app.Debts.Get(ctx, id)
	if err != nil {
		return fail("could not load debt", err)
	}

	response.Success(os.Stdout, debt)
	return subcommands.ExitSuccess
}

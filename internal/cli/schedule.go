package cli

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/adiprw/fintrack/pkg/response"
)

type scheduleCmd struct {
	id string
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "compute a debt's repayment schedule" }
func (*scheduleCmd) Usage() string {
	return `fintrack schedule -id <debt-id>

  Amortizes the current remaining balance over the periods left until
  the expected payoff date. The schedule is computed fresh on every
  call, never stored.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Debt id.")
}

func (c *scheduleCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := NewApp()
	if err != nil {
		return fail("startup failed", err)
	}
	defer app.Close()

	id, err := parseID(c.id)
	if err != nil {
		return fail("invalid debt id", err)
	}

	schedule, err := app.Debts.Schedule(ctx, id)
	if err != nil {
		return fail("could not compute schedule", err)
	}

	response.Success(os.Stdout, schedule)
	return subcommands.ExitSuccess
}

package cli

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/adiprw/fintrack/pkg/response"
)

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "aggregate the debt portfolio" }
func (*summaryCmd) Usage() string {
	return `fintrack summary

  Builds the portfolio summary: total outstanding, monthly repayment
  total, debt-to-income ratio, highest-interest debt, the next upcoming
  repayment, missed payments and accrued penalties.
`
}

func (*summaryCmd) SetFlags(*flag.FlagSet) {}

func (*summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := NewApp()
	if err != nil {
		return fail("startup failed", err)
	}
	defer app.Close()

	summary, err := app.Aggregator.Summary(ctx)
	if err != nil {
		return fail("could not build summary", err)
	}

	response.Success(os.Stdout, summary)
	return subcommands.ExitSuccess
}

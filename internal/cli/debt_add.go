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

type addCmd struct {
	creditor  string
	amount    string
	rate      string
	start     string
	end       string
	frequency string
	currency  string
	notes     string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "register a new debt" }
func (*addCmd) Usage() string {
	return `fintrack add -creditor <name> -amount <total> -end <date> [options]

  Registers a debt with its full balance outstanding. The repayment
  frequency defaults to monthly; the start date defaults to today.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.creditor, "creditor", "", "Who the money is owed to.")
	f.StringVar(&c.amount, "amount", "", "Total borrowed amount.")
	f.StringVar(&c.rate, "rate", "0", "Annual interest rate in percent.")
	f.StringVar(&c.start, "start", "", "Start date (YYYY-MM-DD, defaults to today).")
	f.StringVar(&c.end, "end", "", "Expected payoff date (YYYY-MM-DD).")
	f.StringVar(&c.frequency, "frequency", "monthly", "Repayment cadence: one_time, weekly, monthly or yearly.")
	f.StringVar(&c.currency, "currency", "", "Currency code (defaults to the configured one).")
	f.StringVar(&c.notes, "notes", "", "Free-form notes.")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := NewApp()
	if err != nil {
		return fail("startup failed", err)
	}
	defer app.Close()

	amount, err := utils.ParseAmount(c.amount)
	if err != nil {
		return fail("invalid amount", err)
	}
	rate, err := utils.ParseRate(c.rate)
	if err != nil {
		return fail("invalid rate", err)
	}
	start, err := utils.ParseDate(c.start)
	if err != nil {
		return fail("invalid start date", err)
	}
	end, err := utils.ParseDate(c.end)
	if err != nil {
		return fail("invalid end date", err)
	}

	id, err := app.Debts.Create(ctx, &domain.CreateDebtRequest{
		Creditor:        c.creditor,
		TotalAmount:     amount,
		InterestRate:    rate,
		Currency:        c.currency,
		StartDate:       start,
		ExpectedEndDate: end,
		Frequency:       c.frequency,
		Notes:           c.notes,
	})
	if err != nil {
		return fail("could not register debt", err)
	}

	debt, err := app.Debts.Get(ctx, id)
	if err != nil {
		return fail("could not read back debt", err)
	}

	response.Success(os.Stdout, debt)
	return subcommands.ExitSuccess
}

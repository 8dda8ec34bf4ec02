package cli

import (
	"context"
	"flag"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"

	"github.com/adiprw/fintrack/internal/scheduler"
)

type watchCmd struct{}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "keep the summary fresh on a schedule" }
func (*watchCmd) Usage() string {
	return `fintrack watch

  Rebuilds the portfolio summary on the configured interval and keeps
  the cache warm, until interrupted.
`
}

func (*watchCmd) SetFlags(*flag.FlagSet) {}

func (*watchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := NewApp()
	if err != nil {
		return fail("startup failed", err)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	refresher := scheduler.NewRefresher(app.Aggregator, app.Config.GetRefreshInterval())
	if err := refresher.Start(ctx); err != nil {
		return fail("could not start refresher", err)
	}

	<-ctx.Done()
	slog.Info("shutting down")
	refresher.Stop()

	return subcommands.ExitSuccess
}

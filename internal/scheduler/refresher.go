package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/adiprw/fintrack/internal/service"
)

// Refresher periodically rebuilds the debt summary so the dashboard stays
// fresh between explicit refresh-after-mutation calls. It is a display
// convenience only; transactional correctness never depends on it.
type Refresher struct {
	aggregator *service.AggregatorService
	cron       *cron.Cron
	interval   time.Duration
}

func NewRefresher(aggregator *service.AggregatorService, interval time.Duration) *Refresher {
	return &Refresher{
		aggregator: aggregator,
		cron:       cron.New(),
		interval:   interval,
	}
}

// Start schedules the refresh job and runs one refresh immediately.
func (r *Refresher) Start(ctx context.Context) error {
	spec := fmt.Sprintf("@every %s", r.interval)
	_, err := r.cron.AddFunc(spec, func() {
		r.refresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule summary refresh: %w", err)
	}

	r.refresh(ctx)
	r.cron.Start()
	slog.InfoContext(ctx, "summary refresher started", "interval", r.interval)

	return nil
}

// Stop halts the schedule and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	stopCtx := r.cron.Stop()
	<-stopCtx.Done()
}

func (r *Refresher) refresh(ctx context.Context) {
	summary, err := r.aggregator.Summary(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "summary refresh failed", "error", err)
		return
	}

	slog.DebugContext(ctx, "summary refreshed",
		"total_outstanding", summary.TotalOutstanding,
		"active_debts", summary.ActiveDebts)
}

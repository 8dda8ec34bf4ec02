// Package cli implements the command line surface of the tracker.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/subcommands"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/adiprw/fintrack/internal/cache"
	"github.com/adiprw/fintrack/internal/config"
	"github.com/adiprw/fintrack/internal/repository"
	"github.com/adiprw/fintrack/internal/service"
	"github.com/adiprw/fintrack/pkg/response"
)

// Register wires every subcommand into the commander. A main package
// calls Register() and then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "debts")
	c.Register(&listCmd{}, "debts")
	c.Register(&showCmd{}, "debts")
	c.Register(&removeCmd{}, "debts")

	c.Register(&repayCmd{}, "repayments")
	c.Register(&payoffCmd{}, "repayments")
	c.Register(&ledgerCmd{}, "repayments")
	c.Register(&scheduleCmd{}, "repayments")

	c.Register(&expenseAddCmd{}, "expenses")
	c.Register(&expenseSetCmd{}, "expenses")

	c.Register(&summaryCmd{}, "reporting")
	c.Register(&watchCmd{}, "reporting")
}

// App holds the wired-up engine for the lifetime of one command.
type App struct {
	Config     *config.Config
	DB         *sqlx.DB
	Debts      *service.DebtService
	Linker     *service.LinkerService
	Aggregator *service.AggregatorService
	Expenses   repository.ExpenseRepository

	summaryCache cache.SummaryCache
}

// NewApp loads configuration and opens the store.
func NewApp() (*App, error) {
	// A local .env is optional.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	setupLogger(cfg)

	db, err := repository.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	debtRepo := repository.NewDebtRepository()
	ledgerRepo := repository.NewLedgerRepository()
	statusRepo := repository.NewPaymentStatusRepository()
	expenseRepo := repository.NewExpenseRepository()

	var summaryCache cache.SummaryCache
	if cfg.Cache.Enabled {
		summaryCache = cache.NewRedisSummaryCache(cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB)
	} else {
		summaryCache = cache.NewMemorySummaryCache()
	}

	income := service.NewStaticIncomeProvider(cfg.GetMonthlyIncome())

	return &App{
		Config:       cfg,
		DB:           db,
		Debts:        service.NewDebtService(db, debtRepo, ledgerRepo, statusRepo, expenseRepo, cfg.Business.DefaultCurrency),
		Linker:       service.NewLinkerService(db, debtRepo, ledgerRepo, statusRepo, expenseRepo),
		Aggregator:   service.NewAggregatorService(db, debtRepo, statusRepo, income, summaryCache),
		Expenses:     expenseRepo,
		summaryCache: summaryCache,
	}, nil
}

func (a *App) Close() {
	if c, ok := a.summaryCache.(*cache.RedisSummaryCache); ok {
		c.Close()
	}
	a.DB.Close()
}

func setupLogger(cfg *config.Config) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Logging.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, nil
}

// fail prints an error envelope and maps it to a non-zero exit status.
func fail(message string, err error) subcommands.ExitStatus {
	response.Error(os.Stderr, message, err)
	return subcommands.ExitFailure
}

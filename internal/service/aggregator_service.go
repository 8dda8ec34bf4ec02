package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/adiprw/fintrack/internal/cache"
	"github.com/adiprw/fintrack/internal/domain"
	"github.com/adiprw/fintrack/internal/repository"
	"github.com/adiprw/fintrack/pkg/finmath"
)

// IncomeProvider supplies the aggregated monthly income figure owned by
// the income subsystem. Only the debt-to-income ratio consumes it.
type IncomeProvider interface {
	MonthlyIncome(ctx context.Context) (decimal.Decimal, error)
}

// StaticIncomeProvider serves a fixed configured income.
type StaticIncomeProvider struct {
	income decimal.Decimal
}

func NewStaticIncomeProvider(income decimal.Decimal) *StaticIncomeProvider {
	return &StaticIncomeProvider{income: income}
}

func (p *StaticIncomeProvider) MonthlyIncome(_ context.Context) (decimal.Decimal, error) {
	return p.income, nil
}

// AggregatorService builds the read-only summary the presentation layer
// consumes. It never mutates state. A failed read is retried once, then
// degraded to the last cached summary before giving up.
type AggregatorService struct {
	db       *sqlx.DB
	debts    repository.DebtRepository
	statuses repository.PaymentStatusRepository
	income   IncomeProvider
	cache    cache.SummaryCache

	now func() time.Time
}

func NewAggregatorService(
	db *sqlx.DB,
	debts repository.DebtRepository,
	statuses repository.PaymentStatusRepository,
	income IncomeProvider,
	summaryCache cache.SummaryCache,
) *AggregatorService {
	return &AggregatorService{
		db:       db,
		debts:    debts,
		statuses: statuses,
		income:   income,
		cache:    summaryCache,
		now:      time.Now,
	}
}

// Summary builds a fresh projection, falling back to the last known
// summary when the store cannot be read twice in a row.
func (s *AggregatorService) Summary(ctx context.Context) (*domain.DebtSummary, error) {
	summary, err := s.build(ctx)
	if err != nil {
		slog.WarnContext(ctx, "summary build failed, retrying once", "error", err)
		summary, err = s.build(ctx)
	}
	if err != nil {
		if cached, ok := s.cache.Get(ctx); ok {
			slog.WarnContext(ctx, "serving last known summary", "generated_at", cached.GeneratedAt, "error", err)
			return cached, nil
		}
		return nil, err
	}

	if cacheErr := s.cache.Set(ctx, summary); cacheErr != nil {
		slog.WarnContext(ctx, "summary cache update failed", "error", cacheErr)
	}

	return summary, nil
}

func (s *AggregatorService) build(ctx context.Context) (*domain.DebtSummary, error) {
	now := s.now().UTC()

	debts, err := s.debts.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	summary := domain.EmptySummary(now)
	if len(debts) == 0 {
		return summary, nil
	}
	summary.Debts = debts

	income, err := s.income.MonthlyIncome(ctx)
	if err != nil {
		return nil, err
	}

	for _, debt := range debts {
		summary.TotalOutstanding = summary.TotalOutstanding.Add(debt.RemainingAmount)

		// First-found tiebreak on equal rates.
		if summary.HighestInterestDebt == nil || debt.InterestRate.GreaterThan(summary.HighestInterestDebt.InterestRate) {
			summary.HighestInterestDebt = debt
		}

		if debt.Active() {
			summary.ActiveDebts++

			schedule, err := finmath.Amortize(
				debt.RemainingAmount, debt.InterestRate,
				debt.StartDate, debt.ExpectedEndDate, now, debt.Frequency,
			)
			if err != nil {
				// A debt past its term still counts toward the totals, it
				// just has no upcoming payment to report.
				slog.DebugContext(ctx, "no schedule for debt", "debt_id", debt.ID, "error", err)
			} else {
				var monthly decimal.Decimal
				if debt.Frequency == finmath.OneTime {
					// A bullet payment costs its per-month share until due.
					monthly = finmath.SpreadOverMonths(schedule.PaymentAmount, now, debt.ExpectedEndDate)
				} else {
					monthly = finmath.MonthlyEquivalent(schedule.PaymentAmount, debt.Frequency)
				}
				summary.MonthlyRepaymentTotal = summary.MonthlyRepaymentTotal.Add(monthly)

				if summary.UpcomingRepayment == nil || schedule.NextPaymentDate.Before(summary.UpcomingRepayment.Date) {
					summary.UpcomingRepayment = &domain.UpcomingRepayment{
						DebtID:   debt.ID,
						Creditor: debt.Creditor,
						Date:     schedule.NextPaymentDate,
						Amount:   schedule.NextPaymentAmount,
					}
				}
			}
		}

		records, err := s.statuses.ListByDebt(ctx, s.db, debt.ID)
		if err != nil {
			return nil, err
		}
		summary.PaymentHistory = append(summary.PaymentHistory, records...)
		summary.MissedPayments += domain.CountMissed(records)

		if streak := domain.ConsecutiveMissed(records); streak > 0 {
			rate := finmath.PenaltyRate(debt.InterestRate, streak)
			penalty := finmath.TotalPenalty(debt.RemainingAmount, debt.InterestRate, rate, streak)
			summary.TotalPenalties = summary.TotalPenalties.Add(penalty)
		}
	}

	sort.Slice(summary.PaymentHistory, func(i, j int) bool {
		return summary.PaymentHistory[i].Month < summary.PaymentHistory[j].Month
	})

	if income.IsPositive() {
		summary.DebtToIncomeRatio = summary.MonthlyRepaymentTotal.Div(income).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return summary, nil
}

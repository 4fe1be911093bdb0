// Package dashboard assembles the monthly overview shown on the home screen.
package dashboard

import (
	"context"
	"errors"
	"fmt"

	"fintrack/internal/analytics"
	"fintrack/internal/cache"
	"fintrack/internal/core"
	"fintrack/internal/log"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidPeriod = errors.New("invalid period")

// Source is the read side of the guest store the dashboard needs.
type Source interface {
	Revision() uint64
	Preferences(ctx context.Context) core.Preferences
	ExpensesByMonth(ctx context.Context, month, year int) core.Page[core.Expense]
	IncomesByMonth(ctx context.Context, month, year int) core.Page[core.Income]
	CategorySummary(ctx context.Context, month, year int) []analytics.CategoryTotal
	CompletionRatio(ctx context.Context) float64
	TotalAdjustmentForMonth(ctx context.Context, year, month int) decimal.Decimal
}

type Dashboard struct {
	Month int `json:"month"`
	Year  int `json:"year"`

	// Period the income figures come from, per the income month preference.
	IncomeMonth int `json:"incomeMonth"`
	IncomeYear  int `json:"incomeYear"`

	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`

	IncomeTrend  analytics.TrendResult `json:"incomeTrend"`
	ExpenseTrend analytics.TrendResult `json:"expenseTrend"`
	BalanceTrend analytics.TrendResult `json:"balanceTrend"`

	Categories       []analytics.CategoryTotal `json:"categories"`
	Completion       float64                   `json:"completion"`
	AdjustmentsTotal decimal.Decimal           `json:"adjustmentsTotal"`
}

type totals struct {
	incomeYear, incomeMonth int
	income, expenses        decimal.Decimal
}

func (t totals) balance() decimal.Decimal {
	return t.income.Sub(t.expenses)
}

// Builder computes dashboards and memoizes them per store revision.
type Builder struct {
	src    Source
	memo   cache.Cache[Dashboard]
	logger *log.Logger
}

// NewBuilder returns a builder. A nil memo disables memoization.
func NewBuilder(src Source, memo cache.Cache[Dashboard], logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.Discard()
	}
	return &Builder{src: src, memo: memo, logger: logger.WithComponent(log.ComponentDashboard)}
}

// Build returns the dashboard of month/year compared with the month before.
func (b *Builder) Build(ctx context.Context, year, month int) (Dashboard, error) {
	if month < 1 || month > 12 || year < 1 {
		return Dashboard{}, fmt.Errorf("%w: %04d-%02d", ErrInvalidPeriod, year, month)
	}

	key := fmt.Sprintf("%d:%04d-%02d", b.src.Revision(), year, month)
	if b.memo != nil {
		if d, ok := b.memo.Get(key); ok {
			return d, nil
		}
	}

	pref := b.src.Preferences(ctx).IncomeMonthPreference
	py, pm := core.PreviousMonth(year, month)

	var (
		cur, prev  totals
		categories []analytics.CategoryTotal
		completion float64
		adjusted   decimal.Decimal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cur = b.totals(gctx, year, month, pref)
		return gctx.Err()
	})
	g.Go(func() error {
		prev = b.totals(gctx, py, pm, pref)
		return gctx.Err()
	})
	g.Go(func() error {
		categories = b.src.CategorySummary(gctx, month, year)
		completion = b.src.CompletionRatio(gctx)
		adjusted = b.src.TotalAdjustmentForMonth(gctx, year, month)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, fmt.Errorf("build dashboard %04d-%02d: %w", year, month, err)
	}

	d := Dashboard{
		Month:            month,
		Year:             year,
		IncomeMonth:      cur.incomeMonth,
		IncomeYear:       cur.incomeYear,
		Income:           cur.income,
		Expenses:         cur.expenses,
		Balance:          cur.balance(),
		IncomeTrend:      analytics.Trend(cur.income.InexactFloat64(), prev.income.InexactFloat64(), true),
		ExpenseTrend:     analytics.Trend(cur.expenses.InexactFloat64(), prev.expenses.InexactFloat64(), false),
		BalanceTrend:     analytics.Trend(cur.balance().InexactFloat64(), prev.balance().InexactFloat64(), true),
		Categories:       categories,
		Completion:       completion,
		AdjustmentsTotal: adjusted,
	}

	if b.memo != nil {
		b.memo.Set(key, d)
	}
	b.logger.DebugContext(ctx, "Dashboard built",
		log.FieldYear, year, log.FieldMonth, month, "income", d.Income.String(), "expenses", d.Expenses.String())
	return d, nil
}

// totals sums the period's income and net expenses. With the Previous
// preference a month's income is what was received the month before.
func (b *Builder) totals(ctx context.Context, year, month int, pref core.IncomeMonthPreference) totals {
	t := totals{incomeYear: year, incomeMonth: month, income: decimal.Zero, expenses: decimal.Zero}
	if pref != core.IncomeCurrent {
		t.incomeYear, t.incomeMonth = core.PreviousMonth(year, month)
	}
	for _, in := range b.src.IncomesByMonth(ctx, t.incomeMonth, t.incomeYear).Items {
		t.income = t.income.Add(in.Amount)
	}
	for _, e := range b.src.ExpensesByMonth(ctx, month, year).Items {
		t.expenses = t.expenses.Add(e.EffectiveAmount())
	}
	return t
}

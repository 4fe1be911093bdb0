// Package ports describes the call shape shared by the guest store and the
// remote API client, so callers can switch on guest.IsGuestUser without
// changing code paths.
package ports

import (
	"context"
	"time"

	"fintrack/internal/core"

	"github.com/shopspring/decimal"
)

type (
	CategoryStore interface {
		Categories(ctx context.Context) []core.Category
		ActiveCategories(ctx context.Context) []core.Category
		CreateCategory(ctx context.Context, c core.Category) (core.Category, error)
		UpdateCategory(ctx context.Context, id string, patch core.CategoryPatch) (core.Category, bool)
		DeleteCategory(ctx context.Context, id string) core.Result
	}

	ExpenseStore interface {
		CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error)
		UpdateExpense(ctx context.Context, id string, patch core.ExpensePatch) (core.Expense, bool)
		DeleteExpense(ctx context.Context, id string)
		ExpensesByMonth(ctx context.Context, month, year int) core.Page[core.Expense]
		ExpensesByDateRange(ctx context.Context, start, end time.Time) core.Page[core.Expense]
	}

	IncomeStore interface {
		CreateIncome(ctx context.Context, in core.IncomeInput) (core.Income, error)
		UpdateIncome(ctx context.Context, id string, patch core.IncomePatch) (core.Income, bool)
		DeleteIncome(ctx context.Context, id string)
		IncomesByMonth(ctx context.Context, month, year int) core.Page[core.Income]
		IncomesByDateRange(ctx context.Context, start, end time.Time) core.Page[core.Income]
	}

	AdjustmentStore interface {
		CreateAdjustment(ctx context.Context, a core.Adjustment) (core.Adjustment, error)
		UpdateAdjustment(ctx context.Context, id int64, patch core.AdjustmentPatch) (core.Adjustment, bool)
		DeleteAdjustment(ctx context.Context, id int64)
		AdjustmentsForExpense(ctx context.Context, expenseID string) []core.Adjustment
		TotalAdjustmentForExpense(ctx context.Context, expenseID string) decimal.Decimal
		TotalAdjustmentForMonth(ctx context.Context, year, month int) decimal.Decimal
	}

	// PlannedExpenseStore covers the monthly template workflow.
	PlannedExpenseStore interface {
		ActivePlannedExpenses(ctx context.Context) []core.PlannedExpense
		UpdatePlannedExpense(ctx context.Context, id string, patch core.PlannedExpensePatch) (core.PlannedExpense, bool)
		MarkAllUnpaid(ctx context.Context)
	}

	PreferencesStore interface {
		Preferences(ctx context.Context) core.Preferences
		UpdatePreferences(ctx context.Context, patch core.PreferencesPatch) core.Preferences
	}
)

package guest

import (
	"context"
	"slices"
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
)

func cloneExpenses(in []core.Expense) []core.Expense {
	out := make([]core.Expense, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}

func (r *Repository) Expenses(_ context.Context) []core.Expense {
	var out []core.Expense
	r.read(func(s *core.Snapshot) { out = cloneExpenses(s.Expenses) })
	return out
}

func (r *Repository) Expense(_ context.Context, id string) (core.Expense, bool) {
	var (
		out core.Expense
		ok  bool
	)
	r.read(func(s *core.Snapshot) {
		if i := indexOf(s.Expenses, func(e core.Expense) bool { return e.ID == id }); i >= 0 {
			out, ok = s.Expenses[i].Clone(), true
		}
	})
	return out, ok
}

// CreateExpense records a transaction. The category name is taken from the
// category table; a category id that does not resolve is rejected with
// core.ErrCategoryNotFound. Derived adjustment fields start empty.
func (r *Repository) CreateExpense(ctx context.Context, in core.Expense) (core.Expense, error) {
	if err := in.Validate(); err != nil {
		return core.Expense{}, r.invalid(ctx, core.EntityExpense, err)
	}
	in.ID = core.NewID(core.PrefixExpense, r.now())
	in.OwnerID = r.owner
	in.TotalAdjustments = nil
	in.NetAmount = nil

	var err error
	r.mutate(ctx, func(s *core.Snapshot) (core.ChangeEvent, bool) {
		var (
			name string
			ok   bool
		)
		if name, ok, err = resolveCategory(s.Categories, in.CategoryID); err != nil {
			return core.ChangeEvent{}, false
		} else if ok {
			in.CategoryName = name
		}
		s.Expenses = append(s.Expenses, in.Clone())
		return core.ChangeEvent{Entity: core.EntityExpense, Op: core.OpCreated, ID: in.ID}, true
	})
	if err != nil {
		return core.Expense{}, r.invalid(ctx, core.EntityExpense, err)
	}
	return in, nil
}

// UpdateExpense applies patch. The net amount follows a changed amount. A
// patch that leaves the expense invalid or points it at a missing category
// changes nothing and reports ok=false.
func (r *Repository) UpdateExpense(ctx context.Context, id string, patch core.ExpensePatch) (core.Expense, bool) {
	var (
		out core.Expense
		ok  bool
		err error
	)
	r.mutate(ctx, func(s *core.Snapshot) (core.ChangeEvent, bool) {
		i := indexOf(s.Expenses, func(e core.Expense) bool { return e.ID == id })
		if i < 0 {
			return core.ChangeEvent{}, false
		}
		e := s.Expenses[i].Clone()
		patch.Apply(&e)
		if patch.CategoryID != nil {
			if e.CategoryName, _, err = resolveCategory(s.Categories, e.CategoryID); err != nil {
				return core.ChangeEvent{}, false
			}
		}
		if err = e.Validate(); err != nil {
			return core.ChangeEvent{}, false
		}
		if patch.Amount != nil {
			e = analytics.NetExpense(e, s.Adjustments)
		}
		s.Expenses[i] = e
		out, ok = e.Clone(), true
		return core.ChangeEvent{Entity: core.EntityExpense, Op: core.OpUpdated, ID: id}, true
	})
	if err != nil {
		r.invalid(ctx, core.EntityExpense, err)
	}
	return out, ok
}

// DeleteExpense removes the expense together with its adjustments.
func (r *Repository) DeleteExpense(ctx context.Context, id string) {
	r.mutate(ctx, func(s *core.Snapshot) (core.ChangeEvent, bool) {
		i := indexOf(s.Expenses, func(e core.Expense) bool { return e.ID == id })
		if i < 0 {
			return core.ChangeEvent{}, false
		}
		s.Expenses = slices.Delete(s.Expenses, i, i+1)
		s.Adjustments = slices.DeleteFunc(s.Adjustments, func(a core.Adjustment) bool { return a.ExpenseID == id })
		return core.ChangeEvent{Entity: core.EntityExpense, Op: core.OpDeleted, ID: id}, true
	})
}

// ExpensesByMonth returns every expense dated in month/year.
func (r *Repository) ExpensesByMonth(_ context.Context, month, year int) core.Page[core.Expense] {
	var items []core.Expense
	r.read(func(s *core.Snapshot) {
		items = cloneExpenses(analytics.ExpensesInMonth(s.Expenses, month, year))
	})
	return core.SinglePage(items)
}

// ExpensesByDateRange returns expenses between start and end, both days
// inclusive.
func (r *Repository) ExpensesByDateRange(_ context.Context, start, end time.Time) core.Page[core.Expense] {
	var items []core.Expense
	r.read(func(s *core.Snapshot) {
		items = cloneExpenses(analytics.ExpensesInRange(s.Expenses, start, end))
	})
	return core.SinglePage(items)
}

// CategorySummary totals the expenses of month/year per category.
func (r *Repository) CategorySummary(_ context.Context, month, year int) []analytics.CategoryTotal {
	var out []analytics.CategoryTotal
	r.read(func(s *core.Snapshot) {
		out = analytics.CategorySummary(analytics.ExpensesInMonth(s.Expenses, month, year), s.Categories)
	})
	return out
}

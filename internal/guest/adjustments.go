package guest

import (
	"context"
	"slices"
	"strconv"

	"fintrack/internal/analytics"
	"fintrack/internal/core"

	"github.com/shopspring/decimal"
)

func (r *Repository) Adjustments(_ context.Context) []core.Adjustment {
	var out []core.Adjustment
	r.read(func(s *core.Snapshot) { out = slices.Clone(s.Adjustments) })
	return out
}

func (r *Repository) Adjustment(_ context.Context, id int64) (core.Adjustment, bool) {
	var (
		out core.Adjustment
		ok  bool
	)
	r.read(func(s *core.Snapshot) {
		if i := indexOf(s.Adjustments, func(a core.Adjustment) bool { return a.ID == id }); i >= 0 {
			out, ok = s.Adjustments[i], true
		}
	})
	return out, ok
}

// CreateAdjustment links a refund, cashback or reversal to an existing
// expense and recomputes that expense's net amount. Status defaults to
// Pending and Date to the expense date.
func (r *Repository) CreateAdjustment(ctx context.Context, in core.Adjustment) (core.Adjustment, error) {
	if in.Status == "" {
		in.Status = core.Pending
	}
	if err := in.Validate(); err != nil {
		return core.Adjustment{}, r.invalid(ctx, core.EntityAdjustment, err)
	}

	var err error
	r.mutate(ctx, func(s *core.Snapshot) (core.ChangeEvent, bool) {
		ei := indexOf(s.Expenses, func(e core.Expense) bool { return e.ID == in.ExpenseID })
		if ei < 0 {
			err = core.ErrUnknownExpense
			return core.ChangeEvent{}, false
		}
		parent := s.Expenses[ei]

		var maxID int64
		for _, a := range s.Adjustments {
			maxID = max(maxID, a.ID)
		}
		in.ID = maxID + 1
		in.OwnerID = r.owner
		in.CreatedAt = r.now()
		in.ExpenseNameSnapshot = parent.Name
		in.OriginalAmountSnapshot = parent.Amount
		if in.Date.IsZero() {
			in.Date = parent.Date
		}

		s.Adjustments = append(s.Adjustments, in)
		s.Expenses[ei] = analytics.NetExpense(parent, s.Adjustments)
		return core.ChangeEvent{Entity: core.EntityAdjustment, Op: core.OpCreated, ID: strconv.FormatInt(in.ID, 10)}, true
	})
	if err != nil {
		return core.Adjustment{}, r.invalid(ctx, core.EntityAdjustment, err)
	}
	return in, nil
}

// UpdateAdjustment applies patch and recomputes the parent expense. A patch
// that leaves the adjustment invalid changes nothing and reports ok=false.
func (r *Repository) UpdateAdjustment(ctx context.Context, id int64, patch core.AdjustmentPatch) (core.Adjustment, bool) {
	var (
		out core.Adjustment
		ok  bool
		err error
	)
	r.mutate(ctx, func(s *core.Snapshot) (core.ChangeEvent, bool) {
		i := indexOf(s.Adjustments, func(a core.Adjustment) bool { return a.ID == id })
		if i < 0 {
			return core.ChangeEvent{}, false
		}
		a := s.Adjustments[i]
		patch.Apply(&a)
		if err = a.Validate(); err != nil {
			return core.ChangeEvent{}, false
		}
		s.Adjustments[i] = a
		out, ok = a, true
		renet(s, out.ExpenseID)
		return core.ChangeEvent{Entity: core.EntityAdjustment, Op: core.OpUpdated, ID: strconv.FormatInt(id, 10)}, true
	})
	if err != nil {
		r.invalid(ctx, core.EntityAdjustment, err)
	}
	return out, ok
}

func (r *Repository) DeleteAdjustment(ctx context.Context, id int64) {
	r.mutate(ctx, func(s *core.Snapshot) (core.ChangeEvent, bool) {
		i := indexOf(s.Adjustments, func(a core.Adjustment) bool { return a.ID == id })
		if i < 0 {
			return core.ChangeEvent{}, false
		}
		expenseID := s.Adjustments[i].ExpenseID
		s.Adjustments = slices.Delete(s.Adjustments, i, i+1)
		renet(s, expenseID)
		return core.ChangeEvent{Entity: core.EntityAdjustment, Op: core.OpDeleted, ID: strconv.FormatInt(id, 10)}, true
	})
}

// renet recomputes the derived fields of one expense, if it still exists.
func renet(s *core.Snapshot, expenseID string) {
	if i := indexOf(s.Expenses, func(e core.Expense) bool { return e.ID == expenseID }); i >= 0 {
		s.Expenses[i] = analytics.NetExpense(s.Expenses[i], s.Adjustments)
	}
}

func (r *Repository) AdjustmentsForExpense(_ context.Context, expenseID string) []core.Adjustment {
	out := []core.Adjustment{}
	r.read(func(s *core.Snapshot) {
		for _, a := range s.Adjustments {
			if a.ExpenseID == expenseID {
				out = append(out, a)
			}
		}
	})
	return out
}

func (r *Repository) AdjustmentsByMonth(_ context.Context, year, month int) []core.Adjustment {
	var out []core.Adjustment
	r.read(func(s *core.Snapshot) { out = analytics.AdjustmentsInMonth(s.Adjustments, month, year) })
	return out
}

// TotalAdjustmentForExpense sums every adjustment of the expense, whatever
// its status.
func (r *Repository) TotalAdjustmentForExpense(_ context.Context, expenseID string) decimal.Decimal {
	var total decimal.Decimal
	r.read(func(s *core.Snapshot) { total = analytics.TotalForExpense(s.Adjustments, expenseID) })
	return total
}

func (r *Repository) TotalAdjustmentForMonth(_ context.Context, year, month int) decimal.Decimal {
	var total decimal.Decimal
	r.read(func(s *core.Snapshot) { total = analytics.TotalForMonth(s.Adjustments, year, month) })
	return total
}

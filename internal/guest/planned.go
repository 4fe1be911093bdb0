package guest

import (
	"context"
	"slices"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
)

func (r *Repository) PlannedExpenses(_ context.Context) []core.PlannedExpense {
	var out []core.PlannedExpense
	r.read(func(s *core.Snapshot) { out = slices.Clone(s.PlannedExpenses) })
	return out
}

func (r *Repository) ActivePlannedExpenses(_ context.Context) []core.PlannedExpense {
	out := []core.PlannedExpense{}
	r.read(func(s *core.Snapshot) {
		for _, p := range s.PlannedExpenses {
			if p.Status == core.Active {
				out = append(out, p)
			}
		}
	})
	return out
}

func (r *Repository) PlannedExpense(_ context.Context, id string) (core.PlannedExpense, bool) {
	var (
		out core.PlannedExpense
		ok  bool
	)
	r.read(func(s *core.Snapshot) {
		if i := indexOf(s.PlannedExpenses, func(p core.PlannedExpense) bool { return p.ID == id }); i >= 0 {
			out, ok = s.PlannedExpenses[i], true
		}
	})
	return out, ok
}

// CreatePlannedExpense stores a new template. Status defaults to Active and
// Paid to No.
func (r *Repository) CreatePlannedExpense(ctx context.Context, in core.PlannedExpense) (core.PlannedExpense, error) {
	if in.Status == "" {
		in.Status = core.Active
	}
	if in.Paid == "" {
		in.Paid = core.Unpaid
	}
	if err := in.Validate(); err != nil {
		return core.PlannedExpense{}, r.invalid(ctx, core.EntityPlannedExpense, err)
	}
	now := r.now()
	in.ID = core.NewID(core.PrefixPlannedExpense, now)
	in.OwnerID = r.owner
	in.LastUpdated = now

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
		s.PlannedExpenses = append(s.PlannedExpenses, in)
		return core.ChangeEvent{Entity: core.EntityPlannedExpense, Op: core.OpCreated, ID: in.ID}, true
	})
	if err != nil {
		return core.PlannedExpense{}, r.invalid(ctx, core.EntityPlannedExpense, err)
	}
	return in, nil
}

// UpdatePlannedExpense applies patch and stamps LastUpdated. A new category
// id refreshes the cached category name. A patch that leaves the template
// invalid or points it at a missing category changes nothing and reports
// ok=false.
func (r *Repository) UpdatePlannedExpense(ctx context.Context, id string, patch core.PlannedExpensePatch) (core.PlannedExpense, bool) {
	var (
		out core.PlannedExpense
		ok  bool
		err error
	)
	r.mutate(ctx, func(s *core.Snapshot) (core.ChangeEvent, bool) {
		i := indexOf(s.PlannedExpenses, func(p core.PlannedExpense) bool { return p.ID == id })
		if i < 0 {
			return core.ChangeEvent{}, false
		}
		p := s.PlannedExpenses[i]
		patch.Apply(&p)
		if patch.CategoryID != nil {
			if p.CategoryName, _, err = resolveCategory(s.Categories, p.CategoryID); err != nil {
				return core.ChangeEvent{}, false
			}
		}
		if err = p.Validate(); err != nil {
			return core.ChangeEvent{}, false
		}
		p.LastUpdated = r.now()
		s.PlannedExpenses[i] = p
		out, ok = p, true
		return core.ChangeEvent{Entity: core.EntityPlannedExpense, Op: core.OpUpdated, ID: id}, true
	})
	if err != nil {
		r.invalid(ctx, core.EntityPlannedExpense, err)
	}
	return out, ok
}

func (r *Repository) DeletePlannedExpense(ctx context.Context, id string) {
	r.mutate(ctx, func(s *core.Snapshot) (core.ChangeEvent, bool) {
		i := indexOf(s.PlannedExpenses, func(p core.PlannedExpense) bool { return p.ID == id })
		if i < 0 {
			return core.ChangeEvent{}, false
		}
		s.PlannedExpenses = slices.Delete(s.PlannedExpenses, i, i+1)
		return core.ChangeEvent{Entity: core.EntityPlannedExpense, Op: core.OpDeleted, ID: id}, true
	})
}

// ResetPlannedExpenses replaces every template with the default set, linked
// to the current categories by name.
func (r *Repository) ResetPlannedExpenses(ctx context.Context) []core.PlannedExpense {
	var out []core.PlannedExpense
	r.mutate(ctx, func(s *core.Snapshot) (core.ChangeEvent, bool) {
		s.PlannedExpenses = r.seed.PlannedExpenses(s.Categories)
		out = slices.Clone(s.PlannedExpenses)
		return core.ChangeEvent{Entity: core.EntityPlannedExpense, Op: core.OpReset}, true
	})
	return out
}

// MarkAllUnpaid starts a new month: every template goes back to Paid = No.
func (r *Repository) MarkAllUnpaid(ctx context.Context) {
	r.mutate(ctx, func(s *core.Snapshot) (core.ChangeEvent, bool) {
		now := r.now()
		for i := range s.PlannedExpenses {
			s.PlannedExpenses[i].Paid = core.Unpaid
			s.PlannedExpenses[i].LastUpdated = now
		}
		return core.ChangeEvent{Entity: core.EntityPlannedExpense, Op: core.OpReset}, true
	})
}

// CompletionRatio is the percentage of active templates already paid.
func (r *Repository) CompletionRatio(_ context.Context) float64 {
	var ratio float64
	r.read(func(s *core.Snapshot) { ratio = analytics.CompletionRatio(s.PlannedExpenses) })
	return ratio
}

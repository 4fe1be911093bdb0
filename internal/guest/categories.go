package guest

import (
	"context"
	"fmt"
	"slices"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

func (r *Repository) Categories(_ context.Context) []core.Category {
	var out []core.Category
	r.read(func(s *core.Snapshot) { out = slices.Clone(s.Categories) })
	return out
}

func (r *Repository) ActiveCategories(_ context.Context) []core.Category {
	out := []core.Category{}
	r.read(func(s *core.Snapshot) {
		for _, c := range s.Categories {
			if c.Status == core.Active {
				out = append(out, c)
			}
		}
	})
	return out
}

func (r *Repository) Category(_ context.Context, id string) (core.Category, bool) {
	var (
		out core.Category
		ok  bool
	)
	r.read(func(s *core.Snapshot) {
		if i := indexOf(s.Categories, func(c core.Category) bool { return c.ID == id }); i >= 0 {
			out, ok = s.Categories[i], true
		}
	})
	return out, ok
}

// CreateCategory stores a new category. An empty status means Active.
func (r *Repository) CreateCategory(ctx context.Context, in core.Category) (core.Category, error) {
	if in.Status == "" {
		in.Status = core.Active
	}
	if err := in.Validate(); err != nil {
		return core.Category{}, r.invalid(ctx, core.EntityCategory, err)
	}
	now := r.now()
	in.ID = core.NewID(core.PrefixCategory, now)
	in.OwnerID = r.owner
	in.LastUpdated = now

	r.mutate(ctx, func(s *core.Snapshot) (core.ChangeEvent, bool) {
		s.Categories = append(s.Categories, in)
		return core.ChangeEvent{Entity: core.EntityCategory, Op: core.OpCreated, ID: in.ID}, true
	})
	return in, nil
}

// UpdateCategory applies patch. A rename is copied into the name cached on
// planned expenses and expenses referencing the category. A patch that
// leaves the category invalid changes nothing and reports ok=false.
func (r *Repository) UpdateCategory(ctx context.Context, id string, patch core.CategoryPatch) (core.Category, bool) {
	var (
		out core.Category
		ok  bool
		err error
	)
	r.mutate(ctx, func(s *core.Snapshot) (core.ChangeEvent, bool) {
		i := indexOf(s.Categories, func(c core.Category) bool { return c.ID == id })
		if i < 0 {
			return core.ChangeEvent{}, false
		}
		c := s.Categories[i]
		patch.Apply(&c)
		if err = c.Validate(); err != nil {
			return core.ChangeEvent{}, false
		}
		c.LastUpdated = r.now()
		s.Categories[i] = c
		if patch.Name != nil {
			for j := range s.PlannedExpenses {
				if s.PlannedExpenses[j].CategoryID == id {
					s.PlannedExpenses[j].CategoryName = c.Name
				}
			}
			for j := range s.Expenses {
				if s.Expenses[j].CategoryID == id {
					s.Expenses[j].CategoryName = c.Name
				}
			}
		}
		out, ok = c, true
		return core.ChangeEvent{Entity: core.EntityCategory, Op: core.OpUpdated, ID: id}, true
	})
	if err != nil {
		r.invalid(ctx, core.EntityCategory, err)
	}
	return out, ok
}

// DeleteCategory removes a category nothing refers to. Deleting an unknown
// id succeeds without changing anything.
func (r *Repository) DeleteCategory(ctx context.Context, id string) core.Result {
	res := core.Result{Success: true}
	r.mutate(ctx, func(s *core.Snapshot) (core.ChangeEvent, bool) {
		i := indexOf(s.Categories, func(c core.Category) bool { return c.ID == id })
		if i < 0 {
			return core.ChangeEvent{}, false
		}
		templates := countWhere(s.PlannedExpenses, func(p core.PlannedExpense) bool { return p.CategoryID == id })
		expenses := countWhere(s.Expenses, func(e core.Expense) bool { return e.CategoryID == id })
		if templates > 0 || expenses > 0 {
			res = core.Result{
				Error: fmt.Sprintf("%s: %q has %d planned expenses and %d expenses",
					core.ErrCategoryInUse, s.Categories[i].Name, templates, expenses),
			}
			return core.ChangeEvent{}, false
		}
		s.Categories = slices.Delete(s.Categories, i, i+1)
		return core.ChangeEvent{Entity: core.EntityCategory, Op: core.OpDeleted, ID: id}, true
	})
	if !res.Success {
		r.logger.InfoContext(ctx, "Refused to delete category in use", log.FieldID, id, "reason", res.Error)
	}
	return res
}

// ResetCategories replaces every category with the default set.
func (r *Repository) ResetCategories(ctx context.Context) []core.Category {
	fresh := r.seed.Categories()
	out := slices.Clone(fresh)
	r.mutate(ctx, func(s *core.Snapshot) (core.ChangeEvent, bool) {
		s.Categories = fresh
		return core.ChangeEvent{Entity: core.EntityCategory, Op: core.OpReset}, true
	})
	return out
}

func countWhere[T any](items []T, match func(T) bool) int {
	n := 0
	for _, it := range items {
		if match(it) {
			n++
		}
	}
	return n
}

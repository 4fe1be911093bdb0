package guest

import (
	"context"
	"slices"
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
)

func (r *Repository) Incomes(_ context.Context) []core.Income {
	var out []core.Income
	r.read(func(s *core.Snapshot) { out = slices.Clone(s.Incomes) })
	return out
}

func (r *Repository) Income(_ context.Context, id string) (core.Income, bool) {
	var (
		out core.Income
		ok  bool
	)
	r.read(func(s *core.Snapshot) {
		if i := indexOf(s.Incomes, func(in core.Income) bool { return in.ID == id }); i >= 0 {
			out, ok = s.Incomes[i], true
		}
	})
	return out, ok
}

func (r *Repository) CreateIncome(ctx context.Context, in core.IncomeInput) (core.Income, error) {
	inc := core.Income{
		Source:       in.Source,
		Amount:       in.Amount,
		ReceivedDate: in.ReceivedDate,
		Month:        core.NormalizeMonth(in.Month, in.ReceivedDate),
		Year:         in.Year,
	}
	if inc.Year == 0 {
		inc.Year = in.ReceivedDate.Year()
	}
	if err := inc.Validate(); err != nil {
		return core.Income{}, r.invalid(ctx, core.EntityIncome, err)
	}
	inc.ID = core.NewID(core.PrefixIncome, r.now())
	inc.OwnerID = r.owner

	r.mutate(ctx, func(s *core.Snapshot) (core.ChangeEvent, bool) {
		s.Incomes = append(s.Incomes, inc)
		return core.ChangeEvent{Entity: core.EntityIncome, Op: core.OpCreated, ID: inc.ID}, true
	})
	return inc, nil
}

// UpdateIncome applies patch. A patch that leaves the income invalid changes
// nothing and reports ok=false.
func (r *Repository) UpdateIncome(ctx context.Context, id string, patch core.IncomePatch) (core.Income, bool) {
	var (
		out core.Income
		ok  bool
		err error
	)
	r.mutate(ctx, func(s *core.Snapshot) (core.ChangeEvent, bool) {
		i := indexOf(s.Incomes, func(in core.Income) bool { return in.ID == id })
		if i < 0 {
			return core.ChangeEvent{}, false
		}
		in := s.Incomes[i]
		patch.Apply(&in)
		if err = in.Validate(); err != nil {
			return core.ChangeEvent{}, false
		}
		s.Incomes[i] = in
		out, ok = in, true
		return core.ChangeEvent{Entity: core.EntityIncome, Op: core.OpUpdated, ID: id}, true
	})
	if err != nil {
		r.invalid(ctx, core.EntityIncome, err)
	}
	return out, ok
}

func (r *Repository) DeleteIncome(ctx context.Context, id string) {
	r.mutate(ctx, func(s *core.Snapshot) (core.ChangeEvent, bool) {
		i := indexOf(s.Incomes, func(in core.Income) bool { return in.ID == id })
		if i < 0 {
			return core.ChangeEvent{}, false
		}
		s.Incomes = slices.Delete(s.Incomes, i, i+1)
		return core.ChangeEvent{Entity: core.EntityIncome, Op: core.OpDeleted, ID: id}, true
	})
}

// IncomesByMonth matches the normalized month and year of each income.
func (r *Repository) IncomesByMonth(_ context.Context, month, year int) core.Page[core.Income] {
	var items []core.Income
	r.read(func(s *core.Snapshot) { items = analytics.IncomesInMonth(s.Incomes, month, year) })
	return core.SinglePage(items)
}

// IncomesByDateRange filters on the received date, both days inclusive.
func (r *Repository) IncomesByDateRange(_ context.Context, start, end time.Time) core.Page[core.Income] {
	var items []core.Income
	r.read(func(s *core.Snapshot) { items = analytics.IncomesInRange(s.Incomes, start, end) })
	return core.SinglePage(items)
}

// Package seed builds the demo dataset of a fresh guest session. Everything is
// relative to the injected clock so that the current, previous and older
// months always have data.
package seed

import (
	"math/rand/v2"
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/core"

	"github.com/shopspring/decimal"
)

// DefaultOwner owns seeded rows unless the generator says otherwise.
const DefaultOwner = "guest"

type sampleExpense struct {
	name     string
	category string
	base     string
}

var (
	categoryNames = []string{"Housing", "Food", "Transport", "Utilities", "Entertainment", "Health", "Shopping"}

	plannedSamples = []struct {
		name     string
		category string
		amount   string
		status   core.Status
		paid     core.PaidState
	}{
		{"Rent", "Housing", "1200", core.Active, core.Unpaid},
		{"Internet", "Utilities", "49.99", core.Active, core.Unpaid},
		{"Gym Membership", "Health", "35", core.Active, core.Unpaid},
		{"Streaming Service", "Entertainment", "15.99", core.Inactive, core.Unpaid},
		{"Bus Pass", "Transport", "40", core.Active, core.Paid},
	}

	expenseSamples = []sampleExpense{
		{"Grocery Shopping", "Food", "85.50"},
		{"Fuel", "Transport", "60"},
		{"Electricity Bill", "Utilities", "120"},
		{"Dinner Out", "Food", "45"},
		{"Movie Tickets", "Entertainment", "30"},
		{"Pharmacy", "Health", "25"},
		{"Taxi Ride", "Transport", "18"},
	}

	adjustmentSamples = []struct {
		expense string
		typ     core.AdjustmentType
		status  core.AdjustmentStatus
		amount  string
		reason  string
	}{
		{"Grocery Shopping", core.Refund, core.Completed, "12.50", "Returned damaged items"},
		{"Electricity Bill", core.Cashback, core.Completed, "6", "Card cashback"},
		{"Dinner Out", core.Refund, core.Pending, "8", "Overcharged service fee"},
	}
)

// Generator produces seed data. Now and Rand are injectable for tests; the
// random source only adds cosmetic jitter to expense amounts.
type Generator struct {
	Now   func() time.Time
	Rand  *rand.Rand
	Owner string
}

// New returns a generator backed by the wall clock.
func New() *Generator {
	return &Generator{
		Now:   time.Now,
		Rand:  rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		Owner: DefaultOwner,
	}
}

func (g *Generator) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}

func (g *Generator) owner() string {
	if g.Owner == "" {
		return DefaultOwner
	}
	return g.Owner
}

// Categories returns the static category set.
func (g *Generator) Categories() []core.Category {
	now := g.now()
	out := make([]core.Category, 0, len(categoryNames))
	for _, name := range categoryNames {
		out = append(out, core.Category{
			ID:          core.NewID(core.PrefixCategory, now),
			Name:        name,
			Status:      core.Active,
			OwnerID:     g.owner(),
			LastUpdated: now,
		})
	}
	return out
}

// PlannedExpenses returns the static template set linked to categories by
// name.
func (g *Generator) PlannedExpenses(categories []core.Category) []core.PlannedExpense {
	now := g.now()
	out := make([]core.PlannedExpense, 0, len(plannedSamples))
	for _, s := range plannedSamples {
		catID, catName := lookup(categories, s.category)
		out = append(out, core.PlannedExpense{
			ID:           core.NewID(core.PrefixPlannedExpense, now),
			OwnerID:      g.owner(),
			Name:         s.name,
			CategoryID:   catID,
			CategoryName: catName,
			Amount:       decimal.RequireFromString(s.amount),
			Status:       s.status,
			Paid:         s.paid,
			LastUpdated:  now,
		})
	}
	return out
}

// Expenses returns ten rows on today and the nine days before it, never
// earlier than the first of the current month, cycling through the samples.
func (g *Generator) Expenses(categories []core.Category) []core.Expense {
	now := g.now()
	out := make([]core.Expense, 0, 10)
	for i := 0; i < 10; i++ {
		s := expenseSamples[i%len(expenseSamples)]
		day := max(now.Day()-i, 1)
		catID, catName := lookup(categories, s.category)
		out = append(out, core.Expense{
			ID:           core.NewID(core.PrefixExpense, now),
			OwnerID:      g.owner(),
			Name:         s.name,
			CategoryID:   catID,
			CategoryName: catName,
			Amount:       decimal.RequireFromString(s.base).Add(g.jitter()),
			Date:         time.Date(now.Year(), now.Month(), day, 12, 0, 0, 0, now.Location()),
		})
	}
	return out
}

// jitter is a random amount in [0, 5.00) with cent precision.
func (g *Generator) jitter() decimal.Decimal {
	if g.Rand == nil {
		return decimal.Zero
	}
	return decimal.New(g.Rand.Int64N(500), -2)
}

// Incomes returns salary rows for the two previous months and a freelance
// payment in the middle of the previous month.
func (g *Generator) Incomes() []core.Income {
	now := g.now()
	loc := now.Location()
	py, pm := core.PreviousMonth(now.Year(), int(now.Month()))
	oy, om := core.PreviousMonth(py, pm)

	rows := []struct {
		source string
		amount string
		date   time.Time
	}{
		{"Salary", "5000", time.Date(py, time.Month(pm), 1, 9, 0, 0, 0, loc)},
		{"Salary", "5000", time.Date(oy, time.Month(om), 1, 9, 0, 0, 0, loc)},
		{"Freelance Project", "850", time.Date(py, time.Month(pm), 15, 9, 0, 0, 0, loc)},
	}

	out := make([]core.Income, 0, len(rows))
	for _, r := range rows {
		out = append(out, core.Income{
			ID:           core.NewID(core.PrefixIncome, now),
			OwnerID:      g.owner(),
			Source:       r.source,
			Amount:       decimal.RequireFromString(r.amount),
			ReceivedDate: r.date,
			Month:        int(r.date.Month()),
			Year:         r.date.Year(),
		})
	}
	return out
}

// Adjustments attaches the sample adjustments to the first expense carrying
// each sample name and updates the netting fields of expenses in place.
// Missing names are skipped.
func (g *Generator) Adjustments(expenses []core.Expense) []core.Adjustment {
	now := g.now()
	var out []core.Adjustment
	var nextID int64 = 1
	for _, s := range adjustmentSamples {
		idx := -1
		for i, e := range expenses {
			if e.Name == s.expense {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}
		e := expenses[idx]
		out = append(out, core.Adjustment{
			ID:                     nextID,
			ExpenseID:              e.ID,
			OwnerID:                g.owner(),
			Type:                   s.typ,
			Amount:                 decimal.RequireFromString(s.amount),
			Reason:                 s.reason,
			Date:                   e.Date,
			Status:                 s.status,
			CreatedAt:              now,
			ExpenseNameSnapshot:    e.Name,
			OriginalAmountSnapshot: e.Amount,
		})
		nextID++
		expenses[idx] = analytics.NetExpense(e, out)
	}
	return out
}

// Snapshot assembles a complete initialized dataset.
func (g *Generator) Snapshot(schemaVersion int) *core.Snapshot {
	categories := g.Categories()
	expenses := g.Expenses(categories)
	adjustments := g.Adjustments(expenses)
	return &core.Snapshot{
		SchemaVersion:   schemaVersion,
		Initialized:     true,
		Categories:      categories,
		PlannedExpenses: g.PlannedExpenses(categories),
		Expenses:        expenses,
		Incomes:         g.Incomes(),
		Adjustments:     adjustments,
		Preferences:     core.DefaultPreferences(),
	}
}

func lookup(categories []core.Category, name string) (id, resolved string) {
	for _, c := range categories {
		if c.Name == name {
			return c.ID, c.Name
		}
	}
	return "", name
}

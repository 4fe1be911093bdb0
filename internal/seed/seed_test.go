package seed

import (
	"math/rand/v2"
	"testing"
	"time"

	"fintrack/internal/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedGenerator(now time.Time) *Generator {
	return &Generator{
		Now:   func() time.Time { return now },
		Rand:  rand.New(rand.NewPCG(1, 2)),
		Owner: "guest",
	}
}

func TestExpensesSpanLastTenDays(t *testing.T) {
	now := time.Date(2025, time.March, 20, 10, 0, 0, 0, time.UTC)
	g := fixedGenerator(now)

	expenses := g.Expenses(g.Categories())

	require.Len(t, expenses, 10)
	for i, e := range expenses {
		assert.Equal(t, 20-i, e.Date.Day(), "row %d", i)
		assert.True(t, core.SameMonth(e.Date, 3, 2025))
		base := decimal.RequireFromString(expenseSamples[i%len(expenseSamples)].base)
		assert.True(t, e.Amount.GreaterThanOrEqual(base))
		assert.True(t, e.Amount.LessThan(base.Add(decimal.NewFromInt(5))))
		assert.NotEmpty(t, e.CategoryID)
	}
	assert.Equal(t, expenses[0].Name, expenses[7].Name)
}

func TestExpensesClampToFirstOfMonth(t *testing.T) {
	now := time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)
	g := fixedGenerator(now)

	expenses := g.Expenses(nil)

	days := make([]int, 0, len(expenses))
	for _, e := range expenses {
		days = append(days, e.Date.Day())
		assert.Equal(t, time.March, e.Date.Month())
	}
	assert.Equal(t, []int{4, 3, 2, 1, 1, 1, 1, 1, 1, 1}, days)
}

func TestIncomesCoverPreviousMonths(t *testing.T) {
	now := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	g := fixedGenerator(now)

	incomes := g.Incomes()

	require.Len(t, incomes, 3)
	assert.Equal(t, "Salary", incomes[0].Source)
	assert.Equal(t, 12, incomes[0].Month)
	assert.Equal(t, 2024, incomes[0].Year)
	assert.Equal(t, 11, incomes[1].Month)
	assert.Equal(t, 2024, incomes[1].Year)
	assert.Equal(t, 15, incomes[2].ReceivedDate.Day())
	assert.Equal(t, 12, incomes[2].Month)
}

func TestAdjustmentsNetSampleExpenses(t *testing.T) {
	now := time.Date(2025, time.March, 20, 10, 0, 0, 0, time.UTC)
	g := fixedGenerator(now)
	expenses := g.Expenses(g.Categories())

	adjs := g.Adjustments(expenses)

	require.Len(t, adjs, 3)
	assert.Equal(t, int64(1), adjs[0].ID)
	assert.Equal(t, int64(3), adjs[2].ID)
	assert.Equal(t, core.Pending, adjs[2].Status)

	grocery := expenses[0]
	require.Equal(t, "Grocery Shopping", grocery.Name)
	require.NotNil(t, grocery.NetAmount)
	assert.True(t, grocery.NetAmount.Equal(grocery.Amount.Sub(decimal.RequireFromString("12.50"))))
	assert.Equal(t, grocery.ID, adjs[0].ExpenseID)
	assert.True(t, adjs[0].OriginalAmountSnapshot.Equal(grocery.Amount))

	fuel := expenses[1]
	assert.Nil(t, fuel.NetAmount)
	assert.Nil(t, fuel.TotalAdjustments)
}

func TestAdjustmentsSkipMissingExpenses(t *testing.T) {
	g := fixedGenerator(time.Now())
	expenses := []core.Expense{{ID: "exp_1", Name: "Dinner Out", Amount: decimal.NewFromInt(40)}}

	adjs := g.Adjustments(expenses)

	require.Len(t, adjs, 1)
	assert.Equal(t, int64(1), adjs[0].ID)
	assert.Equal(t, core.Refund, adjs[0].Type)
}

func TestSnapshotIsInitialized(t *testing.T) {
	g := fixedGenerator(time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC))

	snap := g.Snapshot(3)

	assert.True(t, snap.Initialized)
	assert.Equal(t, 3, snap.SchemaVersion)
	assert.Len(t, snap.Categories, len(categoryNames))
	assert.Len(t, snap.PlannedExpenses, len(plannedSamples))
	assert.Equal(t, core.DefaultPreferences(), snap.Preferences)
	for _, p := range snap.PlannedExpenses {
		assert.NotEmpty(t, p.CategoryID, p.Name)
	}
}

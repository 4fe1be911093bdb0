package analytics

import (
	"testing"
	"time"

	"fintrack/internal/core"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
}

func TestExpensesInMonth(t *testing.T) {
	expenses := []core.Expense{
		{ID: "a", Date: day(2025, time.March, 1)},
		{ID: "b", Date: day(2025, time.March, 31)},
		{ID: "c", Date: day(2025, time.April, 1)},
		{ID: "d", Date: day(2024, time.March, 15)},
		{ID: "e", Date: day(2025, time.February, 28)},
	}

	got := ExpensesInMonth(expenses, 3, 2025)

	ids := make([]string, 0, len(got))
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"a", "b"}, ids)
	assert.NotNil(t, ExpensesInMonth(nil, 1, 2025))
}

func TestExpensesInRangeInclusive(t *testing.T) {
	expenses := []core.Expense{
		{ID: "before", Date: day(2025, time.March, 9)},
		{ID: "start", Date: day(2025, time.March, 10)},
		{ID: "end", Date: day(2025, time.March, 20)},
		{ID: "after", Date: day(2025, time.March, 21)},
	}
	start := time.Date(2025, time.March, 10, 23, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)

	got := ExpensesInRange(expenses, start, end)

	assert.Len(t, got, 2)
	assert.Equal(t, "start", got[0].ID)
	assert.Equal(t, "end", got[1].ID)
}

func TestIncomesInMonthUsesNormalizedMonth(t *testing.T) {
	incomes := []core.Income{
		{ID: "x", Month: 3, Year: 2025, ReceivedDate: day(2025, time.April, 2)},
		{ID: "y", Month: 4, Year: 2025, ReceivedDate: day(2025, time.March, 30)},
	}
	got := IncomesInMonth(incomes, 3, 2025)
	assert.Len(t, got, 1)
	assert.Equal(t, "x", got[0].ID)

	ranged := IncomesInRange(incomes, day(2025, time.March, 1), day(2025, time.March, 31))
	assert.Len(t, ranged, 1)
	assert.Equal(t, "y", ranged[0].ID)
}

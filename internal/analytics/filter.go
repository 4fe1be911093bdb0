package analytics

import (
	"time"

	"fintrack/internal/core"
)

// ExpensesInMonth keeps expenses dated in month/year.
func ExpensesInMonth(expenses []core.Expense, month, year int) []core.Expense {
	out := []core.Expense{}
	for _, e := range expenses {
		if core.SameMonth(e.Date, month, year) {
			out = append(out, e)
		}
	}
	return out
}

// ExpensesInRange keeps expenses dated between start and end, both days
// inclusive.
func ExpensesInRange(expenses []core.Expense, start, end time.Time) []core.Expense {
	out := []core.Expense{}
	for _, e := range expenses {
		if withinDays(e.Date, start, end) {
			out = append(out, e)
		}
	}
	return out
}

// IncomesInMonth matches on the normalized Month/Year fields rather than the
// received date.
func IncomesInMonth(incomes []core.Income, month, year int) []core.Income {
	out := []core.Income{}
	for _, i := range incomes {
		if i.Month == month && i.Year == year {
			out = append(out, i)
		}
	}
	return out
}

func IncomesInRange(incomes []core.Income, start, end time.Time) []core.Income {
	out := []core.Income{}
	for _, i := range incomes {
		if withinDays(i.ReceivedDate, start, end) {
			out = append(out, i)
		}
	}
	return out
}

func AdjustmentsInMonth(adjustments []core.Adjustment, month, year int) []core.Adjustment {
	out := []core.Adjustment{}
	for _, a := range adjustments {
		if core.SameMonth(a.Date, month, year) {
			out = append(out, a)
		}
	}
	return out
}

func withinDays(t, start, end time.Time) bool {
	d := dayOf(t)
	return !d.Before(dayOf(start)) && !d.After(dayOf(end))
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

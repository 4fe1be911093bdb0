package analytics

import (
	"fintrack/internal/core"

	"github.com/shopspring/decimal"
)

// TotalForExpense sums every adjustment linked to expenseID. Status is
// ignored: pending, failed and cancelled adjustments count too.
func TotalForExpense(adjustments []core.Adjustment, expenseID string) decimal.Decimal {
	total := decimal.Zero
	for _, a := range adjustments {
		if a.ExpenseID == expenseID {
			total = total.Add(a.Amount)
		}
	}
	return total
}

// TotalForMonth sums adjustments dated in the given month.
func TotalForMonth(adjustments []core.Adjustment, year, month int) decimal.Decimal {
	total := decimal.Zero
	for _, a := range adjustments {
		if core.SameMonth(a.Date, month, year) {
			total = total.Add(a.Amount)
		}
	}
	return total
}

// NetExpense returns e with TotalAdjustments and NetAmount recomputed from
// adjustments. A zero total clears both fields.
func NetExpense(e core.Expense, adjustments []core.Adjustment) core.Expense {
	total := TotalForExpense(adjustments, e.ID)
	if total.IsZero() {
		e.TotalAdjustments = nil
		e.NetAmount = nil
		return e
	}
	net := e.Amount.Sub(total)
	e.TotalAdjustments = &total
	e.NetAmount = &net
	return e
}

package guest

import "fintrack/internal/ports"

var (
	_ ports.CategoryStore       = (*Repository)(nil)
	_ ports.ExpenseStore        = (*Repository)(nil)
	_ ports.IncomeStore         = (*Repository)(nil)
	_ ports.AdjustmentStore     = (*Repository)(nil)
	_ ports.PlannedExpenseStore = (*Repository)(nil)
	_ ports.PreferencesStore    = (*Repository)(nil)
)

package core

import "time"

// Entity names carried by change events.
const (
	EntityCategory       = "category"
	EntityPlannedExpense = "planned_expense"
	EntityExpense        = "expense"
	EntityIncome         = "income"
	EntityAdjustment     = "adjustment"
	EntityPreferences    = "preferences"
)

// Change operations.
const (
	OpCreated = "created"
	OpUpdated = "updated"
	OpDeleted = "deleted"
	OpReset   = "reset"
)

// ChangeEvent describes one persisted mutation of the guest store.
type ChangeEvent struct {
	Entity    string    `json:"entity"`
	Op        string    `json:"op"`
	ID        string    `json:"id,omitempty"`
	Revision  uint64    `json:"revision"`
	Timestamp time.Time `json:"timestamp"`
}

package core

import (
	"encoding/json"
	"slices"
)

// UnmarshalJSON accepts rows written before the expense id rename, where the
// identifier lived under "expenseId". The canonical ID wins when both exist.
func (e *Expense) UnmarshalJSON(data []byte) error {
	type plain Expense
	aux := struct {
		*plain
		LegacyID string `json:"expenseId"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = aux.LegacyID
	}
	return nil
}

// Clone returns a deep copy that shares nothing mutable with s.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := *s
	out.Categories = slices.Clone(s.Categories)
	out.PlannedExpenses = slices.Clone(s.PlannedExpenses)
	out.Incomes = slices.Clone(s.Incomes)
	out.Adjustments = slices.Clone(s.Adjustments)
	out.Expenses = make([]Expense, len(s.Expenses))
	for i, e := range s.Expenses {
		out.Expenses[i] = e.Clone()
	}
	return &out
}

// Clone copies the derived adjustment pointers.
func (e Expense) Clone() Expense {
	if e.TotalAdjustments != nil {
		v := *e.TotalAdjustments
		e.TotalAdjustments = &v
	}
	if e.NetAmount != nil {
		v := *e.NetAmount
		e.NetAmount = &v
	}
	return e
}

package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Partial updates. A nil field is absent from the update and leaves the
// stored value untouched.
type (
	CategoryPatch struct {
		Name   *string
		Status *Status
	}

	PlannedExpensePatch struct {
		Name       *string
		CategoryID *string
		Amount     *decimal.Decimal
		Status     *Status
		Paid       *PaidState
	}

	ExpensePatch struct {
		Name       *string
		CategoryID *string
		Amount     *decimal.Decimal
		Date       *time.Time
	}

	IncomePatch struct {
		Source       *string
		Amount       *decimal.Decimal
		ReceivedDate *time.Time
		// Month accepts the same inputs as NormalizeMonth.
		Month *string
		Year  *int
	}

	AdjustmentPatch struct {
		Type   *AdjustmentType
		Amount *decimal.Decimal
		Reason *string
		Date   *time.Time
		Status *AdjustmentStatus
	}

	PreferencesPatch struct {
		FontSize              *string
		CurrencyCode          *string
		Theme                 *string
		IncomeMonthPreference *IncomeMonthPreference
		AmountVisibility      *AmountVisibility
	}
)

// IncomeInput is the payload for a new income. Month accepts a number or a
// full month name; empty or unknown values use the month of ReceivedDate.
// A zero Year uses the year of ReceivedDate.
type IncomeInput struct {
	Source       string
	Amount       decimal.Decimal
	ReceivedDate time.Time
	Month        string
	Year         int
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Apply overwrites the fields present in the patch.
func (p CategoryPatch) Apply(c *Category) {
	setIf(&c.Name, p.Name)
	setIf(&c.Status, p.Status)
}

// Apply overwrites the fields present in the patch. CategoryName is the
// caller's responsibility when CategoryID changes.
func (p PlannedExpensePatch) Apply(e *PlannedExpense) {
	setIf(&e.Name, p.Name)
	setIf(&e.CategoryID, p.CategoryID)
	setIf(&e.Amount, p.Amount)
	setIf(&e.Status, p.Status)
	setIf(&e.Paid, p.Paid)
}

func (p ExpensePatch) Apply(e *Expense) {
	setIf(&e.Name, p.Name)
	setIf(&e.CategoryID, p.CategoryID)
	setIf(&e.Amount, p.Amount)
	setIf(&e.Date, p.Date)
}

// Apply overwrites the fields present in the patch. A new ReceivedDate
// moves Month and Year along with it unless the patch sets them too.
func (p IncomePatch) Apply(i *Income) {
	setIf(&i.Source, p.Source)
	setIf(&i.Amount, p.Amount)
	if p.ReceivedDate != nil {
		i.ReceivedDate = *p.ReceivedDate
		i.Month = int(i.ReceivedDate.Month())
		i.Year = i.ReceivedDate.Year()
	}
	setIf(&i.Year, p.Year)
	if p.Month != nil {
		i.Month = NormalizeMonth(*p.Month, i.ReceivedDate)
	}
}

func (p AdjustmentPatch) Apply(a *Adjustment) {
	setIf(&a.Type, p.Type)
	setIf(&a.Amount, p.Amount)
	setIf(&a.Reason, p.Reason)
	setIf(&a.Date, p.Date)
	setIf(&a.Status, p.Status)
}

func (p PreferencesPatch) Apply(pr *Preferences) {
	setIf(&pr.FontSize, p.FontSize)
	setIf(&pr.CurrencyCode, p.CurrencyCode)
	setIf(&pr.Theme, p.Theme)
	setIf(&pr.IncomeMonthPreference, p.IncomeMonthPreference)
	setIf(&pr.AmountVisibility, p.AmountVisibility)
}

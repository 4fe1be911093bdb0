package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Active   Status = "Active"
	Inactive Status = "Inactive"

	Paid   PaidState = "Yes"
	Unpaid PaidState = "No"

	Refund   AdjustmentType = "Refund"
	Cashback AdjustmentType = "Cashback"
	Reversal AdjustmentType = "Reversal"

	Pending   AdjustmentStatus = "Pending"
	Completed AdjustmentStatus = "Completed"
	Failed    AdjustmentStatus = "Failed"
	Cancelled AdjustmentStatus = "Cancelled"

	IncomePrevious IncomeMonthPreference = "Previous"
	IncomeCurrent  IncomeMonthPreference = "Current"

	ShowAmounts AmountVisibility = "Show"
	HideAmounts AmountVisibility = "Hide"
)

type (
	Status                string
	PaidState             string
	AdjustmentType        string
	AdjustmentStatus      string
	IncomeMonthPreference string
	AmountVisibility      string

	Category struct {
		ID          string    `json:"id"`
		Name        string    `json:"name"`
		Status      Status    `json:"status"`
		OwnerID     string    `json:"ownerId"`
		LastUpdated time.Time `json:"lastUpdated"`
	}

	// PlannedExpense is a recurring expected expense template, distinct from a
	// recorded Expense.
	PlannedExpense struct {
		ID           string          `json:"id"`
		OwnerID      string          `json:"ownerId"`
		Name         string          `json:"name"`
		CategoryID   string          `json:"categoryId"`
		CategoryName string          `json:"categoryName"` // cached from CategoryID
		Amount       decimal.Decimal `json:"amount"`
		Status       Status          `json:"status"`
		Paid         PaidState       `json:"paid"`
		LastUpdated  time.Time       `json:"lastUpdated"`
	}

	Expense struct {
		ID           string          `json:"id"`
		OwnerID      string          `json:"ownerId"`
		Name         string          `json:"name"`
		CategoryID   string          `json:"categoryId"`
		CategoryName string          `json:"categoryName"` // cached from CategoryID
		Amount       decimal.Decimal `json:"amount"`
		Date         time.Time       `json:"date"`

		// Derived from linked adjustments; nil when there are none.
		TotalAdjustments *decimal.Decimal `json:"totalAdjustments,omitempty"`
		NetAmount        *decimal.Decimal `json:"netAmount,omitempty"`
	}

	Income struct {
		ID           string          `json:"id"`
		OwnerID      string          `json:"ownerId"`
		Source       string          `json:"source"`
		Amount       decimal.Decimal `json:"amount"`
		ReceivedDate time.Time       `json:"receivedDate"`
		Month        int             `json:"month"` // 1-12
		Year         int             `json:"year"`
	}

	Adjustment struct {
		ID                     int64            `json:"id"`
		ExpenseID              string           `json:"expenseId"`
		OwnerID                string           `json:"ownerId"`
		Type                   AdjustmentType   `json:"type"`
		Amount                 decimal.Decimal  `json:"amount"`
		Reason                 string           `json:"reason,omitempty"`
		Date                   time.Time        `json:"date"`
		Status                 AdjustmentStatus `json:"status"`
		CreatedAt              time.Time        `json:"createdAt"`
		ExpenseNameSnapshot    string           `json:"expenseNameSnapshot"`
		OriginalAmountSnapshot decimal.Decimal  `json:"originalAmountSnapshot"`
	}

	Preferences struct {
		FontSize              string                `json:"fontSize"`
		CurrencyCode          string                `json:"currencyCode"`
		Theme                 string                `json:"theme"`
		IncomeMonthPreference IncomeMonthPreference `json:"incomeMonthPreference"`
		AmountVisibility      AmountVisibility      `json:"amountVisibility"`
	}

	// Snapshot is the serializable aggregate persisted by the guest store.
	Snapshot struct {
		SchemaVersion   int              `json:"schemaVersion"`
		Initialized     bool             `json:"initialized"`
		Categories      []Category       `json:"categories"`
		PlannedExpenses []PlannedExpense `json:"plannedExpenses"`
		Expenses        []Expense        `json:"expenses"`
		Incomes         []Income         `json:"incomes"`
		Adjustments     []Adjustment     `json:"adjustments"`
		Preferences     Preferences      `json:"preferences"`
	}

	// Result reports the outcome of operations that fail without an error value.
	Result struct {
		Success bool   `json:"success"`
		Error   string `json:"error,omitempty"`
	}
)

var (
	ErrEmptyName        = errors.New("empty name")
	ErrEmptySource      = errors.New("empty income source")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidType      = errors.New("invalid adjustment type")
	ErrUnknownExpense   = errors.New("unknown expense")
	ErrCategoryInUse    = errors.New("category is in use by planned expenses or expenses")
	ErrCategoryNotFound = errors.New("category not found")
)

func (s Status) Valid() bool {
	return s == Active || s == Inactive
}

func (p PaidState) Valid() bool {
	return p == Paid || p == Unpaid
}

func (t AdjustmentType) Valid() bool {
	switch t {
	case Refund, Cashback, Reversal:
		return true
	}
	return false
}

func (s AdjustmentStatus) Valid() bool {
	switch s {
	case Pending, Completed, Failed, Cancelled:
		return true
	}
	return false
}

func (p IncomeMonthPreference) Valid() bool {
	return p == IncomePrevious || p == IncomeCurrent
}

func (v AmountVisibility) Valid() bool {
	return v == ShowAmounts || v == HideAmounts
}

func validName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if len(name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	return nil
}

func validAmount(d decimal.Decimal) error {
	if !d.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

func (c Category) Validate() error {
	if err := validName(c.Name); err != nil {
		return err
	}
	if !c.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func (p PlannedExpense) Validate() error {
	if err := validName(p.Name); err != nil {
		return err
	}
	if err := validAmount(p.Amount); err != nil {
		return err
	}
	if !p.Status.Valid() {
		return ErrInvalidStatus
	}
	if !p.Paid.Valid() {
		return errors.New("invalid paid state")
	}
	return nil
}

func (e Expense) Validate() error {
	if err := validName(e.Name); err != nil {
		return err
	}
	if err := validAmount(e.Amount); err != nil {
		return err
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// EffectiveAmount is the net amount when adjustments exist, the original
// amount otherwise.
func (e Expense) EffectiveAmount() decimal.Decimal {
	if e.NetAmount != nil {
		return *e.NetAmount
	}
	return e.Amount
}

func (i Income) Validate() error {
	if strings.TrimSpace(i.Source) == "" {
		return ErrEmptySource
	}
	if err := validAmount(i.Amount); err != nil {
		return err
	}
	if i.ReceivedDate.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (a Adjustment) Validate() error {
	if strings.TrimSpace(a.ExpenseID) == "" {
		return ErrUnknownExpense
	}
	if !a.Type.Valid() {
		return ErrInvalidType
	}
	if err := validAmount(a.Amount); err != nil {
		return err
	}
	if !a.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func (p Preferences) Validate() error {
	if !p.IncomeMonthPreference.Valid() {
		return errors.New("invalid income month preference")
	}
	if !p.AmountVisibility.Valid() {
		return errors.New("invalid amount visibility")
	}
	return nil
}

// DefaultPreferences are applied to a fresh guest session.
func DefaultPreferences() Preferences {
	return Preferences{
		FontSize:              "medium",
		CurrencyCode:          "USD",
		Theme:                 "light",
		IncomeMonthPreference: IncomePrevious,
		AmountVisibility:      ShowAmounts,
	}
}

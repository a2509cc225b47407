package models

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/types"
)

// Budget is a recurring spending limit for a category.
//
// The spend measured against the limit is always recomputed live from the
// transactions in the budget's current window, so a budget does not store a
// spent counter. LastReset only records when the budget last rolled over
// into a new window.
type Budget struct {
	DefaultModel
	CategoryID uuid.UUID       `gorm:"uniqueIndex:budget_category_interval"`
	Category   Category        `json:"-"`
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Interval   types.Interval  `gorm:"uniqueIndex:budget_category_interval"`
	LastReset  *time.Time
}

var (
	ErrBudgetNotUnique      = errors.New("there already is a budget for this category and interval")
	ErrBudgetAmountNegative = errors.New("budget amounts must not be negative")
)

// BudgetStatus is the three-level severity classification of a budget.
type BudgetStatus string

const (
	BudgetStatusGood    BudgetStatus = "good"
	BudgetStatusWarning BudgetStatus = "warning"
	BudgetStatusDanger  BudgetStatus = "danger"
)

// Reconciliation holds the derived values of a budget for one window.
type Reconciliation struct {
	Spent        decimal.Decimal `json:"spent" example:"133.70"`
	Remaining    decimal.Decimal `json:"remaining" example:"366.30"`
	Percentage   decimal.Decimal `json:"percentage" example:"26.74"` // Display percentage, clamped to [0, 100]
	IsOverBudget bool            `json:"isOverBudget" example:"false"`
	Status       BudgetStatus    `json:"status" example:"good"`
}

var hundred = decimal.NewFromInt(100)

// Reconcile derives the spending state of a limit from the spent amount.
//
// The percentage is clamped to 100 for display, IsOverBudget is computed
// from the unclamped values. The status thresholds read the clamped
// percentage, so a budget at 95% and one at 500% both classify as danger.
func Reconcile(amount, spent decimal.Decimal) Reconciliation {
	percentage := decimal.Zero
	if amount.IsPositive() {
		percentage = decimal.Min(hundred, spent.Div(amount).Mul(hundred))
	}

	status := BudgetStatusGood
	switch {
	case percentage.GreaterThan(decimal.NewFromInt(90)):
		status = BudgetStatusDanger
	case percentage.GreaterThan(decimal.NewFromInt(75)):
		status = BudgetStatusWarning
	}

	return Reconciliation{
		Spent:        spent,
		Remaining:    amount.Sub(spent),
		Percentage:   percentage,
		IsOverBudget: spent.GreaterThan(amount),
		Status:       status,
	}
}

// BeforeSave validates the budget
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	if b.Amount.IsNegative() {
		return ErrBudgetAmountNegative
	}

	if !b.Interval.Valid() {
		return types.ErrInvalidInterval
	}

	return nil
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	_ = b.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Budget)
	return b.checkIntegrity(tx, *toSave)
}

func (b *Budget) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("CategoryID") {
		toSave := tx.Statement.Dest.(Budget)
		return b.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (b *Budget) checkIntegrity(tx *gorm.DB, toSave Budget) error {
	return tx.First(&Category{}, toSave.CategoryID).Error
}

// Window returns the budget's current window relative to now.
func (b Budget) Window(now time.Time) (types.Window, error) {
	return types.CurrentWindow(b.Interval, now)
}

// Spent returns the amount spent in the budget's window containing now.
// Only expense transactions count, transfers never do.
func (b Budget) Spent(db *gorm.DB, now time.Time) (decimal.Decimal, error) {
	window, err := b.Window(now)
	if err != nil {
		return decimal.Zero, err
	}

	return ExpenseSum(db, b.CategoryID, window)
}

// Reconciled computes the budget's reconciliation for the window
// containing now.
func (b Budget) Reconciled(db *gorm.DB, now time.Time) (Reconciliation, error) {
	spent, err := b.Spent(db, now)
	if err != nil {
		return Reconciliation{}, err
	}

	return Reconcile(b.Amount, spent), nil
}

// CheckReset advances LastReset to now when a new window has begun since
// the budget was last reset. It reports whether the budget was updated.
//
// The bump is the only observable effect: spend is recomputed live from
// transactions, so there is no counter to clear. It prevents redundant
// rewrites and signals the new window to anything watching the field.
func (b *Budget) CheckReset(db *gorm.DB, now time.Time) (bool, error) {
	lastReset := b.CreatedAt
	if b.LastReset != nil {
		lastReset = *b.LastReset
	}

	window, err := b.Window(now)
	if err != nil {
		return false, err
	}

	if !lastReset.Before(window.Start) {
		return false, nil
	}

	err = db.Model(b).Update("last_reset", now.In(time.UTC)).Error
	if err != nil {
		return false, err
	}

	return true, nil
}

// ResetStaleBudgets runs CheckReset on every budget and returns how many
// were advanced into a new window.
//
// Failures for single budgets are logged and skipped so that one broken
// budget cannot block the sweep. There is no atomicity across budgets, a
// partial sweep is picked up by the next run.
func ResetStaleBudgets(db *gorm.DB, now time.Time) (int, error) {
	var budgets []Budget
	err := db.Find(&budgets).Error
	if err != nil {
		return 0, err
	}

	var reset int
	for i := range budgets {
		ok, err := budgets[i].CheckReset(db, now)
		if err != nil {
			log.Error().Err(err).Str("budget", budgets[i].ID.String()).Msg("budget reset failed")
			continue
		}

		if ok {
			reset++
		}
	}

	return reset, nil
}

// Returns all budgets on this instance for export
func (Budget) Export() (json.RawMessage, error) {
	var budgets []Budget
	err := DB.Unscoped().Where(&Budget{}).Find(&budgets).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&budgets)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}

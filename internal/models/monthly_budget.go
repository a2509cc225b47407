package models

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/types"
)

// MonthlyBudget is a concrete budget line for one category in one calendar
// month, materialized from the category's default budget amount.
//
// Its derived values are always computed against the fixed calendar month,
// never against the rolling window of Budget. Keep the two period models
// apart.
type MonthlyBudget struct {
	Timestamps
	CategoryID    uuid.UUID       `gorm:"primaryKey"`
	Category      Category        `json:"-"`
	Month         types.Month     `gorm:"primaryKey"`
	PlannedAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

var (
	ErrMonthlyBudgetMonthNotUnique  = errors.New("you can not create multiple monthly budgets for the same category and month")
	ErrMonthlyBudgetAmountNegative  = errors.New("planned amounts must not be negative")
	ErrMonthlyBudgetsAlreadyPresent = errors.New("monthly budgets for this month already exist")
	ErrNoBudgetTemplates            = errors.New("no expense category has a default budget amount set")
)

// BeforeSave validates the monthly budget
func (m *MonthlyBudget) BeforeSave(_ *gorm.DB) error {
	if m.PlannedAmount.IsNegative() {
		return ErrMonthlyBudgetAmountNegative
	}

	return nil
}

func (m *MonthlyBudget) BeforeCreate(tx *gorm.DB) error {
	return tx.First(&Category{}, m.CategoryID).Error
}

// FixedWindow returns the calendar month's window with inclusive bounds.
func (m MonthlyBudget) FixedWindow() types.Window {
	return types.Window{
		Start: m.Month.FirstDay(),
		End:   m.Month.LastDayEnd(),
	}
}

// Reconciled computes the actual spend over the calendar month and derives
// remaining, progress percentage and status from it.
func (m MonthlyBudget) Reconciled(db *gorm.DB) (Reconciliation, error) {
	spent, err := ExpenseSum(db, m.CategoryID, m.FixedWindow())
	if err != nil {
		return Reconciliation{}, err
	}

	return Reconcile(m.PlannedAmount, spent), nil
}

// MonthlyBudgetsExist reports whether at least one monthly budget exists
// for the month.
func MonthlyBudgetsExist(db *gorm.DB, month types.Month) (bool, error) {
	var count int64
	err := db.Model(&MonthlyBudget{}).Where("month = ?", month).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// MaterializeMonthlyBudgets creates one monthly budget for every expense
// category with a default budget amount, planned at that amount.
//
// The whole fan-out happens in one database transaction: a month is either
// fully materialized or not at all. Months that already have monthly
// budgets are rejected so a period can not be materialized twice.
func MaterializeMonthlyBudgets(db *gorm.DB, month types.Month) (int, error) {
	exists, err := MonthlyBudgetsExist(db, month)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrMonthlyBudgetsAlreadyPresent
	}

	var templates []Category
	err = db.
		Where("type = ?", CategoryTypeExpense).
		Where("default_budget_amount IS NOT NULL").
		Find(&templates).Error
	if err != nil {
		return 0, err
	}

	if len(templates) == 0 {
		return 0, ErrNoBudgetTemplates
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, category := range templates {
			budget := MonthlyBudget{
				CategoryID:    category.ID,
				Month:         month,
				PlannedAmount: *category.DefaultBudgetAmount,
			}

			if err := tx.Create(&budget).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(templates), nil
}

// Returns all monthly budgets on this instance for export
func (MonthlyBudget) Export() (json.RawMessage, error) {
	var monthlyBudgets []MonthlyBudget
	err := DB.Unscoped().Where(&MonthlyBudget{}).Find(&monthlyBudgets).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&monthlyBudgets)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}

package models_test

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
)

func (suite *TestSuiteStandard) TestReconcile() {
	tests := []struct {
		name         string
		amount       float64
		spent        float64
		percentage   float64
		isOverBudget bool
		status       models.BudgetStatus
	}{
		{"Nothing spent", 500, 0, 0, false, models.BudgetStatusGood},
		{"Below warning threshold", 500, 375, 75, false, models.BudgetStatusGood},
		{"Warning threshold exceeded", 500, 380, 76, false, models.BudgetStatusWarning},
		{"Danger threshold boundary", 500, 450, 90, false, models.BudgetStatusWarning},
		{"Danger threshold exceeded", 1000000, 950000, 95, false, models.BudgetStatusDanger},
		{"Over budget clamps percentage", 500000, 600000, 100, true, models.BudgetStatusDanger},
		{"Exactly on budget", 500, 500, 100, false, models.BudgetStatusDanger},
		{"Zero amount", 0, 100, 0, true, models.BudgetStatusGood},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			reconciliation := models.Reconcile(decimal.NewFromFloat(tt.amount), decimal.NewFromFloat(tt.spent))

			requireEqualDecimal(suite.T(), decimal.NewFromFloat(tt.spent), reconciliation.Spent)
			requireEqualDecimal(suite.T(), decimal.NewFromFloat(tt.amount-tt.spent), reconciliation.Remaining)
			requireEqualDecimal(suite.T(), decimal.NewFromFloat(tt.percentage), reconciliation.Percentage)
			suite.Assert().Equal(tt.isOverBudget, reconciliation.IsOverBudget)
			suite.Assert().Equal(tt.status, reconciliation.Status)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetAmountNegative() {
	category := suite.createTestCategory(models.Category{})

	err := models.DB.Save(&models.Budget{
		CategoryID: category.ID,
		Interval:   types.IntervalMonthly,
		Amount:     decimal.NewFromFloat(-10),
	}).Error

	suite.Assert().ErrorIs(err, models.ErrBudgetAmountNegative)
}

func (suite *TestSuiteStandard) TestBudgetUniquePerCategoryAndInterval() {
	budget := suite.createTestBudget(models.Budget{Amount: decimal.NewFromFloat(100)})

	err := models.DB.Create(&models.Budget{
		CategoryID: budget.CategoryID,
		Interval:   budget.Interval,
		Amount:     decimal.NewFromFloat(200),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrBudgetNotUnique)

	// The same category with a different interval is fine
	err = models.DB.Create(&models.Budget{
		CategoryID: budget.CategoryID,
		Interval:   types.IntervalWeekly,
		Amount:     decimal.NewFromFloat(50),
	}).Error
	suite.Assert().Nil(err)
}

func (suite *TestSuiteStandard) TestBudgetCategoryMustExist() {
	err := models.DB.Create(&models.Budget{
		CategoryID: uuid.New(),
		Interval:   types.IntervalMonthly,
		Amount:     decimal.NewFromFloat(100),
	}).Error

	suite.Assert().NotNil(err)
}

func (suite *TestSuiteStandard) TestBudgetSpentOnlyCurrentWindow() {
	category := suite.createTestCategory(models.Category{})
	budget := suite.createTestBudget(models.Budget{
		CategoryID: category.ID,
		Amount:     decimal.NewFromFloat(500),
	})

	now := date(2024, 3, 15)

	// In the current month
	_ = suite.createTestTransaction(models.Transaction{
		CategoryID: &category.ID,
		Amount:     decimal.NewFromFloat(120),
		Date:       date(2024, 3, 2),
	})

	// Before the current month, must not count
	_ = suite.createTestTransaction(models.Transaction{
		CategoryID: &category.ID,
		Amount:     decimal.NewFromFloat(999),
		Date:       date(2024, 2, 28),
	})

	// Income in the current month, must not count towards spending
	_ = suite.createTestTransaction(models.Transaction{
		CategoryID: &category.ID,
		Type:       models.TransactionTypeIncome,
		Amount:     decimal.NewFromFloat(2000),
		Date:       date(2024, 3, 3),
	})

	spent, err := budget.Spent(models.DB, now)
	suite.Require().Nil(err)
	requireEqualDecimal(suite.T(), decimal.NewFromFloat(120), spent)

	reconciliation, err := budget.Reconciled(models.DB, now)
	suite.Require().Nil(err)
	requireEqualDecimal(suite.T(), decimal.NewFromFloat(380), reconciliation.Remaining)
	suite.Assert().Equal(models.BudgetStatusGood, reconciliation.Status)
	suite.Assert().False(reconciliation.IsOverBudget)
}

func (suite *TestSuiteStandard) TestBudgetWeeklySpent() {
	category := suite.createTestCategory(models.Category{})
	budget := suite.createTestBudget(models.Budget{
		CategoryID: category.ID,
		Interval:   types.IntervalWeekly,
		Amount:     decimal.NewFromFloat(100),
	})

	// 2024-03-15 is a Friday, its week runs Monday 2024-03-11 to Sunday 2024-03-17
	now := date(2024, 3, 15)

	_ = suite.createTestTransaction(models.Transaction{
		CategoryID: &category.ID,
		Amount:     decimal.NewFromFloat(30),
		Date:       date(2024, 3, 11),
	})

	// Sunday of the same week still counts
	_ = suite.createTestTransaction(models.Transaction{
		CategoryID: &category.ID,
		Amount:     decimal.NewFromFloat(20),
		Date:       date(2024, 3, 17),
	})

	// Previous week
	_ = suite.createTestTransaction(models.Transaction{
		CategoryID: &category.ID,
		Amount:     decimal.NewFromFloat(50),
		Date:       date(2024, 3, 10),
	})

	spent, err := budget.Spent(models.DB, now)
	suite.Require().Nil(err)
	requireEqualDecimal(suite.T(), decimal.NewFromFloat(50), spent)
}

func (suite *TestSuiteStandard) TestBudgetCheckReset() {
	budget := suite.createTestBudget(models.Budget{Amount: decimal.NewFromFloat(100)})

	// The budget was created just now, the current window has not rolled over
	reset, err := budget.CheckReset(models.DB, time.Now().UTC())
	suite.Require().Nil(err)
	suite.Assert().False(reset)
	suite.Assert().Nil(budget.LastReset)

	// Pretend the last reset happened in the previous month
	lastMonth := time.Now().UTC().AddDate(0, -1, 0)
	err = models.DB.Model(&budget).Update("last_reset", &lastMonth).Error
	suite.Require().Nil(err)

	// Point LastReset at a copy: gorm's write-back in CheckReset assigns
	// through the existing pointer, which must not mutate lastMonth itself.
	lastReset := lastMonth
	budget.LastReset = &lastReset

	now := time.Now().UTC()
	reset, err = budget.CheckReset(models.DB, now)
	suite.Require().Nil(err)
	suite.Assert().True(reset)
	suite.Require().NotNil(budget.LastReset)
	suite.Assert().True(budget.LastReset.After(lastMonth))
}

func (suite *TestSuiteStandard) TestResetStaleBudgets() {
	stale := suite.createTestBudget(models.Budget{Amount: decimal.NewFromFloat(100)})
	fresh := suite.createTestBudget(models.Budget{Amount: decimal.NewFromFloat(200)})

	lastMonth := time.Now().UTC().AddDate(0, -1, 0)
	err := models.DB.Model(&stale).Update("last_reset", &lastMonth).Error
	suite.Require().Nil(err)

	now := time.Now().UTC()
	err = models.DB.Model(&fresh).Update("last_reset", &now).Error
	suite.Require().Nil(err)

	count, err := models.ResetStaleBudgets(models.DB, time.Now().UTC())
	suite.Require().Nil(err)
	suite.Assert().Equal(1, count)

	var reloaded models.Budget
	suite.Require().Nil(models.DB.First(&reloaded, "id = ?", stale.ID).Error)
	suite.Require().NotNil(reloaded.LastReset)
	suite.Assert().True(reloaded.LastReset.After(lastMonth))
}

func (suite *TestSuiteStandard) TestBudgetExport() {
	_ = suite.createTestBudget(models.Budget{Amount: decimal.NewFromFloat(100)})
	_ = suite.createTestBudget(models.Budget{Amount: decimal.NewFromFloat(200)})

	raw, err := models.Budget{}.Export()
	suite.Require().Nil(err)

	var budgets []models.Budget
	suite.Require().Nil(json.Unmarshal(raw, &budgets))
	suite.Assert().Len(budgets, 2)
}

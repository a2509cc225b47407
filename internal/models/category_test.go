package models_test

import (
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestCategoryTypeInvalid() {
	err := models.DB.Save(&models.Category{
		Name: "Invalid type",
		Type: "savings",
	}).Error

	suite.Assert().ErrorIs(err, models.ErrCategoryTypeInvalid)
}

func (suite *TestSuiteStandard) TestCategoryNameNotUnique() {
	_ = suite.createTestCategory(models.Category{Name: "Groceries"})

	err := models.DB.Create(&models.Category{
		Name: "Groceries",
		Type: models.CategoryTypeExpense,
	}).Error

	suite.Assert().ErrorIs(err, models.ErrCategoryNameNotUnique)
}

func (suite *TestSuiteStandard) TestCategoryTrimsWhitespace() {
	category := suite.createTestCategory(models.Category{Name: "  Dining Out  "})

	suite.Assert().Equal("Dining Out", category.Name)
}

func (suite *TestSuiteStandard) TestCategoryDefaultBudgetAmountNegative() {
	amount := decimal.NewFromFloat(-300)

	err := models.DB.Save(&models.Category{
		Name:                "Negative default",
		Type:                models.CategoryTypeExpense,
		DefaultBudgetAmount: &amount,
	}).Error

	suite.Assert().ErrorIs(err, models.ErrCategoryAmountNegative)
}

func (suite *TestSuiteStandard) TestCategoryDeleteBlockedWhenInUse() {
	category := suite.createTestCategory(models.Category{})
	_ = suite.createTestTransaction(models.Transaction{
		CategoryID: &category.ID,
		Amount:     decimal.NewFromFloat(10),
	})

	err := models.DB.Delete(&category).Error
	suite.Assert().ErrorIs(err, models.ErrCategoryInUse)

	// A category only referenced by a budget is also protected
	budgeted := suite.createTestCategory(models.Category{})
	_ = suite.createTestBudget(models.Budget{CategoryID: budgeted.ID, Amount: decimal.NewFromFloat(100)})

	err = models.DB.Delete(&budgeted).Error
	suite.Assert().ErrorIs(err, models.ErrCategoryInUse)

	// An unused category deletes fine
	unused := suite.createTestCategory(models.Category{})
	suite.Assert().Nil(models.DB.Delete(&unused).Error)
}

func (suite *TestSuiteStandard) TestCategoryExport() {
	_ = suite.createTestCategory(models.Category{})
	_ = suite.createTestCategory(models.Category{Type: models.CategoryTypeIncome})

	raw, err := models.Category{}.Export()
	suite.Require().Nil(err)
	suite.Assert().NotEmpty(raw)
}

package models_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
)

func (suite *TestSuiteStandard) TestRecurringTypeInvalid() {
	category := suite.createTestCategory(models.Category{})

	err := models.DB.Save(&models.RecurringTransaction{
		Type:       models.TransactionTypeTransfer,
		Amount:     decimal.NewFromFloat(10),
		Frequency:  types.FrequencyMonthly,
		StartDate:  time.Now(),
		CategoryID: &category.ID,
	}).Error

	suite.Assert().ErrorIs(err, models.ErrRecurringTypeInvalid)
}

func (suite *TestSuiteStandard) TestRecurringNextDueDateDefaultsToStart() {
	start := date(2024, 5, 1)
	recurring := suite.createTestRecurringTransaction(models.RecurringTransaction{
		StartDate: start,
	})

	suite.Assert().True(recurring.NextDueDate.Equal(start))
}

func (suite *TestSuiteStandard) TestRecurringExpired() {
	end := date(2024, 1, 31)
	recurring := suite.createTestRecurringTransaction(models.RecurringTransaction{
		StartDate:   date(2024, 1, 1),
		NextDueDate: date(2024, 2, 1),
		EndDate:     &end,
	})

	suite.Assert().True(recurring.Expired())
}

func (suite *TestSuiteStandard) TestGenerateDueCreatesBackfill() {
	account := suite.createTestAccount(models.Account{})
	recurring := suite.createTestRecurringTransaction(models.RecurringTransaction{
		Description: "Netflix",
		Amount:      decimal.NewFromFloat(12.99),
		Frequency:   types.FrequencyMonthly,
		StartDate:   date(2024, 1, 15),
		AccountID:   &account.ID,
	})

	// Three occurrences are due: January, February and March 15
	count, err := recurring.GenerateDue(models.DB, date(2024, 3, 20))
	suite.Require().Nil(err)
	suite.Assert().Equal(3, count)

	var transactions []models.Transaction
	suite.Require().Nil(models.DB.Where("description = ?", "Netflix").Order("date ASC").Find(&transactions).Error)
	suite.Require().Len(transactions, 3)
	suite.Assert().True(transactions[0].Date.Equal(date(2024, 1, 15)))
	suite.Assert().True(transactions[2].Date.Equal(date(2024, 3, 15)))
	requireEqualDecimal(suite.T(), decimal.NewFromFloat(12.99), transactions[0].Amount)

	suite.Assert().True(recurring.NextDueDate.Equal(date(2024, 4, 15)))
	suite.Require().NotNil(recurring.LastCreatedDate)
	suite.Assert().True(recurring.LastCreatedDate.Equal(date(2024, 3, 15)))

	// A second run creates nothing new
	count, err = recurring.GenerateDue(models.DB, date(2024, 3, 20))
	suite.Require().Nil(err)
	suite.Assert().Equal(0, count)
}

func (suite *TestSuiteStandard) TestGenerateDueRespectsEndDate() {
	end := date(2024, 2, 20)
	recurring := suite.createTestRecurringTransaction(models.RecurringTransaction{
		Description: "Gym",
		Amount:      decimal.NewFromFloat(30),
		Frequency:   types.FrequencyMonthly,
		StartDate:   date(2024, 1, 10),
		EndDate:     &end,
	})

	count, err := recurring.GenerateDue(models.DB, date(2024, 6, 1))
	suite.Require().Nil(err)

	// Only January and February 10 fall before the end date
	suite.Assert().Equal(2, count)
}

func (suite *TestSuiteStandard) TestGenerateDueMonthEndClamping() {
	recurring := suite.createTestRecurringTransaction(models.RecurringTransaction{
		Description: "Rent",
		Amount:      decimal.NewFromFloat(1200),
		Frequency:   types.FrequencyMonthly,
		StartDate:   date(2024, 1, 31),
	})

	count, err := recurring.GenerateDue(models.DB, date(2024, 2, 29))
	suite.Require().Nil(err)
	suite.Assert().Equal(2, count)

	// January 31 advances to February 29 in a leap year, then to March 29
	suite.Assert().True(recurring.NextDueDate.Equal(date(2024, 3, 29)))
}

func (suite *TestSuiteStandard) TestGenerateDueTransactionsSweep() {
	first := suite.createTestRecurringTransaction(models.RecurringTransaction{
		Description: "Insurance",
		Amount:      decimal.NewFromFloat(80),
		Frequency:   types.FrequencyMonthly,
		StartDate:   date(2024, 2, 1),
	})

	_ = suite.createTestRecurringTransaction(models.RecurringTransaction{
		Description: "Not due yet",
		Amount:      decimal.NewFromFloat(10),
		Frequency:   types.FrequencyMonthly,
		StartDate:   date(2024, 4, 1),
	})

	count, err := models.GenerateDueTransactions(models.DB, date(2024, 3, 1))
	suite.Require().Nil(err)
	suite.Assert().Equal(2, count)

	var reloaded models.RecurringTransaction
	suite.Require().Nil(models.DB.First(&reloaded, "id = ?", first.ID).Error)
	suite.Assert().True(reloaded.NextDueDate.Equal(date(2024, 4, 1)))
}

package models_test

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestAccountNameNotUnique() {
	_ = suite.createTestAccount(models.Account{Name: "Checking"})

	err := models.DB.Create(&models.Account{Name: "Checking"}).Error
	suite.Assert().ErrorIs(err, models.ErrAccountNameNotUnique)
}

func (suite *TestSuiteStandard) TestAccountTrimsWhitespace() {
	account := suite.createTestAccount(models.Account{Name: " Cash ", Note: " Wallet\t"})

	suite.Assert().Equal("Cash", account.Name)
	suite.Assert().Equal("Wallet", account.Note)
}

func (suite *TestSuiteStandard) TestAccountTransactions() {
	account := suite.createTestAccount(models.Account{})
	other := suite.createTestAccount(models.Account{})

	_ = suite.createTestTransaction(models.Transaction{AccountID: &account.ID, Amount: decimal.NewFromFloat(10)})
	_ = suite.createTestTransaction(models.Transaction{AccountID: &account.ID, Amount: decimal.NewFromFloat(20)})
	_ = suite.createTestTransaction(models.Transaction{AccountID: &other.ID, Amount: decimal.NewFromFloat(30)})

	suite.Assert().Len(account.Transactions(models.DB), 2)
	suite.Assert().Len(other.Transactions(models.DB), 1)
}

func (suite *TestSuiteStandard) TestAccountInitialBalanceDate() {
	initialDate := date(2024, 6, 1)
	account := suite.createTestAccount(models.Account{
		InitialBalance:     decimal.NewFromFloat(500),
		InitialBalanceDate: &initialDate,
	})

	// Before the initial balance date the balance is zero
	balance, err := account.Balance(models.DB, date(2024, 5, 1))
	suite.Require().Nil(err)
	requireEqualDecimal(suite.T(), decimal.Zero, balance)

	balance, err = account.Balance(models.DB, date(2024, 7, 1))
	suite.Require().Nil(err)
	requireEqualDecimal(suite.T(), decimal.NewFromFloat(500), balance)
}

func (suite *TestSuiteStandard) TestAccountExport() {
	_ = suite.createTestAccount(models.Account{Name: "Checking"})
	_ = suite.createTestAccount(models.Account{Name: "Savings"})

	raw, err := models.Account{}.Export()
	suite.Require().Nil(err)

	var accounts []models.Account
	suite.Require().Nil(json.Unmarshal(raw, &accounts))
	suite.Assert().Len(accounts, 2)
}

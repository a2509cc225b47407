package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account represents an asset account, e.g. a bank account.
type Account struct {
	DefaultModel
	Name               string `gorm:"uniqueIndex:account_name"`
	Note               string
	InitialBalance     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	InitialBalanceDate *time.Time
	Archived           bool
}

var ErrAccountNameNotUnique = errors.New("the account name must be unique")

// BeforeSave trims whitespace from all strings
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Note = strings.TrimSpace(a.Note)

	return nil
}

// Transactions returns all transactions for this account.
func (a Account) Transactions(db *gorm.DB) []Transaction {
	var transactions []Transaction

	db.Where(Transaction{AccountID: &a.ID}).Find(&transactions)
	return transactions
}

// Balance calculates the balance of the account at a specific point in time,
// including all transactions before it.
//
// Income and incoming transfer legs add to the balance, expenses and
// outgoing transfer legs subtract from it.
func (a Account) Balance(db *gorm.DB, t time.Time) (balance decimal.Decimal, err error) {
	var transactions []Transaction

	err = db.
		Where(Transaction{AccountID: &a.ID}).
		Where("datetime(transactions.date) < datetime(?)", t).
		Find(&transactions).Error
	if err != nil {
		return decimal.Zero, err
	}

	if a.InitialBalanceDate == nil || t.After(*a.InitialBalanceDate) {
		balance = a.InitialBalance
	}

	for _, transaction := range transactions {
		balance = balance.Add(transaction.BalanceEffect())
	}

	return
}

// Returns all accounts on this instance for export
func (Account) Export() (json.RawMessage, error) {
	var accounts []Account
	err := DB.Unscoped().Where(&Account{}).Find(&accounts).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&accounts)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/types"
)

// TransactionType is the kind of a transaction.
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

var (
	ErrTransactionTypeInvalid    = errors.New("the transaction type must be one of: income, expense, transfer")
	ErrTransactionAmountNegative = errors.New("transaction amounts must not be negative")
	ErrTransferSameAccount       = errors.New("the source and destination accounts of a transfer must be different")
	ErrTransferAccountNotFound   = fmt.Errorf("%w existing account with the specified ID", ErrResourceNotFound)
	ErrTransferLegImmutable      = errors.New("transfer legs can not be updated, delete the transfer and book it again")
)

// Valid reports whether the transaction type is one of the known values.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
		return true
	}

	return false
}

// Scan writes the value from the database.
func (t *TransactionType) Scan(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("cannot scan %v into TransactionType", value)
	}

	*t = TransactionType(s)
	return nil
}

// Value returns the value for the SQL driver to write to the database.
func (t TransactionType) Value() (driver.Value, error) {
	return string(t), nil
}

// Transaction represents a single booking on an account.
//
// A transfer between two accounts is represented as two transaction rows
// that share a TransferID, one per account. Transfer legs never count
// towards income or expense aggregations.
type Transaction struct {
	DefaultModel
	Date        time.Time
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Description string
	Type        TransactionType
	CategoryID  *uuid.UUID
	Category    Category `json:"-"`
	AccountID   *uuid.UUID
	Account     Account `json:"-"`

	// Set on both legs of a transfer, nil for all other transactions.
	TransferID *uuid.UUID

	// For transfer legs: true on the leg that leaves its account.
	Outgoing bool
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave
//   - validates the type and amount
//   - sets the timezone for the Date to UTC
//   - trims whitespace from string fields
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)

	if !t.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	if t.Amount.IsNegative() {
		return ErrTransactionAmountNegative
	}

	// Ensure that optional references are nil and not pointers to the
	// nil UUID when they are unset
	if t.CategoryID != nil && *t.CategoryID == uuid.Nil {
		t.CategoryID = nil
	}

	if t.AccountID != nil && *t.AccountID == uuid.Nil {
		t.AccountID = nil
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}

// BalanceEffect returns the signed amount the transaction contributes to
// its account's balance.
func (t Transaction) BalanceEffect() decimal.Decimal {
	switch t.Type {
	case TransactionTypeExpense:
		return t.Amount.Neg()
	case TransactionTypeTransfer:
		if t.Outgoing {
			return t.Amount.Neg()
		}
	}

	return t.Amount
}

// CreateTransfer books a transfer between two accounts.
//
// Both legs are written in a single database transaction so that a partial
// transfer can never be observed: either both accounts see their leg or
// neither does.
func CreateTransfer(db *gorm.DB, fromID, toID uuid.UUID, amount decimal.Decimal, description string, date time.Time) ([]Transaction, error) {
	if fromID == toID {
		return nil, ErrTransferSameAccount
	}

	if amount.IsNegative() {
		return nil, ErrTransactionAmountNegative
	}

	var from, to Account
	if err := db.First(&from, fromID).Error; err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTransferAccountNotFound, fromID)
	}
	if err := db.First(&to, toID).Error; err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTransferAccountNotFound, toID)
	}

	if description == "" {
		description = fmt.Sprintf("Transfer from %s to %s", from.Name, to.Name)
	}

	transferID := uuid.New()
	legs := []Transaction{
		{
			Date:        date,
			Amount:      amount,
			Description: description,
			Type:        TransactionTypeTransfer,
			AccountID:   &from.ID,
			TransferID:  &transferID,
			Outgoing:    true,
		},
		{
			Date:        date,
			Amount:      amount,
			Description: description,
			Type:        TransactionTypeTransfer,
			AccountID:   &to.ID,
			TransferID:  &transferID,
		},
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for i := range legs {
			if err := tx.Create(&legs[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return legs, nil
}

// ExpenseSum returns the sum of all expense transactions for a category
// within the window. Both window bounds are inclusive. Transfer legs are
// never included, regardless of category or date.
func ExpenseSum(db *gorm.DB, categoryID uuid.UUID, window types.Window) (decimal.Decimal, error) {
	return transactionSum(db, categoryID, TransactionTypeExpense, window)
}

// IncomeSum returns the sum of all income transactions for a category
// within the window.
func IncomeSum(db *gorm.DB, categoryID uuid.UUID, window types.Window) (decimal.Decimal, error) {
	return transactionSum(db, categoryID, TransactionTypeIncome, window)
}

func transactionSum(db *gorm.DB, categoryID uuid.UUID, transactionType TransactionType, window types.Window) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := db.Table("transactions").
		Where("category_id = ?", categoryID).
		Where("type = ?", transactionType).
		Where("datetime(date) >= datetime(?) AND datetime(date) <= datetime(?)", window.Start, window.End).
		Where("deleted_at IS NULL").
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("getting the %s sum for category %s failed: %w", transactionType, categoryID, err)
	}

	return sum.Decimal, nil
}

// TypeSum returns the sum of all transactions of a type within the window,
// across all categories. Transfers are excluded by the type filter.
func TypeSum(db *gorm.DB, transactionType TransactionType, window types.Window) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := db.Table("transactions").
		Where("type = ?", transactionType).
		Where("datetime(date) >= datetime(?) AND datetime(date) <= datetime(?)", window.Start, window.End).
		Where("deleted_at IS NULL").
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("getting the %s sum failed: %w", transactionType, err)
	}

	return sum.Decimal, nil
}

// Returns all transactions on this instance for export
func (Transaction) Export() (json.RawMessage, error) {
	var transactions []Transaction
	err := DB.Unscoped().Where(&Transaction{}).Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&transactions)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}

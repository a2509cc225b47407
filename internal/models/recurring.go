package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/types"
)

// RecurringTransaction is a rule from which transactions are generated on a
// schedule.
type RecurringTransaction struct {
	DefaultModel
	Description     string
	Amount          decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Type            TransactionType
	AccountID       *uuid.UUID
	Account         Account `json:"-"`
	CategoryID      *uuid.UUID
	Category        Category `json:"-"`
	Frequency       types.Frequency
	StartDate       time.Time
	EndDate         *time.Time
	NextDueDate     time.Time
	LastCreatedDate *time.Time
}

var ErrRecurringTypeInvalid = errors.New("recurring transactions must be of type income or expense")

// BeforeSave validates the rule and defaults NextDueDate to the start date
func (r *RecurringTransaction) BeforeSave(_ *gorm.DB) error {
	r.Description = strings.TrimSpace(r.Description)

	if r.Type != TransactionTypeIncome && r.Type != TransactionTypeExpense {
		return ErrRecurringTypeInvalid
	}

	if r.Amount.IsNegative() {
		return ErrTransactionAmountNegative
	}

	if !r.Frequency.Valid() {
		return types.ErrInvalidFrequency
	}

	if r.CategoryID != nil && *r.CategoryID == uuid.Nil {
		r.CategoryID = nil
	}

	if r.AccountID != nil && *r.AccountID == uuid.Nil {
		r.AccountID = nil
	}

	if r.StartDate.IsZero() {
		r.StartDate = time.Now().In(time.UTC)
	}

	if r.NextDueDate.IsZero() {
		r.NextDueDate = r.StartDate
	}

	return nil
}

// Expired reports whether the rule generates no further transactions.
func (r RecurringTransaction) Expired() bool {
	return r.EndDate != nil && r.NextDueDate.After(*r.EndDate)
}

// GenerateDue creates one transaction for every due date up to now and
// advances the rule past them. It returns the number of transactions
// created.
//
// Each occurrence is processed in its own database transaction: the
// generated transaction and the rule advance are committed together, so a
// crash between occurrences at most delays the remaining ones until the
// next run.
func (r *RecurringTransaction) GenerateDue(db *gorm.DB, now time.Time) (int, error) {
	var created int

	for !r.Expired() && !r.NextDueDate.After(now) {
		due := r.NextDueDate

		next, err := types.NextDueDate(r.Frequency, due)
		if err != nil {
			return created, err
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			transaction := Transaction{
				Date:        due,
				Amount:      r.Amount,
				Description: r.Description,
				Type:        r.Type,
				CategoryID:  r.CategoryID,
				AccountID:   r.AccountID,
			}

			if err := tx.Create(&transaction).Error; err != nil {
				return err
			}

			return tx.Model(r).
				Select("LastCreatedDate", "NextDueDate").
				Updates(RecurringTransaction{LastCreatedDate: &due, NextDueDate: next}).Error
		})
		if err != nil {
			return created, err
		}

		r.LastCreatedDate = &due
		r.NextDueDate = next
		created++
	}

	return created, nil
}

// GenerateDueTransactions runs GenerateDue for all rules and returns the
// total number of transactions created.
//
// A failing rule is logged and skipped, it does not block the others.
func GenerateDueTransactions(db *gorm.DB, now time.Time) (int, error) {
	var rules []RecurringTransaction
	err := db.Find(&rules).Error
	if err != nil {
		return 0, err
	}

	var created int
	for i := range rules {
		n, err := rules[i].GenerateDue(db, now)
		created += n
		if err != nil {
			log.Error().Err(err).Str("rule", rules[i].ID.String()).Msg("recurring transaction generation failed")
		}
	}

	return created, nil
}

// Returns all recurring transactions on this instance for export
func (RecurringTransaction) Export() (json.RawMessage, error) {
	var rules []RecurringTransaction
	err := DB.Unscoped().Where(&RecurringTransaction{}).Find(&rules).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&rules)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}

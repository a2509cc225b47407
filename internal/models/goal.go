package models

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/types"
)

// SavingsGoal is an amount of money to save up, optionally by a target
// month.
type SavingsGoal struct {
	DefaultModel
	Name         string `gorm:"uniqueIndex:savings_goal_name"`
	Note         string
	TargetAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	SavedAmount  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	TargetMonth  *types.Month
	Archived     bool
}

var (
	ErrGoalNameNotUnique     = errors.New("the savings goal name must be unique")
	ErrGoalAmountNotPositive = errors.New("savings goal target amounts must be larger than zero")
	ErrGoalSavedNegative     = errors.New("the saved amount must not be negative")
)

// BeforeSave validates the goal and trims whitespace from all strings
func (g *SavingsGoal) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Note = strings.TrimSpace(g.Note)

	if !g.TargetAmount.IsPositive() {
		return ErrGoalAmountNotPositive
	}

	if g.SavedAmount.IsNegative() {
		return ErrGoalSavedNegative
	}

	return nil
}

// Progress returns the saved share of the target as a percentage clamped
// to [0, 100].
func (g SavingsGoal) Progress() decimal.Decimal {
	return decimal.Min(hundred, g.SavedAmount.Div(g.TargetAmount).Mul(hundred))
}

// Returns all savings goals on this instance for export
func (SavingsGoal) Export() (json.RawMessage, error) {
	var goals []SavingsGoal
	err := DB.Unscoped().Where(&SavingsGoal{}).Find(&goals).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&goals)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}

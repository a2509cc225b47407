package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchRule maps merchant names to a category.
//
// The Match field is a glob pattern. Rules are applied in ascending
// priority order, the first match wins. They are used to suggest a
// category for scanned receipts.
type MatchRule struct {
	DefaultModel
	Priority   uint
	Match      string
	CategoryID uuid.UUID
	Category   Category `json:"-"`
}

// BeforeSave trims whitespace from the match pattern
func (m *MatchRule) BeforeSave(_ *gorm.DB) error {
	m.Match = strings.TrimSpace(m.Match)
	return nil
}

func (m *MatchRule) BeforeCreate(tx *gorm.DB) error {
	_ = m.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*MatchRule)
	return tx.First(&Category{}, toSave.CategoryID).Error
}

// MatchRulesByPriority returns all match rules in application order.
func MatchRulesByPriority(db *gorm.DB) ([]MatchRule, error) {
	var rules []MatchRule
	err := db.Order("priority ASC").Find(&rules).Error
	return rules, err
}

// Returns all match rules on this instance for export
func (MatchRule) Export() (json.RawMessage, error) {
	var matchRules []MatchRule
	err := DB.Unscoped().Where(&MatchRule{}).Find(&matchRules).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&matchRules)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryType is the kind of transactions a category groups.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

var (
	ErrCategoryNameNotUnique  = errors.New("the category name must be unique")
	ErrCategoryTypeInvalid    = errors.New("the category type must be one of: income, expense")
	ErrCategoryInUse          = errors.New("the category is still referenced by transactions or budgets")
	ErrCategoryAmountNegative = errors.New("the default budget amount must not be negative")
)

// Valid reports whether the category type is one of the known values.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// Scan writes the value from the database.
func (t *CategoryType) Scan(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("cannot scan %v into CategoryType", value)
	}

	*t = CategoryType(s)
	return nil
}

// Value returns the value for the SQL driver to write to the database.
func (t CategoryType) Value() (driver.Value, error) {
	return string(t), nil
}

// Category groups transactions. Its default budget amount is the template
// consumed when materializing monthly budgets.
type Category struct {
	DefaultModel
	Name                string `gorm:"uniqueIndex:category_name"`
	Color               string
	Type                CategoryType
	DefaultBudgetAmount *decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Archived            bool
}

// BeforeSave validates the category and trims whitespace from all strings
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Color = strings.TrimSpace(c.Color)

	if !c.Type.Valid() {
		return ErrCategoryTypeInvalid
	}

	if c.DefaultBudgetAmount != nil && c.DefaultBudgetAmount.IsNegative() {
		return ErrCategoryAmountNegative
	}

	return nil
}

// BeforeDelete blocks deletion while transactions or budgets still
// reference the category
func (c *Category) BeforeDelete(tx *gorm.DB) error {
	var count int64

	err := tx.Model(&Transaction{}).Where("category_id = ?", c.ID).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	err = tx.Model(&Budget{}).Where("category_id = ?", c.ID).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	return nil
}

// Returns all categories on this instance for export
func (Category) Export() (json.RawMessage, error) {
	var categories []Category
	err := DB.Unscoped().Where(&Category{}).Find(&categories).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&categories)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}

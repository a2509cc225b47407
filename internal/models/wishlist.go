package models

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WishlistItem is a planned purchase.
type WishlistItem struct {
	DefaultModel
	Name      string
	Note      string
	Price     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Priority  uint8
	Purchased bool
}

var ErrWishlistPriceNegative = errors.New("wishlist item prices must not be negative")

// BeforeSave validates the item and trims whitespace from all strings
func (w *WishlistItem) BeforeSave(_ *gorm.DB) error {
	w.Name = strings.TrimSpace(w.Name)
	w.Note = strings.TrimSpace(w.Note)

	if w.Price.IsNegative() {
		return ErrWishlistPriceNegative
	}

	return nil
}

// Returns all wishlist items on this instance for export
func (WishlistItem) Export() (json.RawMessage, error) {
	var items []WishlistItem
	err := DB.Unscoped().Where(&WishlistItem{}).Find(&items).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&items)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}

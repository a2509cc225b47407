package models_test

import (
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestWishlistItemPriceNegative() {
	err := models.DB.Save(&models.WishlistItem{
		Name:  "Refund me",
		Price: decimal.NewFromFloat(-49.99),
	}).Error

	suite.Assert().ErrorIs(err, models.ErrWishlistPriceNegative)
}

func (suite *TestSuiteStandard) TestWishlistItemPurchase() {
	item := suite.createTestWishlistItem(models.WishlistItem{
		Price:    decimal.NewFromFloat(1299),
		Priority: 1,
	})
	suite.Assert().False(item.Purchased)

	suite.Require().Nil(models.DB.Model(&item).Update("purchased", true).Error)

	var reloaded models.WishlistItem
	suite.Require().Nil(models.DB.First(&reloaded, "id = ?", item.ID).Error)
	suite.Assert().True(reloaded.Purchased)
}

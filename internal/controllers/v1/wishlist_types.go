package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/models"
)

// WishlistItemEditable represents all user configurable parameters
type WishlistItemEditable struct {
	Name      string          `json:"name" example:"New laptop" default:""`         // Name of the wishlist item
	Note      string          `json:"note" example:"Wait for a sale" default:""`    // Notes about the wishlist item
	Price     decimal.Decimal `json:"price" example:"1299" minimum:"0"`             // Price of the item
	Priority  uint8           `json:"priority" example:"1" default:"0"`             // Priority of the item, lower is more important
	Purchased bool            `json:"purchased" example:"false" default:"false"`    // Has the item been purchased?
}

func (editable WishlistItemEditable) model() models.WishlistItem {
	return models.WishlistItem{
		Name:      editable.Name,
		Note:      editable.Note,
		Price:     editable.Price,
		Priority:  editable.Priority,
		Purchased: editable.Purchased,
	}
}

type WishlistItemLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/wishlist/94b40d9f-b693-4f12-a668-337ab29ad7c9"` // The wishlist item itself
}

type WishlistItem struct {
	models.DefaultModel
	WishlistItemEditable
	Links WishlistItemLinks `json:"links"`
}

func newWishlistItem(c *gin.Context, model models.WishlistItem) WishlistItem {
	url := c.GetString(string(models.DBContextURL))

	return WishlistItem{
		DefaultModel: model.DefaultModel,
		WishlistItemEditable: WishlistItemEditable{
			Name:      model.Name,
			Note:      model.Note,
			Price:     model.Price,
			Priority:  model.Priority,
			Purchased: model.Purchased,
		},
		Links: WishlistItemLinks{
			Self: fmt.Sprintf("%s/v1/wishlist/%s", url, model.ID),
		},
	}
}

type WishlistItemListResponse struct {
	Data       []WishlistItem `json:"data"`                                                          // List of Wishlist Items
	Error      *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination    `json:"pagination"`                                                    // Pagination information
}

type WishlistItemCreateResponse struct {
	Data  []WishlistItemResponse `json:"data"`                                                          // List of the created Wishlist Items or their respective error
	Error *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (w *WishlistItemCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	w.Data = append(w.Data, WishlistItemResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type WishlistItemResponse struct {
	Data  *WishlistItem `json:"data"`                                                          // Data for the Wishlist Item
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type WishlistItemQueryFilter struct {
	Name      string `form:"name" filterField:"false"`   // By name
	Note      string `form:"note" filterField:"false"`   // By note
	Priority  uint8  `form:"priority"`                   // By priority
	Purchased bool   `form:"purchased"`                  // Has the item been purchased?
	Search    string `form:"search" filterField:"false"` // By string in name or note
	Offset    uint   `form:"offset" filterField:"false"` // The offset of the first Wishlist Item returned. Defaults to 0.
	Limit     int    `form:"limit" filterField:"false"`  // Maximum number of Wishlist Items to return. Defaults to 50.
}

func (f WishlistItemQueryFilter) model() (models.WishlistItem, error) {
	return models.WishlistItem{
		Priority:  f.Priority,
		Purchased: f.Purchased,
	}, nil
}

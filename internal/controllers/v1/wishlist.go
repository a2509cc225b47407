package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"

	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
)

// RegisterWishlistItemRoutes registers the routes for wishlist items with
// the RouterGroup that is passed.
func RegisterWishlistItemRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsWishlistItemList)
		r.GET("", GetWishlistItems)
		r.POST("", CreateWishlistItems)
	}

	// Wishlist item with ID
	{
		r.OPTIONS("/:id", OptionsWishlistItemDetail)
		r.GET("/:id", GetWishlistItem)
		r.PATCH("/:id", UpdateWishlistItem)
		r.DELETE("/:id", DeleteWishlistItem)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Wishlist
// @Success		204
// @Router			/v1/wishlist [options]
func OptionsWishlistItemList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Wishlist
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/wishlist/{id} [options]
func OptionsWishlistItemDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.WishlistItem{})
}

// @Summary		Create wishlist items
// @Description	Creates new wishlist items
// @Tags			Wishlist
// @Produce		json
// @Success		201		{object}	WishlistItemCreateResponse
// @Failure		400		{object}	WishlistItemCreateResponse
// @Failure		500		{object}	WishlistItemCreateResponse
// @Param			items	body		[]WishlistItemEditable	true	"Wishlist Items"
// @Router			/v1/wishlist [post]
func CreateWishlistItems(c *gin.Context) {
	var editables []WishlistItemEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WishlistItemCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := WishlistItemCreateResponse{}

	for _, editable := range editables {
		item := editable.model()

		err = models.DB.Create(&item).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newWishlistItem(c, item)
		r.Data = append(r.Data, WishlistItemResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List wishlist items
// @Description	Returns a list of wishlist items
// @Tags			Wishlist
// @Produce		json
// @Success		200	{object}	WishlistItemListResponse
// @Failure		400	{object}	WishlistItemListResponse
// @Failure		500	{object}	WishlistItemListResponse
// @Router			/v1/wishlist [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			note		query	string	false	"Filter by note"
// @Param			priority	query	uint	false	"Filter by priority"
// @Param			purchased	query	bool	false	"Has the item been purchased?"
// @Param			search		query	string	false	"Search for this text in name and note"
// @Param			offset		query	uint	false	"The offset of the first Wishlist Item returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Wishlist Items to return. Defaults to 50."
func GetWishlistItems(c *gin.Context) {
	var filter WishlistItemQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, WishlistItemListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// Convert the QueryFilter to a model struct
	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WishlistItemListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("priority ASC, name ASC").
		Where(&filterModel, queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Wishlist Items and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var items []models.WishlistItem
	err = q.Find(&items).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WishlistItemListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WishlistItemListResponse{
			Error: &e,
		})
		return
	}

	data := make([]WishlistItem, 0)
	for _, item := range items {
		data = append(data, newWishlistItem(c, item))
	}

	c.JSON(http.StatusOK, WishlistItemListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get wishlist item
// @Description	Returns a specific wishlist item
// @Tags			Wishlist
// @Produce		json
// @Success		200	{object}	WishlistItemResponse
// @Failure		400	{object}	WishlistItemResponse
// @Failure		404	{object}	WishlistItemResponse
// @Failure		500	{object}	WishlistItemResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/wishlist/{id} [get]
func GetWishlistItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WishlistItemResponse{
			Error: &s,
		})
		return
	}

	var item models.WishlistItem
	err = models.DB.First(&item, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WishlistItemResponse{
			Error: &s,
		})
		return
	}

	data := newWishlistItem(c, item)
	c.JSON(http.StatusOK, WishlistItemResponse{Data: &data})
}

// @Summary		Update wishlist item
// @Description	Updates an existing wishlist item. Only values to be updated need to be specified.
// @Tags			Wishlist
// @Accept			json
// @Produce		json
// @Success		200		{object}	WishlistItemResponse
// @Failure		400		{object}	WishlistItemResponse
// @Failure		404		{object}	WishlistItemResponse
// @Failure		500		{object}	WishlistItemResponse
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			item	body		WishlistItemEditable	true	"Wishlist Item"
// @Router			/v1/wishlist/{id} [patch]
func UpdateWishlistItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WishlistItemResponse{
			Error: &s,
		})
		return
	}

	var item models.WishlistItem
	err = models.DB.First(&item, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WishlistItemResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, WishlistItemEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WishlistItemResponse{
			Error: &s,
		})
		return
	}

	var data WishlistItemEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WishlistItemResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&item).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WishlistItemResponse{
			Error: &s,
		})
		return
	}

	r := newWishlistItem(c, item)
	c.JSON(http.StatusOK, WishlistItemResponse{Data: &r})
}

// @Summary		Delete wishlist item
// @Description	Deletes a wishlist item
// @Tags			Wishlist
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/wishlist/{id} [delete]
func DeleteWishlistItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var item models.WishlistItem
	err = models.DB.First(&item, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&item).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

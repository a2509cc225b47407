package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"

	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
)

// RegisterSavingsGoalRoutes registers the routes for savings goals with
// the RouterGroup that is passed.
func RegisterSavingsGoalRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSavingsGoalList)
		r.GET("", GetSavingsGoals)
		r.POST("", CreateSavingsGoals)
	}

	// Savings goal with ID
	{
		r.OPTIONS("/:id", OptionsSavingsGoalDetail)
		r.GET("/:id", GetSavingsGoal)
		r.PATCH("/:id", UpdateSavingsGoal)
		r.DELETE("/:id", DeleteSavingsGoal)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SavingsGoals
// @Success		204
// @Router			/v1/goals [options]
func OptionsSavingsGoalList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SavingsGoals
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/goals/{id} [options]
func OptionsSavingsGoalDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.SavingsGoal{})
}

// @Summary		Create savings goals
// @Description	Creates new savings goals
// @Tags			SavingsGoals
// @Produce		json
// @Success		201		{object}	SavingsGoalCreateResponse
// @Failure		400		{object}	SavingsGoalCreateResponse
// @Failure		500		{object}	SavingsGoalCreateResponse
// @Param			goals	body		[]SavingsGoalEditable	true	"Savings Goals"
// @Router			/v1/goals [post]
func CreateSavingsGoals(c *gin.Context) {
	var editables []SavingsGoalEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavingsGoalCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := SavingsGoalCreateResponse{}

	for _, editable := range editables {
		goal := editable.model()

		err = models.DB.Create(&goal).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newSavingsGoal(c, goal)
		r.Data = append(r.Data, SavingsGoalResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List savings goals
// @Description	Returns a list of savings goals
// @Tags			SavingsGoals
// @Produce		json
// @Success		200	{object}	SavingsGoalListResponse
// @Failure		400	{object}	SavingsGoalListResponse
// @Failure		500	{object}	SavingsGoalListResponse
// @Router			/v1/goals [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			note		query	string	false	"Filter by note"
// @Param			archived	query	bool	false	"Is the savings goal archived?"
// @Param			search		query	string	false	"Search for this text in name and note"
// @Param			offset		query	uint	false	"The offset of the first Savings Goal returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Savings Goals to return. Defaults to 50."
func GetSavingsGoals(c *gin.Context) {
	var filter SavingsGoalQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, SavingsGoalListResponse{
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
		c.JSON(status(err), SavingsGoalListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("name ASC").
		Where(&filterModel, queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Savings Goals and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var goals []models.SavingsGoal
	err = q.Find(&goals).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsGoalListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavingsGoalListResponse{
			Error: &e,
		})
		return
	}

	data := make([]SavingsGoal, 0)
	for _, goal := range goals {
		data = append(data, newSavingsGoal(c, goal))
	}

	c.JSON(http.StatusOK, SavingsGoalListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get savings goal
// @Description	Returns a specific savings goal
// @Tags			SavingsGoals
// @Produce		json
// @Success		200	{object}	SavingsGoalResponse
// @Failure		400	{object}	SavingsGoalResponse
// @Failure		404	{object}	SavingsGoalResponse
// @Failure		500	{object}	SavingsGoalResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/goals/{id} [get]
func GetSavingsGoal(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsGoalResponse{
			Error: &s,
		})
		return
	}

	var goal models.SavingsGoal
	err = models.DB.First(&goal, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsGoalResponse{
			Error: &s,
		})
		return
	}

	data := newSavingsGoal(c, goal)
	c.JSON(http.StatusOK, SavingsGoalResponse{Data: &data})
}

// @Summary		Update savings goal
// @Description	Updates an existing savings goal. Only values to be updated need to be specified.
// @Tags			SavingsGoals
// @Accept			json
// @Produce		json
// @Success		200		{object}	SavingsGoalResponse
// @Failure		400		{object}	SavingsGoalResponse
// @Failure		404		{object}	SavingsGoalResponse
// @Failure		500		{object}	SavingsGoalResponse
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			goal	body		SavingsGoalEditable	true	"Savings Goal"
// @Router			/v1/goals/{id} [patch]
func UpdateSavingsGoal(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsGoalResponse{
			Error: &s,
		})
		return
	}

	var goal models.SavingsGoal
	err = models.DB.First(&goal, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsGoalResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, SavingsGoalEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsGoalResponse{
			Error: &s,
		})
		return
	}

	var data SavingsGoalEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsGoalResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&goal).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsGoalResponse{
			Error: &s,
		})
		return
	}

	r := newSavingsGoal(c, goal)
	c.JSON(http.StatusOK, SavingsGoalResponse{Data: &r})
}

// @Summary		Delete savings goal
// @Description	Deletes a savings goal
// @Tags			SavingsGoals
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/goals/{id} [delete]
func DeleteSavingsGoal(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var goal models.SavingsGoal
	err = models.DB.First(&goal, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&goal).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	pl_uuid "github.com/pocketledger/backend/internal/uuid"
)

// RegisterMonthlyBudgetRoutes registers the routes for monthly budgets with
// the RouterGroup that is passed.
func RegisterMonthlyBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsMonthlyBudgetList)
		r.GET("", GetMonthlyBudgets)
		r.POST("", CreateMonthlyBudgets)
	}

	// Materialization from category templates
	{
		r.OPTIONS("/materialize", OptionsMaterialize)
		r.POST("/materialize", MaterializeMonthlyBudgets)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			MonthlyBudgets
// @Success		204
// @Router			/v1/monthly-budgets [options]
func OptionsMonthlyBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			MonthlyBudgets
// @Success		204
// @Router			/v1/monthly-budgets/materialize [options]
func OptionsMaterialize(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Create monthly budgets
// @Description	Creates new monthly budgets
// @Tags			MonthlyBudgets
// @Produce		json
// @Success		201				{object}	MonthlyBudgetCreateResponse
// @Failure		400				{object}	MonthlyBudgetCreateResponse
// @Failure		404				{object}	MonthlyBudgetCreateResponse
// @Failure		500				{object}	MonthlyBudgetCreateResponse
// @Param			monthlyBudgets	body		[]MonthlyBudgetEditable	true	"Monthly Budgets"
// @Router			/v1/monthly-budgets [post]
func CreateMonthlyBudgets(c *gin.Context) {
	var editables []MonthlyBudgetEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthlyBudgetCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := MonthlyBudgetCreateResponse{}

	for _, editable := range editables {
		monthlyBudget := editable.model()

		err = models.DB.Create(&monthlyBudget).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data, err := newMonthlyBudget(c, models.DB, monthlyBudget)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, MonthlyBudgetResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Materialize monthly budgets
// @Description	Creates one monthly budget for every expense category that has a default budget amount set. Fails when the month already has monthly budgets.
// @Tags			MonthlyBudgets
// @Produce		json
// @Success		201		{object}	MaterializeResponse
// @Failure		400		{object}	MaterializeResponse
// @Failure		500		{object}	MaterializeResponse
// @Param			month	query		string	true	"The month to materialize in YYYY-MM format"
// @Router			/v1/monthly-budgets/materialize [post]
func MaterializeMonthlyBudgets(c *gin.Context) {
	monthString := c.Query("month")
	if monthString == "" {
		e := errMonthNotSetInQuery.Error()
		c.JSON(http.StatusBadRequest, MaterializeResponse{
			Error: &e,
		})
		return
	}

	month, err := types.ParseMonth(monthString)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, MaterializeResponse{
			Error: &e,
		})
		return
	}

	count, err := models.MaterializeMonthlyBudgets(models.DB, month)
	if err != nil {
		e := err.Error()

		// Re-running the materialization for a month is a conflict, not a
		// generic bad request
		s := status(err)
		if errors.Is(err, models.ErrMonthlyBudgetsAlreadyPresent) {
			s = http.StatusConflict
		}

		c.JSON(s, MaterializeResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusCreated, MaterializeResponse{CreatedCount: count})
}

// @Summary		List monthly budgets
// @Description	Returns the monthly budgets for a month
// @Tags			MonthlyBudgets
// @Produce		json
// @Success		200	{object}	MonthlyBudgetListResponse
// @Failure		400	{object}	MonthlyBudgetListResponse
// @Failure		500	{object}	MonthlyBudgetListResponse
// @Router			/v1/monthly-budgets [get]
// @Param			month		query	string	false	"Filter by month in YYYY-MM format"
// @Param			category	query	string	false	"Filter by category ID"
func GetMonthlyBudgets(c *gin.Context) {
	var filter MonthlyBudgetQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, MonthlyBudgetListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.Order("month ASC")

	if filter.Month != "" {
		month, err := types.ParseMonth(filter.Month)
		if err != nil {
			e := err.Error()
			c.JSON(http.StatusBadRequest, MonthlyBudgetListResponse{
				Error: &e,
			})
			return
		}
		q = q.Where("month = ?", month)
	}

	if filter.CategoryID != pl_uuid.Nil {
		q = q.Where("category_id = ?", filter.CategoryID.UUID)
	}

	var monthlyBudgets []models.MonthlyBudget
	err := q.Find(&monthlyBudgets).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthlyBudgetListResponse{
			Error: &e,
		})
		return
	}

	data := make([]MonthlyBudget, 0)
	for _, monthlyBudget := range monthlyBudgets {
		apiResource, err := newMonthlyBudget(c, models.DB, monthlyBudget)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), MonthlyBudgetListResponse{
				Error: &e,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, MonthlyBudgetListResponse{Data: data})
}

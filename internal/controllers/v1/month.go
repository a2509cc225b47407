package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
)

// RegisterMonthRoutes registers the routes for months with
// the RouterGroup that is passed.
func RegisterMonthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsMonth)
	r.GET("", GetMonth)
}

// CategoryMonth is the spending state of one category in a fixed calendar
// month.
type CategoryMonth struct {
	ID     uuid.UUID           `json:"id" example:"d5236e25-ffb8-4fd5-a707-3674a785e680"` // ID of the category
	Name   string              `json:"name" example:"Groceries"`                          // Name of the category
	Type   models.CategoryType `json:"type" example:"expense"`                            // Type of the category
	Spent  decimal.Decimal     `json:"spent" example:"180.62"`                            // Expenses booked on the category in this month
	Income decimal.Decimal     `json:"income" example:"0"`                                // Income booked on the category in this month

	// The planned amount of the category's monthly budget. Null when the
	// month has not been materialized for this category.
	PlannedAmount *decimal.Decimal `json:"plannedAmount" example:"250"`
	// Planned amount minus spent. Null when there is no monthly budget.
	Remaining *decimal.Decimal `json:"remaining" example:"69.38"`
}

// Month is the aggregated state of one fixed calendar month.
type Month struct {
	Month      types.Month     `json:"month" example:"2024-07"`  // The month
	Income     decimal.Decimal `json:"income" example:"3000"`    // Total income booked in this month
	Spent      decimal.Decimal `json:"spent" example:"2164.33"`  // Total expenses booked in this month
	Balance    decimal.Decimal `json:"balance" example:"835.67"` // Income minus expenses
	Categories []CategoryMonth `json:"categories"`               // Per category breakdown
}

type MonthResponse struct {
	Data  *Month  `json:"data"`                                                // Data for the month
	Error *string `json:"error" example:"the month query parameter must be set"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Router			/v1/months [options]
func OptionsMonth(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get month
// @Description	Returns the aggregated spending state of a calendar month with a per category breakdown
// @Tags			Months
// @Produce		json
// @Success		200		{object}	MonthResponse
// @Failure		400		{object}	MonthResponse
// @Failure		500		{object}	MonthResponse
// @Param			month	query		string	true	"The month in YYYY-MM format"
// @Router			/v1/months [get]
func GetMonth(c *gin.Context) {
	monthString := c.Query("month")
	if monthString == "" {
		e := errMonthNotSetInQuery.Error()
		c.JSON(http.StatusBadRequest, MonthResponse{
			Error: &e,
		})
		return
	}

	month, err := types.ParseMonth(monthString)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, MonthResponse{
			Error: &e,
		})
		return
	}

	window := types.Window{Start: month.FirstDay(), End: month.LastDayEnd()}

	income, err := models.TypeSum(models.DB, models.TransactionTypeIncome, window)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthResponse{Error: &e})
		return
	}

	spent, err := models.TypeSum(models.DB, models.TransactionTypeExpense, window)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthResponse{Error: &e})
		return
	}

	var categories []models.Category
	err = models.DB.Order("name ASC").Find(&categories).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthResponse{Error: &e})
		return
	}

	var monthlyBudgets []models.MonthlyBudget
	err = models.DB.Where(&models.MonthlyBudget{Month: month}).Find(&monthlyBudgets).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthResponse{Error: &e})
		return
	}

	planned := make(map[uuid.UUID]decimal.Decimal, len(monthlyBudgets))
	for _, monthlyBudget := range monthlyBudgets {
		planned[monthlyBudget.CategoryID] = monthlyBudget.PlannedAmount
	}

	data := Month{
		Month:      month,
		Income:     income,
		Spent:      spent,
		Balance:    income.Sub(spent),
		Categories: make([]CategoryMonth, 0, len(categories)),
	}

	for _, category := range categories {
		categorySpent, err := models.ExpenseSum(models.DB, category.ID, window)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), MonthResponse{Error: &e})
			return
		}

		categoryIncome, err := models.IncomeSum(models.DB, category.ID, window)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), MonthResponse{Error: &e})
			return
		}

		categoryMonth := CategoryMonth{
			ID:     category.ID,
			Name:   category.Name,
			Type:   category.Type,
			Spent:  categorySpent,
			Income: categoryIncome,
		}

		if amount, ok := planned[category.ID]; ok {
			remaining := amount.Sub(categorySpent)
			categoryMonth.PlannedAmount = &amount
			categoryMonth.Remaining = &remaining
		}

		data.Categories = append(data.Categories, categoryMonth)
	}

	c.JSON(http.StatusOK, MonthResponse{Data: &data})
}

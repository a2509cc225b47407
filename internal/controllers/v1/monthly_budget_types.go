package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	pl_uuid "github.com/pocketledger/backend/internal/uuid"
)

// MonthlyBudgetEditable represents all user configurable parameters
type MonthlyBudgetEditable struct {
	CategoryID    uuid.UUID       `json:"categoryId" example:"d5236e25-ffb8-4fd5-a707-3674a785e680"` // ID of the category
	Month         types.Month     `json:"month" example:"2024-03"`                                   // The month the amount is planned for
	PlannedAmount decimal.Decimal `json:"plannedAmount" example:"300" minimum:"0"`                   // The amount planned for the month
}

func (editable MonthlyBudgetEditable) model() models.MonthlyBudget {
	return models.MonthlyBudget{
		CategoryID:    editable.CategoryID,
		Month:         editable.Month,
		PlannedAmount: editable.PlannedAmount,
	}
}

type MonthlyBudgetLinks struct {
	Category string `json:"category" example:"https://example.com/api/v1/categories/d5236e25-ffb8-4fd5-a707-3674a785e680"` // The category the amount is planned for
}

type MonthlyBudget struct {
	models.Timestamps
	MonthlyBudgetEditable
	Links MonthlyBudgetLinks `json:"links"`

	// These fields are computed for the fixed calendar month
	models.Reconciliation
}

func newMonthlyBudget(c *gin.Context, db *gorm.DB, model models.MonthlyBudget) (MonthlyBudget, error) {
	url := c.GetString(string(models.DBContextURL))

	reconciliation, err := model.Reconciled(db)
	if err != nil {
		return MonthlyBudget{}, err
	}

	return MonthlyBudget{
		Timestamps: model.Timestamps,
		MonthlyBudgetEditable: MonthlyBudgetEditable{
			CategoryID:    model.CategoryID,
			Month:         model.Month,
			PlannedAmount: model.PlannedAmount,
		},
		Links: MonthlyBudgetLinks{
			Category: fmt.Sprintf("%s/v1/categories/%s", url, model.CategoryID),
		},
		Reconciliation: reconciliation,
	}, nil
}

type MonthlyBudgetListResponse struct {
	Data  []MonthlyBudget `json:"data"`                                                   // List of Monthly Budgets
	Error *string         `json:"error" example:"the month query parameter must be set"` // The error, if any occurred
}

type MonthlyBudgetCreateResponse struct {
	Data  []MonthlyBudgetResponse `json:"data"`                                                          // List of the created Monthly Budgets or their respective error
	Error *string                 `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (m *MonthlyBudgetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	m.Data = append(m.Data, MonthlyBudgetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type MonthlyBudgetResponse struct {
	Data  *MonthlyBudget `json:"data"`                                                          // Data for the Monthly Budget
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type MonthlyBudgetQueryFilter struct {
	CategoryID pl_uuid.UUID `form:"category"`               // By ID of the Category
	Month      string       `form:"month" filterField:"false"` // By month in YYYY-MM format
}

type MaterializeResponse struct {
	CreatedCount int     `json:"createdCount" example:"7"`                                      // Number of monthly budgets created from category templates
	Error        *string `json:"error" example:"the month query parameter must be set"`        // The error, if any occurred
}

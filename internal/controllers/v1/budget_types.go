package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	pl_uuid "github.com/pocketledger/backend/internal/uuid"
)

// BudgetEditable represents all user configurable parameters
type BudgetEditable struct {
	CategoryID uuid.UUID       `json:"categoryId" example:"d5236e25-ffb8-4fd5-a707-3674a785e680"` // ID of the category the budget limits
	Amount     decimal.Decimal `json:"amount" example:"500" minimum:"0"`                          // The spending limit for one window
	Interval   types.Interval  `json:"interval" example:"monthly" default:"monthly"`              // Interval of the budget, one of monthly, weekly
}

func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		CategoryID: editable.CategoryID,
		Amount:     editable.Amount,
		Interval:   editable.Interval,
	}
}

type BudgetLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf"`                  // The budget itself
	Category string `json:"category" example:"https://example.com/api/v1/categories/d5236e25-ffb8-4fd5-a707-3674a785e680"`           // The category the budget limits
}

type Budget struct {
	models.DefaultModel
	BudgetEditable
	LastReset *time.Time  `json:"lastReset" example:"2024-03-01T04:00:00Z"` // Time the budget last rolled over into a new window
	Links     BudgetLinks `json:"links"`

	// These fields are computed for the current window
	WindowStart time.Time `json:"windowStart" example:"2024-03-01T00:00:00Z"`     // Start of the current window
	WindowEnd   time.Time `json:"windowEnd" example:"2024-03-31T23:59:59.999Z"`   // End of the current window
	models.Reconciliation
}

func newBudget(c *gin.Context, db *gorm.DB, model models.Budget) (Budget, error) {
	url := c.GetString(string(models.DBContextURL))

	now := time.Now()
	window, err := model.Window(now)
	if err != nil {
		return Budget{}, err
	}

	reconciliation, err := model.Reconciled(db, now)
	if err != nil {
		return Budget{}, err
	}

	return Budget{
		DefaultModel: model.DefaultModel,
		BudgetEditable: BudgetEditable{
			CategoryID: model.CategoryID,
			Amount:     model.Amount,
			Interval:   model.Interval,
		},
		LastReset: model.LastReset,
		Links: BudgetLinks{
			Self:     fmt.Sprintf("%s/v1/budgets/%s", url, model.ID),
			Category: fmt.Sprintf("%s/v1/categories/%s", url, model.CategoryID),
		},
		WindowStart:    window.Start,
		WindowEnd:      window.End,
		Reconciliation: reconciliation,
	}, nil
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`                                                          // List of Budgets
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type BudgetCreateResponse struct {
	Data  []BudgetResponse `json:"data"`                                                          // List of the created Budgets or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (b *BudgetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	b.Data = append(b.Data, BudgetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BudgetResponse struct {
	Data  *Budget `json:"data"`                                                          // Data for the Budget
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetQueryFilter struct {
	CategoryID pl_uuid.UUID   `form:"category"`                   // By ID of the Category
	Interval   types.Interval `form:"interval"`                   // By interval
	Offset     uint           `form:"offset" filterField:"false"` // The offset of the first Budget returned. Defaults to 0.
	Limit      int            `form:"limit" filterField:"false"`  // Maximum number of Budgets to return. Defaults to 50.
}

func (f BudgetQueryFilter) model() (models.Budget, error) {
	return models.Budget{
		CategoryID: f.CategoryID.UUID,
		Interval:   f.Interval,
	}, nil
}

type BudgetResetResponse struct {
	ResetCount int     `json:"resetCount" example:"3"`                                        // Number of budgets that rolled over into a new window
	Error      *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

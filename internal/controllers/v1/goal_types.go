package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
)

// SavingsGoalEditable represents all user configurable parameters
type SavingsGoalEditable struct {
	Name         string          `json:"name" example:"Vacation" default:""`               // Name of the savings goal
	Note         string          `json:"note" example:"Two weeks in summer" default:""`    // Notes about the savings goal
	TargetAmount decimal.Decimal `json:"targetAmount" example:"2000" minimum:"0.00000001"` // The amount to save up
	SavedAmount  decimal.Decimal `json:"savedAmount" example:"350" minimum:"0" default:"0"` // The amount saved so far
	TargetMonth  *types.Month    `json:"targetMonth" example:"2025-06"`                    // Optional month the goal should be reached by
	Archived     bool            `json:"archived" example:"true" default:"false"`          // Is the savings goal archived?
}

func (editable SavingsGoalEditable) model() models.SavingsGoal {
	return models.SavingsGoal{
		Name:         editable.Name,
		Note:         editable.Note,
		TargetAmount: editable.TargetAmount,
		SavedAmount:  editable.SavedAmount,
		TargetMonth:  editable.TargetMonth,
		Archived:     editable.Archived,
	}
}

type SavingsGoalLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/goals/f81566d9-af4d-4f13-9830-c62c4b5e4c7e"` // The savings goal itself
}

type SavingsGoal struct {
	models.DefaultModel
	SavingsGoalEditable
	Links SavingsGoalLinks `json:"links"`

	// These fields are computed
	Progress decimal.Decimal `json:"progress" example:"17.5"` // Percentage of the target amount saved, clamped to 100
}

func newSavingsGoal(c *gin.Context, model models.SavingsGoal) SavingsGoal {
	url := c.GetString(string(models.DBContextURL))

	return SavingsGoal{
		DefaultModel: model.DefaultModel,
		SavingsGoalEditable: SavingsGoalEditable{
			Name:         model.Name,
			Note:         model.Note,
			TargetAmount: model.TargetAmount,
			SavedAmount:  model.SavedAmount,
			TargetMonth:  model.TargetMonth,
			Archived:     model.Archived,
		},
		Links: SavingsGoalLinks{
			Self: fmt.Sprintf("%s/v1/goals/%s", url, model.ID),
		},
		Progress: model.Progress(),
	}
}

type SavingsGoalListResponse struct {
	Data       []SavingsGoal `json:"data"`                                                          // List of Savings Goals
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type SavingsGoalCreateResponse struct {
	Data  []SavingsGoalResponse `json:"data"`                                                          // List of the created Savings Goals or their respective error
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (g *SavingsGoalCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	g.Data = append(g.Data, SavingsGoalResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type SavingsGoalResponse struct {
	Data  *SavingsGoal `json:"data"`                                                          // Data for the Savings Goal
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type SavingsGoalQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // By name
	Note     string `form:"note" filterField:"false"`   // By note
	Archived bool   `form:"archived"`                   // Is the Savings Goal archived?
	Search   string `form:"search" filterField:"false"` // By string in name or note
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first Savings Goal returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of Savings Goals to return. Defaults to 50.
}

func (f SavingsGoalQueryFilter) model() (models.SavingsGoal, error) {
	return models.SavingsGoal{
		Archived: f.Archived,
	}, nil
}

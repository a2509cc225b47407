package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	pl_uuid "github.com/pocketledger/backend/internal/uuid"
)

// RecurringTransactionEditable represents all user configurable parameters
type RecurringTransactionEditable struct {
	Description string                 `json:"description" example:"Rent" default:""`                      // Description for the generated transactions
	Amount      decimal.Decimal        `json:"amount" example:"1200" minimum:"0.00000001"`                 // The amount for the generated transactions
	Type        models.TransactionType `json:"type" example:"expense" default:"expense"`                   // Type of the generated transactions, one of income, expense
	AccountID   *uuid.UUID             `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`   // ID of the account
	CategoryID  *uuid.UUID             `json:"categoryId" example:"d5236e25-ffb8-4fd5-a707-3674a785e680"`  // ID of the category
	Frequency   types.Frequency        `json:"frequency" example:"monthly" default:"monthly"`              // How often a transaction is generated, one of daily, weekly, monthly, yearly
	StartDate   time.Time              `json:"startDate" example:"2024-01-01T00:00:00Z"`                   // Date of the first occurrence
	EndDate     *time.Time             `json:"endDate" example:"2024-12-31T00:00:00Z"`                     // Optional date after which no transactions are generated
}

func (editable RecurringTransactionEditable) model() models.RecurringTransaction {
	return models.RecurringTransaction{
		Description: editable.Description,
		Amount:      editable.Amount,
		Type:        editable.Type,
		AccountID:   editable.AccountID,
		CategoryID:  editable.CategoryID,
		Frequency:   editable.Frequency,
		StartDate:   editable.StartDate,
		EndDate:     editable.EndDate,
	}
}

type RecurringTransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/recurring/8f9687bd-6a5f-4524-9c29-d68d46033a31"` // The recurring transaction itself
}

type RecurringTransaction struct {
	models.DefaultModel
	RecurringTransactionEditable
	Links RecurringTransactionLinks `json:"links"`

	// These fields are managed by the server
	NextDueDate     time.Time  `json:"nextDueDate" example:"2024-04-01T00:00:00Z"`     // Date the next transaction will be generated for
	LastCreatedDate *time.Time `json:"lastCreatedDate" example:"2024-03-01T00:00:00Z"` // Date of the last generated transaction
	Expired         bool       `json:"expired" example:"false"`                        // True once the rule generates no further transactions
}

func newRecurringTransaction(c *gin.Context, model models.RecurringTransaction) RecurringTransaction {
	url := c.GetString(string(models.DBContextURL))

	return RecurringTransaction{
		DefaultModel: model.DefaultModel,
		RecurringTransactionEditable: RecurringTransactionEditable{
			Description: model.Description,
			Amount:      model.Amount,
			Type:        model.Type,
			AccountID:   model.AccountID,
			CategoryID:  model.CategoryID,
			Frequency:   model.Frequency,
			StartDate:   model.StartDate,
			EndDate:     model.EndDate,
		},
		Links: RecurringTransactionLinks{
			Self: fmt.Sprintf("%s/v1/recurring/%s", url, model.ID),
		},
		NextDueDate:     model.NextDueDate,
		LastCreatedDate: model.LastCreatedDate,
		Expired:         model.Expired(),
	}
}

type RecurringTransactionListResponse struct {
	Data       []RecurringTransaction `json:"data"`                                                          // List of Recurring Transactions
	Error      *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination            `json:"pagination"`                                                    // Pagination information
}

type RecurringTransactionCreateResponse struct {
	Data  []RecurringTransactionResponse `json:"data"`                                                          // List of the created Recurring Transactions or their respective error
	Error *string                        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *RecurringTransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, RecurringTransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RecurringTransactionResponse struct {
	Data  *RecurringTransaction `json:"data"`                                                          // Data for the Recurring Transaction
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RecurringTransactionQueryFilter struct {
	CategoryID pl_uuid.UUID           `form:"category"`                        // By ID of the Category
	AccountID  pl_uuid.UUID           `form:"account"`                         // By ID of the Account
	Type       models.TransactionType `form:"type"`                            // By type
	Frequency  types.Frequency        `form:"frequency"`                       // By frequency
	Search     string                 `form:"search" filterField:"false"`      // By string in the description
	Offset     uint                   `form:"offset" filterField:"false"`      // The offset of the first Recurring Transaction returned. Defaults to 0.
	Limit      int                    `form:"limit" filterField:"false"`       // Maximum number of Recurring Transactions to return. Defaults to 50.
}

func (f RecurringTransactionQueryFilter) model() (models.RecurringTransaction, error) {
	return models.RecurringTransaction{
		CategoryID: &f.CategoryID.UUID,
		AccountID:  &f.AccountID.UUID,
		Type:       f.Type,
		Frequency:  f.Frequency,
	}, nil
}

package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/models"
	pl_uuid "github.com/pocketledger/backend/internal/uuid"
)

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	Date        time.Time              `json:"date" example:"2024-03-17T00:00:00Z"`          // Date of the transaction
	Amount      decimal.Decimal        `json:"amount" example:"14.03" minimum:"0.00000001"`  // The amount, always positive
	Description string                 `json:"description" example:"Lunch" default:""`       // Description of the transaction
	Type        models.TransactionType `json:"type" example:"expense" default:"expense"`     // Type of the transaction, one of income, expense
	CategoryID  *uuid.UUID             `json:"categoryId" example:"d5236e25-ffb8-4fd5-a707-3674a785e680"` // ID of the category
	AccountID   *uuid.UUID             `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`  // ID of the account
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Date:        editable.Date,
		Amount:      editable.Amount,
		Description: editable.Description,
		Type:        editable.Type,
		CategoryID:  editable.CategoryID,
		AccountID:   editable.AccountID,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Links TransactionLinks `json:"links"`

	// Set on both legs of a transfer, null for all other transactions
	TransferID *uuid.UUID `json:"transferId" example:"99cc1ba9-11c6-4fd2-a469-1a24a6cdb446"`
	// For transfer legs: true on the leg that leaves its account
	Outgoing bool `json:"outgoing" example:"false"`
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Date:        model.Date,
			Amount:      model.Amount,
			Description: model.Description,
			Type:        model.Type,
			CategoryID:  model.CategoryID,
			AccountID:   model.AccountID,
		},
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
		TransferID: model.TransferID,
		Outgoing:   model.Outgoing,
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of Transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Data  []TransactionResponse `json:"data"`                                                          // List of the created Transactions or their respective error
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the Transaction
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	CategoryID  pl_uuid.UUID           `form:"category"`                        // By ID of the Category
	AccountID   pl_uuid.UUID           `form:"account"`                         // By ID of the Account
	Type        models.TransactionType `form:"type"`                            // By type
	Description string                 `form:"description" filterField:"false"` // By description
	Search      string                 `form:"search" filterField:"false"`      // By string in the description
	Offset      uint                   `form:"offset" filterField:"false"`      // The offset of the first Transaction returned. Defaults to 0.
	Limit       int                    `form:"limit" filterField:"false"`       // Maximum number of Transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() (models.Transaction, error) {
	return models.Transaction{
		CategoryID: &f.CategoryID.UUID,
		AccountID:  &f.AccountID.UUID,
		Type:       f.Type,
	}, nil
}

// TransferEditable represents the parameters for booking a transfer between
// two accounts.
type TransferEditable struct {
	FromAccountID pl_uuid.UUID    `json:"fromAccountId" binding:"required" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // ID of the account the money leaves
	ToAccountID   pl_uuid.UUID    `json:"toAccountId" binding:"required" example:"b2a8f6e1-6d53-4a74-b15c-9b8e19e431d1"`   // ID of the account the money arrives in
	Amount        decimal.Decimal `json:"amount" example:"250" minimum:"0.00000001"`                                       // The amount to transfer, always positive
	Description   string          `json:"description" example:"Monthly savings" default:""`                                // Description for both legs. Defaults to "Transfer from X to Y"
	Date          time.Time       `json:"date" example:"2024-03-17T00:00:00Z"`                                             // Date of the transfer
}

type TransferResponse struct {
	Data  []Transaction `json:"data"`                                                          // The two legs of the transfer
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

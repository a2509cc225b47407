package v1_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/test"
	"github.com/pocketledger/backend/internal/types"
)

func (suite *TestSuiteStandard) TestMonthFails() {
	tests := []struct {
		name   string
		path   string
		err    string
	}{
		{"No month", "/v1/months", errMonthNotSetText},
		{"Broken month", "/v1/months?month=March", ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, tt.path, "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.MonthResponse
			test.DecodeResponse(t, &r, &response)
			require.NotNil(t, response.Error)

			if tt.err != "" {
				assert.Equal(t, tt.err, *response.Error)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestMonth() {
	groceries := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries"})
	leisure := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Leisure"})
	salary := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Salary", Type: models.CategoryTypeIncome})

	march := time.Date(2024, 3, 12, 12, 0, 0, 0, time.UTC)

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Date:       march,
		Amount:     decimal.NewFromInt(180),
		CategoryID: &groceries.Data.ID,
	})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Date:       march.AddDate(0, 0, 5),
		Amount:     decimal.NewFromInt(70),
		CategoryID: &leisure.Data.ID,
	})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Date:       march,
		Amount:     decimal.NewFromInt(3000),
		Type:       models.TransactionTypeIncome,
		CategoryID: &salary.Data.ID,
	})

	// Outside of the requested month
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Date:       march.AddDate(0, 1, 0),
		Amount:     decimal.NewFromInt(9999),
		CategoryID: &groceries.Data.ID,
	})

	monthOf, err := types.ParseMonth("2024-03")
	require.Nil(suite.T(), err)
	_ = createTestMonthlyBudget(suite.T(), v1.MonthlyBudgetEditable{
		CategoryID:    groceries.Data.ID,
		Month:         monthOf,
		PlannedAmount: decimal.NewFromInt(250),
	})

	r := test.Request(suite.T(), http.MethodGet, "/v1/months?month=2024-03", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)

	data := response.Data
	assert.True(suite.T(), data.Income.Equal(decimal.NewFromInt(3000)), data.Income)
	assert.True(suite.T(), data.Spent.Equal(decimal.NewFromInt(250)), data.Spent)
	assert.True(suite.T(), data.Balance.Equal(decimal.NewFromInt(2750)), data.Balance)
	require.Len(suite.T(), data.Categories, 3)

	// Categories are ordered by name
	assert.Equal(suite.T(), "Groceries", data.Categories[0].Name)
	assert.Equal(suite.T(), "Leisure", data.Categories[1].Name)
	assert.Equal(suite.T(), "Salary", data.Categories[2].Name)

	g := data.Categories[0]
	assert.True(suite.T(), g.Spent.Equal(decimal.NewFromInt(180)), g.Spent)
	require.NotNil(suite.T(), g.PlannedAmount)
	assert.True(suite.T(), g.PlannedAmount.Equal(decimal.NewFromInt(250)))
	require.NotNil(suite.T(), g.Remaining)
	assert.True(suite.T(), g.Remaining.Equal(decimal.NewFromInt(70)), g.Remaining)

	// No monthly budget for this category and month
	l := data.Categories[1]
	assert.True(suite.T(), l.Spent.Equal(decimal.NewFromInt(70)), l.Spent)
	assert.Nil(suite.T(), l.PlannedAmount)
	assert.Nil(suite.T(), l.Remaining)

	s := data.Categories[2]
	assert.True(suite.T(), s.Income.Equal(decimal.NewFromInt(3000)), s.Income)
	assert.True(suite.T(), s.Spent.IsZero())
}

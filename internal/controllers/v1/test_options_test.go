package v1_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pocketledger/backend/internal/test"
)

func (suite *TestSuiteStandard) TestOptionsHeaderResources() {
	optionsHeaderTests := []struct {
		path     string
		response string
	}{
		{"http://example.com/v1", "OPTIONS, GET, DELETE"},
		{"http://example.com/v1/accounts", "OPTIONS, GET, POST"},
		{"http://example.com/v1/budgets", "OPTIONS, GET, POST"},
		{"http://example.com/v1/budgets/reset", "OPTIONS, POST"},
		{"http://example.com/v1/categories", "OPTIONS, GET, POST"},
		{"http://example.com/v1/export", "OPTIONS, GET"},
		{"http://example.com/v1/goals", "OPTIONS, GET, POST"},
		{"http://example.com/v1/match-rules", "OPTIONS, GET, POST"},
		{"http://example.com/v1/months", "OPTIONS, GET"},
		{"http://example.com/v1/monthly-budgets", "OPTIONS, GET, POST"},
		{"http://example.com/v1/monthly-budgets/materialize", "OPTIONS, POST"},
		{"http://example.com/v1/receipts", "OPTIONS, POST"},
		{"http://example.com/v1/recurring", "OPTIONS, GET, POST"},
		{"http://example.com/v1/transactions", "OPTIONS, GET, POST"},
		{"http://example.com/v1/transactions/transfer", "OPTIONS, POST"},
		{"http://example.com/v1/wishlist", "OPTIONS, GET, POST"},
	}

	for _, tt := range optionsHeaderTests {
		suite.T().Run(tt.path, func(t *testing.T) {
			recorder := test.Request(suite.T(), http.MethodOptions, tt.path, "")

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			assert.Equal(t, recorder.Header().Get("allow"), tt.response)
		})
	}
}

// TestMethodNotAllowed tests some endpoints with disallowed HTTP methods
// to verify that the HTTP 405 - Method Not Allowed status is returned
// correctly
func (suite *TestSuiteStandard) TestMethodNotAllowed() {
	tests := []struct {
		path   string
		method string
	}{
		{"/", http.MethodPost},
		{"/", http.MethodDelete},
		{"http://example.com/v1", http.MethodPut},
		{"http://example.com/v1/budgets", http.MethodHead},
		{"http://example.com/v1/budgets", http.MethodPut},
		{"http://example.com/v1/months", http.MethodPost},
	}

	for _, tt := range tests {
		suite.T().Run(tt.path+" "+tt.method, func(t *testing.T) {
			recorder := test.Request(t, tt.method, tt.path, "")

			test.AssertHTTPStatus(t, &recorder, http.StatusMethodNotAllowed)
		})
	}
}

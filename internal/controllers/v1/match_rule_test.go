package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/test"
)

func (suite *TestSuiteStandard) TestMatchRulesCreateFails() {
	tests := []struct {
		name     string
		body     any
		status   int
		testFunc func(t *testing.T, r v1.MatchRuleCreateResponse)
	}{
		{
			"No body", "", http.StatusBadRequest,
			func(t *testing.T, r v1.MatchRuleCreateResponse) {
				assert.Equal(t, "the request body must not be empty", *r.Error)
			},
		},
		{
			"Unknown category",
			[]v1.MatchRuleEditable{{Match: "EDEKA*", CategoryID: uuid.New()}},
			http.StatusNotFound,
			func(t *testing.T, r v1.MatchRuleCreateResponse) {
				assert.Equal(t, "there is no category matching your query", *r.Data[0].Error)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/match-rules", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.MatchRuleCreateResponse
			test.DecodeResponse(t, &r, &response)

			if tt.testFunc != nil {
				tt.testFunc(t, response)
			}
		})
	}
}

// Rules are returned in application order, ascending priority.
func (suite *TestSuiteStandard) TestMatchRulesOrder() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	_ = createTestMatchRule(suite.T(), v1.MatchRuleEditable{
		Priority:   10,
		Match:      "REWE*",
		CategoryID: category.Data.ID,
	})
	_ = createTestMatchRule(suite.T(), v1.MatchRuleEditable{
		Priority:   1,
		Match:      "EDEKA*",
		CategoryID: category.Data.ID,
	})

	var response v1.MatchRuleListResponse
	r := test.Request(suite.T(), http.MethodGet, "/v1/match-rules", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), "EDEKA*", response.Data[0].Match)
	assert.Equal(suite.T(), "REWE*", response.Data[1].Match)
}

func (suite *TestSuiteStandard) TestMatchRulesGetFilter() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	other := createTestCategory(suite.T(), v1.CategoryEditable{})

	_ = createTestMatchRule(suite.T(), v1.MatchRuleEditable{
		Priority:   1,
		Match:      "EDEKA*",
		CategoryID: category.Data.ID,
	})
	_ = createTestMatchRule(suite.T(), v1.MatchRuleEditable{
		Priority:   2,
		Match:      "Shell*",
		CategoryID: other.Data.ID,
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All match rules", "", 2},
		{"By category", fmt.Sprintf("category=%s", category.Data.ID), 1},
		{"By priority", "priority=2", 1},
		{"Fuzzy match", "match=shell", 1},
		{"No results", "match=DOESNOTEXIST", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var re v1.MatchRuleListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("/v1/match-rules?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &re)

			assert.Equal(t, tt.len, len(re.Data), "Request ID: %s", r.Result().Header.Get("x-request-id"))
		})
	}
}

func (suite *TestSuiteStandard) TestMatchRulesUpdate() {
	rule := createTestMatchRule(suite.T(), v1.MatchRuleEditable{
		Match:      "EDEKA*",
		CategoryID: createTestCategory(suite.T(), v1.CategoryEditable{}).Data.ID,
	})

	r := test.Request(suite.T(), http.MethodPatch, rule.Data.Links.Self, map[string]any{
		"match": "EDEKA * Hamburg",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.MatchRuleResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), "EDEKA * Hamburg", updated.Data.Match)
}

func (suite *TestSuiteStandard) TestMatchRulesDelete() {
	rule := createTestMatchRule(suite.T(), v1.MatchRuleEditable{
		Match:      "EDEKA*",
		CategoryID: createTestCategory(suite.T(), v1.CategoryEditable{}).Data.ID,
	})

	r := test.Request(suite.T(), http.MethodDelete, rule.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, rule.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/test"
)

func (suite *TestSuiteStandard) TestWishlistCreateFails() {
	tests := []struct {
		name     string
		body     any
		status   int
		testFunc func(t *testing.T, r v1.WishlistItemCreateResponse)
	}{
		{
			"No body", "", http.StatusBadRequest,
			func(t *testing.T, r v1.WishlistItemCreateResponse) {
				assert.Equal(t, "the request body must not be empty", *r.Error)
			},
		},
		{
			"Negative price",
			[]v1.WishlistItemEditable{{Name: "Free money", Price: decimal.NewFromInt(-100)}},
			http.StatusBadRequest,
			func(t *testing.T, r v1.WishlistItemCreateResponse) {
				assert.Equal(t, models.ErrWishlistPriceNegative.Error(), *r.Data[0].Error)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/wishlist", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.WishlistItemCreateResponse
			test.DecodeResponse(t, &r, &response)

			if tt.testFunc != nil {
				tt.testFunc(t, response)
			}
		})
	}
}

// Items are sorted by priority first, lower numbers are more important.
func (suite *TestSuiteStandard) TestWishlistOrder() {
	_ = createTestWishlistItem(suite.T(), v1.WishlistItemEditable{
		Name:     "Standing desk",
		Price:    decimal.NewFromInt(500),
		Priority: 2,
	})
	_ = createTestWishlistItem(suite.T(), v1.WishlistItemEditable{
		Name:     "New laptop",
		Price:    decimal.NewFromInt(1299),
		Priority: 1,
	})
	_ = createTestWishlistItem(suite.T(), v1.WishlistItemEditable{
		Name:     "Headphones",
		Price:    decimal.NewFromInt(250),
		Priority: 1,
	})

	var response v1.WishlistItemListResponse
	r := test.Request(suite.T(), http.MethodGet, "/v1/wishlist", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Len(suite.T(), response.Data, 3)
	assert.Equal(suite.T(), "Headphones", response.Data[0].Name)
	assert.Equal(suite.T(), "New laptop", response.Data[1].Name)
	assert.Equal(suite.T(), "Standing desk", response.Data[2].Name)
}

func (suite *TestSuiteStandard) TestWishlistGetFilter() {
	_ = createTestWishlistItem(suite.T(), v1.WishlistItemEditable{
		Name:     "New laptop",
		Note:     "Wait for a sale",
		Price:    decimal.NewFromInt(1299),
		Priority: 1,
	})
	_ = createTestWishlistItem(suite.T(), v1.WishlistItemEditable{
		Name:      "Kettle",
		Price:     decimal.NewFromInt(40),
		Priority:  3,
		Purchased: true,
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All items", "", 2},
		{"Priority", "priority=1", 1},
		{"Purchased", "purchased=true", 1},
		{"Not purchased", "purchased=false", 1},
		{"Name", "name=laptop", 1},
		{"Search", "search=sale", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var re v1.WishlistItemListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("/v1/wishlist?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &re)

			assert.Equal(t, tt.len, len(re.Data), "Request ID: %s", r.Result().Header.Get("x-request-id"))
		})
	}
}

func (suite *TestSuiteStandard) TestWishlistPurchase() {
	item := createTestWishlistItem(suite.T(), v1.WishlistItemEditable{
		Name:  "Headphones",
		Price: decimal.NewFromInt(250),
	})
	assert.False(suite.T(), item.Data.Purchased)

	r := test.Request(suite.T(), http.MethodPatch, item.Data.Links.Self, map[string]any{
		"purchased": true,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.WishlistItemResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.True(suite.T(), updated.Data.Purchased)
}

func (suite *TestSuiteStandard) TestWishlistDelete() {
	item := createTestWishlistItem(suite.T(), v1.WishlistItemEditable{Name: "Headphones"})

	r := test.Request(suite.T(), http.MethodDelete, item.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, item.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

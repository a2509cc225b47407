package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
)

func RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.DELETE("", Cleanup)
	r.OPTIONS("", Options)
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Accounts       string `json:"accounts" example:"https://example.com/api/v1/accounts"`              // URL of Account collection endpoint
	Budgets        string `json:"budgets" example:"https://example.com/api/v1/budgets"`                // URL of Budget collection endpoint
	Categories     string `json:"categories" example:"https://example.com/api/v1/categories"`          // URL of Category collection endpoint
	Export         string `json:"export" example:"https://example.com/api/v1/export"`                  // URL of the export endpoint
	Goals          string `json:"goals" example:"https://example.com/api/v1/goals"`                    // URL of Savings Goal collection endpoint
	MatchRules     string `json:"matchRules" example:"https://example.com/api/v1/match-rules"`         // URL of Match Rule collection endpoint
	Months         string `json:"months" example:"https://example.com/api/v1/months"`                  // URL of the Month summary endpoint
	MonthlyBudgets string `json:"monthlyBudgets" example:"https://example.com/api/v1/monthly-budgets"` // URL of Monthly Budget collection endpoint
	Receipts       string `json:"receipts" example:"https://example.com/api/v1/receipts"`              // URL of the receipt scanning endpoint
	Recurring      string `json:"recurring" example:"https://example.com/api/v1/recurring"`            // URL of Recurring Transaction collection endpoint
	Transactions   string `json:"transactions" example:"https://example.com/api/v1/transactions"`      // URL of Transaction collection endpoint
	Wishlist       string `json:"wishlist" example:"https://example.com/api/v1/wishlist"`              // URL of Wishlist Item collection endpoint
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Accounts:       url + "/v1/accounts",
			Budgets:        url + "/v1/budgets",
			Categories:     url + "/v1/categories",
			Export:         url + "/v1/export",
			Goals:          url + "/v1/goals",
			MatchRules:     url + "/v1/match-rules",
			Months:         url + "/v1/months",
			MonthlyBudgets: url + "/v1/monthly-budgets",
			Receipts:       url + "/v1/receipts",
			Recurring:      url + "/v1/recurring",
			Transactions:   url + "/v1/transactions",
			Wishlist:       url + "/v1/wishlist",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}

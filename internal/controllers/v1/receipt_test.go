package v1_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/test"
)

// pngFile is a minimal payload that content sniffing detects as image/png.
var pngFile = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...)

// multipartBody builds a multipart form with a single "file" field and
// returns the body and the matching Content-Type header.
func multipartBody(t *testing.T, fileName string, content []byte) (string, map[string]string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", fileName)
	require.Nil(t, err)

	_, err = part.Write(content)
	require.Nil(t, err)
	require.Nil(t, writer.Close())

	return buf.String(), map[string]string{"Content-Type": writer.FormDataContentType()}
}

// ocrServer fakes the OCR API, returning the passed payload as the only
// output item.
func ocrServer(t *testing.T, payload any) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		raw, err := json.Marshal(payload)
		require.Nil(t, err)

		err = json.NewEncoder(w).Encode(map[string]any{
			"output_text": []string{string(raw)},
		})
		require.Nil(t, err)
	}))

	t.Cleanup(server.Close)
	t.Cleanup(func() { os.Unsetenv("OCR_URL") })
	os.Setenv("OCR_URL", server.URL)

	return server
}

func (suite *TestSuiteStandard) TestReceiptsUploadFails() {
	textBody, textHeaders := multipartBody(suite.T(), "receipt.txt", []byte("this is not an image"))

	tests := []struct {
		name    string
		body    string
		headers map[string]string
		err     string
	}{
		{"No file", "", nil, "you must send a file to this endpoint"},
		{"Wrong file type", textBody, textHeaders, "this endpoint only supports JPEG, PNG and PDF files"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var r httptest.ResponseRecorder
			if tt.headers == nil {
				r = test.Request(t, http.MethodPost, "http://example.com/v1/receipts", tt.body)
			} else {
				r = test.Request(t, http.MethodPost, "http://example.com/v1/receipts", tt.body, tt.headers)
			}
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.ReceiptScanResponse
			test.DecodeResponse(t, &r, &response)
			require.NotNil(t, response.Error)
			assert.Equal(t, tt.err, *response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestReceiptsScan() {
	groceries := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries"})

	_ = ocrServer(suite.T(), map[string]any{
		"description":       "Weekly shopping",
		"amount":            "23.45",
		"date":              "2024-03-17",
		"merchant":          "EDEKA Hamburg",
		"confidence":        87,
		"suggestedCategory": "groceries",
		"uncertainties":     []string{"tip"},
		"rawText":           "EDEKA Hamburg EUR 23,45",
	})

	body, headers := multipartBody(suite.T(), "receipt.png", pngFile)
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/receipts", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ReceiptScanResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)

	data := response.Data
	assert.Equal(suite.T(), "Weekly shopping", data.Description)
	assert.True(suite.T(), data.Amount.Equal(decimal.NewFromFloat(23.45)), data.Amount)
	assert.Equal(suite.T(), "EDEKA Hamburg", data.Merchant)
	assert.Equal(suite.T(), float64(87), data.Confidence)
	assert.Equal(suite.T(), []string{"tip"}, data.Uncertainties)
	assert.Equal(suite.T(), 2024, data.Date.Year())

	// The category name match is not case sensitive
	require.NotNil(suite.T(), data.SuggestedCategoryID)
	assert.Equal(suite.T(), groceries.Data.ID, *data.SuggestedCategoryID)
}

// A match rule on the merchant name wins over the category suggested by
// the OCR API.
func (suite *TestSuiteStandard) TestReceiptsScanMatchRulePrecedence() {
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries"})
	weekendShopping := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Weekend shopping"})

	_ = createTestMatchRule(suite.T(), v1.MatchRuleEditable{
		Priority:   1,
		Match:      "EDEKA*",
		CategoryID: weekendShopping.Data.ID,
	})

	_ = ocrServer(suite.T(), map[string]any{
		"description":       "Weekly shopping",
		"amount":            "23.45",
		"merchant":          "EDEKA Hamburg",
		"confidence":        90,
		"suggestedCategory": "Groceries",
	})

	body, headers := multipartBody(suite.T(), "receipt.png", pngFile)
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/receipts", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ReceiptScanResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)
	require.NotNil(suite.T(), response.Data.SuggestedCategoryID)
	assert.Equal(suite.T(), weekendShopping.Data.ID, *response.Data.SuggestedCategoryID)
}

func (suite *TestSuiteStandard) TestReceiptsScanNoSuggestion() {
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries"})

	_ = ocrServer(suite.T(), map[string]any{
		"description": "Dinner",
		"amount":      "42",
		"merchant":    "Grill House",
		"confidence":  70,
	})

	body, headers := multipartBody(suite.T(), "receipt.png", pngFile)
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/receipts", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ReceiptScanResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)
	assert.Nil(suite.T(), response.Data.SuggestedCategoryID)
}

func (suite *TestSuiteStandard) TestReceiptsScanAPIError() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	suite.T().Cleanup(server.Close)
	suite.T().Cleanup(func() { os.Unsetenv("OCR_URL") })
	os.Setenv("OCR_URL", server.URL)

	body, headers := multipartBody(suite.T(), "receipt.png", pngFile)
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/receipts", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadGateway)

	var response v1.ReceiptScanResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Error)
	assert.Contains(suite.T(), *response.Error, fmt.Sprint(http.StatusInternalServerError))
}

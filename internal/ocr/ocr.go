package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Minimal client for the generative OCR API. The request mirrors the
// documented wire format, unknown fields are omitted.

var (
	ErrEmptyResponse = errors.New("the OCR API returned an empty response")
	ErrInvalidResult = errors.New("the OCR API returned a response that could not be parsed")
)

type Client struct {
	url    string
	apiKey string
	model  string
	http   *http.Client
}

func NewClient(url, apiKey, model string) *Client {
	return &Client{
		url:    url,
		apiKey: apiKey,
		model:  model,
		http:   &http.Client{Timeout: 60 * time.Second},
	}
}

type request struct {
	Model string    `json:"model"`
	Input []message `json:"input"`
}

type message struct {
	Role    string `json:"role"`
	Content []part `json:"content"`
}

type part struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Image string `json:"image,omitempty"`
}

type response struct {
	Output []string `json:"output_text"`
}

// Result is the sanitized payload extracted from a receipt.
type Result struct {
	Description       string           `json:"description"`
	Amount            decimal.Decimal  `json:"amount"`
	Date              time.Time        `json:"date"`
	Merchant          string           `json:"merchant"`
	Tax               *decimal.Decimal `json:"tax"`
	Tip               *decimal.Decimal `json:"tip"`
	Confidence        float64          `json:"confidence"`
	SuggestedCategory string           `json:"suggestedCategory"`
	Uncertainties     []string         `json:"uncertainties"`
	RawText           string           `json:"rawText"`
}

// wireResult is the raw payload before sanitization. The date is kept as a
// string since the API does not guarantee a parseable value.
type wireResult struct {
	Description       string           `json:"description"`
	Amount            decimal.Decimal  `json:"amount"`
	Date              string           `json:"date"`
	Merchant          string           `json:"merchant"`
	Tax               *decimal.Decimal `json:"tax"`
	Tip               *decimal.Decimal `json:"tip"`
	Confidence        float64          `json:"confidence"`
	SuggestedCategory string           `json:"suggestedCategory"`
	Uncertainties     []string         `json:"uncertainties"`
	RawText           string           `json:"rawText"`
}

const prompt = "Extract the data from this receipt. Respond with a single JSON object " +
	"with the fields description, amount, date (ISO 8601), merchant, tax, tip, " +
	"confidence (a number between 0 and 100), suggestedCategory, uncertainties " +
	"(a list of strings) and rawText. Pick suggestedCategory from this list or " +
	"leave it empty: %s"

// Scan sends the image to the OCR API and returns the sanitized result.
//
// The caller is responsible for validating the file type and size, Scan
// does not inspect the image.
func (c *Client) Scan(ctx context.Context, image []byte, mimeType string, categories []string) (Result, error) {
	body, err := json.Marshal(request{
		Model: c.model,
		Input: []message{
			{
				Role: "user",
				Content: []part{
					{Type: "input_text", Text: fmt.Sprintf(prompt, strings.Join(categories, ", "))},
					{Type: "input_image", Image: fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))},
				},
			},
		},
	})
	if err != nil {
		return Result{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return Result{}, fmt.Errorf("ocr: http %d: %v", resp.StatusCode, apiErr)
	}

	var out response
	err = json.NewDecoder(resp.Body).Decode(&out)
	if err != nil {
		return Result{}, err
	}

	if len(out.Output) == 0 {
		return Result{}, ErrEmptyResponse
	}

	var raw wireResult
	err = json.Unmarshal([]byte(stripFences(out.Output[0])), &raw)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrInvalidResult, err)
	}

	return sanitize(raw, time.Now()), nil
}

// stripFences removes a markdown code fence around the payload. Models wrap
// JSON in fences even when told not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// sanitize clamps and parses the raw fields so that downstream code never
// sees values outside their documented ranges.
func sanitize(raw wireResult, now time.Time) Result {
	confidence := raw.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}

	amount := raw.Amount
	if amount.IsNegative() {
		amount = decimal.Zero
	}

	date := parseDate(raw.Date, now)

	return Result{
		Description:       strings.TrimSpace(raw.Description),
		Amount:            amount,
		Date:              date,
		Merchant:          strings.TrimSpace(raw.Merchant),
		Tax:               raw.Tax,
		Tip:               raw.Tip,
		Confidence:        confidence,
		SuggestedCategory: strings.TrimSpace(raw.SuggestedCategory),
		Uncertainties:     raw.Uncertainties,
		RawText:           raw.RawText,
	}
}

// parseDate accepts ISO 8601 dates with or without a time component and
// falls back to today when the value is unparseable.
func parseDate(s string, now time.Time) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		date, err := time.Parse(layout, s)
		if err == nil {
			return date
		}
	}

	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

package v1

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/ocr"
)

// receiptMaxSize is the upper bound for uploaded receipt files.
const receiptMaxSize = 10 << 20

var receiptMimeTypes = []string{"image/jpeg", "image/png", "application/pdf"}

// ReceiptScan is the sanitized result of scanning a receipt, enriched with
// the category suggestion.
type ReceiptScan struct {
	Description   string           `json:"description" example:"Lunch"`            // Suggested description for the transaction
	Amount        decimal.Decimal  `json:"amount" example:"14.5"`                  // The receipt total
	Date          time.Time        `json:"date" example:"2024-03-17T00:00:00Z"`    // Date on the receipt. Defaults to today when it can not be read
	Merchant      string           `json:"merchant" example:"Grill House"`         // The merchant name
	Tax           *decimal.Decimal `json:"tax" example:"1.2"`                      // Tax, if it could be read
	Tip           *decimal.Decimal `json:"tip" example:"2"`                        // Tip, if it could be read
	Confidence    float64          `json:"confidence" example:"87" minimum:"0" maximum:"100"` // How confident the OCR API is in the result
	Uncertainties []string         `json:"uncertainties"`                          // Fields the OCR API was unsure about
	RawText       string           `json:"rawText"`                                // The raw text read from the receipt

	// ID of the suggested category. Match rules on the merchant name take
	// precedence over the OCR API's suggestion. Null when nothing matched.
	SuggestedCategoryID *uuid.UUID `json:"suggestedCategoryId" example:"d5236e25-ffb8-4fd5-a707-3674a785e680"`
}

type ReceiptScanResponse struct {
	Data  *ReceiptScan `json:"data"`                                              // Data for the scanned receipt
	Error *string      `json:"error" example:"you must send a file to this endpoint"` // The error, if any occurred
}

// RegisterReceiptRoutes registers the routes for receipt scanning with
// the RouterGroup that is passed.
func RegisterReceiptRoutes(r *gin.RouterGroup, client *ocr.Client) {
	r.OPTIONS("", OptionsReceipt)
	r.POST("", ScanReceipt(client))
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Receipts
// @Success		204
// @Router			/v1/receipts [options]
func OptionsReceipt(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Scan receipt
// @Description	Scans a receipt file and returns the extracted data with a category suggestion
// @Tags			Receipts
// @Accept			multipart/form-data
// @Produce		json
// @Success		200		{object}	ReceiptScanResponse
// @Failure		400		{object}	ReceiptScanResponse
// @Failure		500		{object}	ReceiptScanResponse
// @Param			file	formData	file	true	"The receipt, a JPEG, PNG or PDF of up to 10MB"
// @Router			/v1/receipts [post]
func ScanReceipt(client *ocr.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		image, mimeType, err := getUploadedReceipt(c)
		if err != nil {
			e := err.Error()
			c.JSON(http.StatusBadRequest, ReceiptScanResponse{Error: &e})
			return
		}

		var categories []models.Category
		err = models.DB.Where(&models.Category{Archived: false}).Find(&categories).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), ReceiptScanResponse{Error: &e})
			return
		}

		names := make([]string, 0, len(categories))
		for _, category := range categories {
			names = append(names, category.Name)
		}

		result, err := client.Scan(c.Request.Context(), image, mimeType, names)
		if err != nil {
			e := err.Error()
			c.JSON(http.StatusBadGateway, ReceiptScanResponse{Error: &e})
			return
		}

		data := ReceiptScan{
			Description:   result.Description,
			Amount:        result.Amount,
			Date:          result.Date,
			Merchant:      result.Merchant,
			Tax:           result.Tax,
			Tip:           result.Tip,
			Confidence:    result.Confidence,
			Uncertainties: result.Uncertainties,
			RawText:       result.RawText,
		}

		id, err := suggestCategory(categories, result)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), ReceiptScanResponse{Error: &e})
			return
		}
		data.SuggestedCategoryID = id

		c.JSON(http.StatusOK, ReceiptScanResponse{Data: &data})
	}
}

// getUploadedReceipt returns the receipt file's content and MIME type and
// handles potential errors.
func getUploadedReceipt(c *gin.Context) ([]byte, string, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, "", errNoFilePost
	}

	if err != nil {
		return nil, "", err
	}

	if formFile.Size > receiptMaxSize {
		return nil, "", errReceiptFileTooLarge
	}

	file, err := formFile.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}

	// The file type is checked on the content, the upload's file name is
	// not trusted
	mimeType := http.DetectContentType(image)
	if !slices.Contains(receiptMimeTypes, mimeType) {
		return nil, "", errReceiptFileType
	}

	return image, mimeType, nil
}

// suggestCategory resolves the category for a scanned receipt. Match rules
// on the merchant name win over the OCR API's suggestion.
func suggestCategory(categories []models.Category, result ocr.Result) (*uuid.UUID, error) {
	if result.Merchant != "" {
		rules, err := models.MatchRulesByPriority(models.DB)
		if err != nil {
			return nil, err
		}

		for _, rule := range rules {
			if glob.Glob(rule.Match, result.Merchant) {
				id := rule.CategoryID
				return &id, nil
			}
		}
	}

	for _, category := range categories {
		if strings.EqualFold(category.Name, result.SuggestedCategory) && result.SuggestedCategory != "" {
			id := category.ID
			return &id, nil
		}
	}

	return nil, nil
}

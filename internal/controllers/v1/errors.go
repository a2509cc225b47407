package v1

import (
	"errors"
	"net/http"

	"github.com/pocketledger/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errMonthNotSetInQuery  = errors.New("the month query parameter must be set")
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
)

// Transfer errors
var (
	errTransferFromToRequired = errors.New("the fromAccountId and toAccountId parameters must be set")
)

// Receipt errors
var (
	errNoFilePost          = errors.New("you must send a file to this endpoint")
	errReceiptFileType     = errors.New("this endpoint only supports JPEG, PNG and PDF files")
	errReceiptFileTooLarge = errors.New("the file must not be larger than 10MB")
)

package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Messages returned in {message} error bodies.
const (
	MsgNoInvoiceData    = "No invoice data provided"
	MsgDatabaseError    = "Database error"
	MsgServerError      = "Server error while saving invoice(s)."
	MsgNothingToExport  = "No invoices to export"
	MsgImportNotFound   = "import batch not found"
	MsgInvalidImportID  = "invalid import batch ID"
	MsgFileRequired     = "file required"
	MsgExportFailed     = "Failed to export invoices"
	MsgInvalidInputBody = "Invalid input format"
	MsgBodyTooLarge     = "Request body too large"
	MsgFileTooLarge     = "file too large"
	MsgInvoiceNotFound  = "invoice not found"
	MsgInvalidInvoiceID = "invalid invoice ID"
)

// MessageResponse is the body of every error response.
type MessageResponse struct {
	Message string `json:"message"`
}

func respondWithError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, MessageResponse{Message: message})
}

func respondBadRequest(c *gin.Context, message string) {
	respondWithError(c, http.StatusBadRequest, message)
}

func respondNotFound(c *gin.Context, message string) {
	respondWithError(c, http.StatusNotFound, message)
}

func respondInternalServerError(c *gin.Context, message string) {
	respondWithError(c, http.StatusInternalServerError, message)
}

// isTooLarge reports whether err came from an http.MaxBytesReader limit.
func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// getQueryInt retrieves an integer query parameter; absent means 0.
func getQueryInt(c *gin.Context, paramName string) (int, error) {
	valueStr := c.Query(paramName)
	if valueStr == "" {
		return 0, nil
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", paramName)
	}
	if value < 1 {
		return 0, fmt.Errorf("invalid %s: must be greater than 0", paramName)
	}
	return value, nil
}

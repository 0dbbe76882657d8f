package invoices

import "errors"

var (
	// ErrNoInvoiceData rejects a create request that carries no rows at all.
	ErrNoInvoiceData = errors.New("no invoice data provided")
	// ErrInvalidListParams wraps malformed pagination input.
	ErrInvalidListParams = errors.New("invalid list parameters")
	// ErrInvalidPayload wraps a create body that is neither {data: [...]} nor a row object.
	ErrInvalidPayload = errors.New("invalid request body")
)

// Reasons reported for skipped rows.
const (
	ReasonMissingFields = "Missing required fields"
	ReasonInvalidAmount = "Invalid amount"
)

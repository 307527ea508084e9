package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Standard error codes for pipeline and API failures
const (
	ErrCodeDatasetNotFound     = "DATASET_NOT_FOUND"
	ErrCodeEmptyDataset        = "EMPTY_DATASET"
	ErrCodeMissingColumn       = "MISSING_COLUMN"
	ErrCodeDuplicateRestaurant = "DUPLICATE_RESTAURANT"
	ErrCodeUnknownReport       = "UNKNOWN_REPORT"
	ErrCodeUnauthorised        = "UNAUTHORIZED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// DomainError carries a stable error code alongside a human-readable message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrDatasetNotFound     = NewDomainError(ErrCodeDatasetNotFound, "Dataset file could not be opened")
	ErrEmptyDataset        = NewDomainError(ErrCodeEmptyDataset, "Dataset contains no data rows")
	ErrMissingColumn       = NewDomainError(ErrCodeMissingColumn, "Dataset is missing a required column")
	ErrDuplicateRestaurant = NewDomainError(ErrCodeDuplicateRestaurant, "Restaurant ID already exists in the store")
	ErrUnknownReport       = NewDomainError(ErrCodeUnknownReport, "No report registered under that name")
)

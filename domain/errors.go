package domain

import (
	"errors"
	"fmt"
)

// DomainError represents errors in the domain layer
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e DomainError) Unwrap() error {
	return e.Cause
}

// Domain error codes
const (
	ErrCodeInvalidInput          = "INVALID_INPUT"
	ErrCodeBatchFatal            = "BATCH_FATAL"
	ErrCodeEntryFailure          = "ENTRY_FAILURE"
	ErrCodeUnrecognizedExtension = "UNRECOGNIZED_EXTENSION"
	ErrCodeParseError            = "PARSE_ERROR"
	ErrCodeNormalizeError        = "NORMALIZE_ERROR"
	ErrCodeComputationFatal      = "COMPUTATION_FATAL"
	ErrCodeInsufficientInput     = "INSUFFICIENT_INPUT"
	ErrCodeConfigError           = "CONFIG_ERROR"
	ErrCodeOutputError           = "OUTPUT_ERROR"
	ErrCodeUnsupportedFormat     = "UNSUPPORTED_FORMAT"
)

// ErrInsufficientInput is returned when similarity is requested over fewer
// than two trees. It is a distinct outcome and never a zero distance.
var ErrInsufficientInput = NewDomainError(ErrCodeInsufficientInput,
	"similarity requires at least two parsed files", nil)

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) error {
	return DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsCode reports whether any DomainError in err's chain carries code.
func IsCode(err error, code string) bool {
	for err != nil {
		var de DomainError
		if !errors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Cause
	}
	return false
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewBatchFatalError creates an error that aborts a whole ingestion batch
func NewBatchFatalError(message string, cause error) error {
	return NewDomainError(ErrCodeBatchFatal, message, cause)
}

// NewEntryFailureError creates an isolated per-entry failure
func NewEntryFailureError(entry string, cause error) error {
	return NewDomainError(ErrCodeEntryFailure, fmt.Sprintf("failed to process entry: %s", entry), cause)
}

// NewUnrecognizedExtensionError creates an unrecognized extension error
func NewUnrecognizedExtensionError(filename string) error {
	return NewDomainError(ErrCodeUnrecognizedExtension, fmt.Sprintf("unrecognized extension: %s", filename), nil)
}

// NewParseError creates a parse error
func NewParseError(file string, cause error) error {
	return NewDomainError(ErrCodeParseError, fmt.Sprintf("failed to parse file: %s", file), cause)
}

// NewNormalizeError creates a normalization error
func NewNormalizeError(message string, cause error) error {
	return NewDomainError(ErrCodeNormalizeError, message, cause)
}

// NewComputationFatalError creates an error for edit distance computations on
// malformed trees. It must be propagated, never absorbed.
func NewComputationFatalError(message string, cause error) error {
	return NewDomainError(ErrCodeComputationFatal, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewOutputError creates an output error
func NewOutputError(message string, cause error) error {
	return NewDomainError(ErrCodeOutputError, message, cause)
}

// NewUnsupportedFormatError creates an unsupported format error
func NewUnsupportedFormatError(format string) error {
	return NewDomainError(ErrCodeUnsupportedFormat, fmt.Sprintf("unsupported format: %s", format), nil)
}

// NewValidationError creates a validation error
func NewValidationError(message string) error {
	return NewDomainError(ErrCodeInvalidInput, message, nil)
}

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	ErrorCategoryInput      ErrorCategory = "Input Error"
	ErrorCategoryConfig     ErrorCategory = "Configuration Error"
	ErrorCategoryProcessing ErrorCategory = "Processing Error"
	ErrorCategoryOutput     ErrorCategory = "Output Error"
	ErrorCategoryTimeout    ErrorCategory = "Timeout Error"
	ErrorCategoryUnknown    ErrorCategory = "Unknown Error"
)

// CategorizedError represents an error with category information
type CategorizedError struct {
	Category ErrorCategory
	Message  string
	Original error
}

// Error implements the error interface
func (e *CategorizedError) Error() string {
	if e.Original != nil {
		return e.Original.Error()
	}
	return e.Message
}

// Unwrap returns the categorized error
func (e *CategorizedError) Unwrap() error {
	return e.Original
}

// ErrorCategorizer categorizes errors for better reporting
type ErrorCategorizer interface {
	// Categorize determines the category of an error
	Categorize(err error) *CategorizedError

	// GetRecoverySuggestions returns recovery suggestions for an error category
	GetRecoverySuggestions(category ErrorCategory) []string
}

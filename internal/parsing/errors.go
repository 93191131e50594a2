package parsing

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-engine/internal/llm"
	"github.com/jonathan/resume-engine/internal/schemas"
)

// Fallback reasons recorded on degraded documents
const (
	ReasonEmptyInput        = "empty_input"
	ReasonOracleUnavailable = "oracle_unavailable"
	ReasonOracleError       = "oracle_error"
	ReasonBreakerOpen       = "breaker_open"
	ReasonInvalidJSON       = "invalid_json"
	ReasonSchemaMismatch    = "schema_mismatch"
)

// OracleError represents a failed call to the extraction oracle
type OracleError struct {
	Message string
	Cause   error
}

func (e *OracleError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("oracle call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("oracle call failed: %s", e.Message)
}

func (e *OracleError) Unwrap() error {
	return e.Cause
}

// ParseError represents oracle output that could not be turned into a document
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// errEmptyInput marks documents with no text left after cleaning
var errEmptyInput = errors.New("no text to extract")

// Reason classifies an extraction error as a fallback reason
func Reason(err error) string {
	var (
		validationErr *schemas.ValidationError
		repairErr     *llm.RepairError
		oracleErr     *OracleError
	)
	switch {
	case errors.Is(err, errEmptyInput):
		return ReasonEmptyInput
	case errors.Is(err, llm.ErrBreakerOpen):
		return ReasonBreakerOpen
	case errors.As(err, &validationErr):
		return ReasonSchemaMismatch
	case errors.As(err, &repairErr):
		return ReasonInvalidJSON
	case errors.As(err, &oracleErr):
		if oracleErr.Cause == nil {
			return ReasonOracleUnavailable
		}
		return ReasonOracleError
	default:
		return ReasonInvalidJSON
	}
}

package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-engine/internal/matching"
)

// ErrValidation indicates a request that failed validation
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable indicates a component the request needs is not configured
type ErrUnavailable struct {
	Component string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not configured", e.Component)
}

// HTTPStatus returns the HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		requirementErr *matching.RequirementError
		fieldErrs      validator.ValidationErrors
		unavailableErr *ErrUnavailable
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &requirementErr), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	case errors.As(err, &unavailableErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// validationMessage flattens validator errors into one readable line
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}
	fe := fieldErrs[0]
	msg := fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
	if fe.Param() != "" {
		msg += fmt.Sprintf(" (%s)", fe.Param())
	}
	if len(fieldErrs) > 1 {
		msg += fmt.Sprintf(" and %d more", len(fieldErrs)-1)
	}
	return msg
}

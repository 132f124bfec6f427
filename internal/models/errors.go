package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes used across the domain layer. Handlers translate them to
// HTTP statuses at the boundary.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInternal     = "INTERNAL_ERROR"
)

// IncludeErrorDetails controls whether wrapped error detail is echoed in
// responses. Set once at boot; true outside production.
var IncludeErrorDetails = false

// AppError is the application error type carried from domain operations
// to the HTTP boundary.
type AppError struct {
	Code    string
	Message string
	// Fields holds per-field validation issues for form errors.
	Fields map[string]string
	Err    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError reports an absent entity.
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewValidationError reports malformed input with a single message.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

// NewFieldErrors reports malformed input with per-field issues.
func NewFieldErrors(fields map[string]string) *AppError {
	msg := "Validation failed"
	for _, v := range fields {
		// Surface one issue as the headline message; the full map rides along.
		msg = v
		break
	}
	return &AppError{
		Code:    CodeValidation,
		Message: msg,
		Fields:  fields,
	}
}

// NewUnauthorizedError reports a missing or insufficient identity.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// ErrorResponse is the failure envelope returned by every endpoint.
type ErrorResponse struct {
	Success     bool              `json:"success"`
	Error       string            `json:"error"`
	IsFormError bool              `json:"isFormError,omitempty"`
	Fields      map[string]string `json:"fields,omitempty"`
	Detail      string            `json:"detail,omitempty"`
}

// RespondWithError writes the standardized failure envelope.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	response := ErrorResponse{Success: false, Error: err.Error()}

	if appErr, ok := err.(*AppError); ok {
		response.Error = appErr.Message
		response.IsFormError = appErr.Code == CodeValidation
		response.Fields = appErr.Fields
		if appErr.Err != nil && IncludeErrorDetails {
			response.Detail = appErr.Err.Error()
		}
	}

	return c.Status(status).JSON(response)
}

package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by AppError.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInternal     = "INTERNAL_ERROR"
)

// ErrorResponse is the single-message error body used by the public API.
type ErrorResponse struct {
	Msg string `json:"msg"`
}

// FieldError is one entry of the validation failure list returned under
// the "errors" key.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// AppError is the application error type. Code drives the HTTP status
// mapping; Message is the only detail that reaches clients.
type AppError struct {
	Code    string
	Message string
	Err     error
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

// NewNotFoundError reports a missing or malformed reference.
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: message,
	}
}

// NewValidationError reports rejected input.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

// NewUnauthorizedError reports a failed authentication check.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

// NewInternalError wraps an unexpected failure. The cause is kept for
// logging; clients only ever see "Server Error".
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Server Error",
		Err:     err,
	}
}

// RespondWithError writes the standard {msg} error body. Internal detail is
// never serialized, only the client-safe message.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	msg := "Server Error"
	if appErr, ok := err.(*AppError); ok {
		msg = appErr.Message
	} else if err != nil {
		msg = err.Error()
	}
	return c.Status(status).JSON(ErrorResponse{Msg: msg})
}

// RespondWithFieldErrors writes a 400 response with the structured list of
// per-field validation errors.
func RespondWithFieldErrors(c *fiber.Ctx, errs []FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
}

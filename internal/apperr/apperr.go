// Package apperr defines the API error taxonomy. Handlers return *Error
// values; the fiber error handler maps them onto JSON bodies of the form
// {"error": "...", "code": "..."} while keeping the HTTP status codes the
// frontend already depends on.
package apperr

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// Stable machine-readable error codes.
const (
	CodeValidation           = "VALIDATION"
	CodeNotFound             = "NOT_FOUND"
	CodeAlreadyVerified      = "ALREADY_VERIFIED"
	CodeNotVerified          = "NOT_VERIFIED"
	CodeRateLimited          = "RATE_LIMITED"
	CodeInvalidToken         = "INVALID_TOKEN"
	CodeTokenExpired         = "TOKEN_EXPIRED"
	CodeNotApproved          = "NOT_APPROVED"
	CodeCannotDeleteVerified = "CANNOT_DELETE_VERIFIED"
	CodeEmailSendFailed      = "EMAIL_SEND_FAILED"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeConflict             = "CONFLICT"
	CodeInternal             = "INTERNAL"
)

// Error carries an HTTP status, a stable code, and a client-facing message.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New builds an Error with an explicit status.
func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// BadRequest builds a 400 error.
func BadRequest(code, message string) *Error {
	return New(fiber.StatusBadRequest, code, message)
}

// NotFound builds a 404 error.
func NotFound(message string) *Error {
	return New(fiber.StatusNotFound, CodeNotFound, message)
}

// Forbidden builds a 403 error.
func Forbidden(code, message string) *Error {
	return New(fiber.StatusForbidden, code, message)
}

// TooManyRequests builds a 429 error.
func TooManyRequests(message string) *Error {
	return New(fiber.StatusTooManyRequests, CodeRateLimited, message)
}

// Internal wraps a database or transport failure. The underlying error is
// logged server-side; the client only sees the fixed message.
func Internal(message string, err error) *Error {
	if err != nil {
		log.Printf("internal error: %s: %v", message, err)
	}
	return New(fiber.StatusInternalServerError, CodeInternal, message)
}

// ErrorHandler is the fiber error handler rendering the taxonomy as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return c.Status(appErr.Status).JSON(fiber.Map{
			"error": appErr.Message,
			"code":  appErr.Code,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"error": fiberErr.Message,
		})
	}

	log.Printf("unhandled error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
		"code":  CodeInternal,
	})
}

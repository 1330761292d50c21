// Package common holds the response envelope, RFC 9457 problem rendering
// and request binding shared by all webapi handlers.
package common

import (
	"errors"

	ledger "github.com/alpenbank/ledger/pkg/domain/ledger"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// SuccessResponseJSON writes the standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ErrorResponseJSON writes a problem+json response with the given status.
func ErrorResponseJSON(c *fiber.Ctx, status int, title string, detail any) error {
	pd := ProblemDetails{
		Type:   "about:blank",
		Title:  title,
		Status: status,
	}
	if detail != nil {
		if s, ok := detail.(string); ok {
			pd.Detail = s
		} else {
			pd.Errors = detail
		}
	}
	pd.Instance = c.OriginalURL()
	return c.Status(status).JSON(pd, "application/problem+json")
}

// ProblemDetailsJSON renders err as a problem+json response, deriving the
// HTTP status from the ledger error kind.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error) error {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return ErrorResponseJSON(c, ErrorToStatusCode(err), title, detail)
}

// ErrorToStatusCode maps engine errors to HTTP status codes by failure
// class, with a few sentinel-specific overrides. Fiber's own routing errors
// keep their status instead of collapsing to 500.
func ErrorToStatusCode(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	switch {
	case errors.Is(err, ledger.ErrAccountNotFound),
		errors.Is(err, ledger.ErrRecipientNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return fiber.StatusUnprocessableEntity
	}
	switch ledger.KindOf(err) {
	case ledger.KindValidation:
		return fiber.StatusBadRequest
	case ledger.KindState:
		return fiber.StatusUnprocessableEntity
	case ledger.KindTransient:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it using
// go-playground/validator. On failure it writes the error response itself
// and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
	}
	return &input, nil
}

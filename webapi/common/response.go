// Package common holds the response envelope, RFC 9457 problem details and
// request binding helpers shared by all HTTP handlers.
package common

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/norrbok/norrbok/pkg/domain"
	"github.com/norrbok/norrbok/pkg/domain/bank"
	"github.com/norrbok/norrbok/pkg/domain/ledger"
	"github.com/norrbok/norrbok/pkg/domain/user"
	"github.com/norrbok/norrbok/pkg/money"
)

// Response is the standard envelope for success cases.
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

// ProblemDetailsJSON writes an RFC 9457 problem response. Extra args may
// carry a detail string and/or an explicit status code; when no status is
// given it is derived from the error.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, args ...any) error {
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Instance: c.OriginalURL(),
	}
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			pd.Detail = v
		case int:
			pd.Status = v
		}
	}
	if pd.Status == 0 {
		pd.Status = ErrorToStatusCode(err)
	}
	if pd.Detail == "" && err != nil {
		pd.Detail = err.Error()
	}
	// Ctx.JSON resets any content type set earlier, so the problem media
	// type is passed through JSON itself.
	return c.Status(pd.Status).JSON(pd, "application/problem+json")
}

// ErrorToStatusCode maps domain errors to HTTP status codes. Missing
// records are 404, conflicting state changes are 409 and rejected input
// is 400; everything unrecognized stays a 500.
func ErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, user.ErrUserUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, money.ErrAmountNegative),
		errors.Is(err, money.ErrAmountPrecision),
		errors.Is(err, money.ErrInvalidCurrencyCode),
		errors.Is(err, ledger.ErrInvalidDirection),
		errors.Is(err, bank.ErrExternalIDRequired):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// validate is shared across requests so validator's struct cache is reused.
var validate = validator.New()

// BindAndValidate parses the request body into T and validates the struct
// tags. On failure the problem response is already written and the error
// is returned for the handler to propagate.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
	}
	if err := validate.Struct(input); err != nil {
		return nil, ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
	}
	return &input, nil
}

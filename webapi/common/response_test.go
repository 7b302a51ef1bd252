package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/norrbok/norrbok/pkg/domain"
	"github.com/norrbok/norrbok/pkg/domain/bank"
	"github.com/norrbok/norrbok/pkg/domain/ledger"
	"github.com/norrbok/norrbok/pkg/domain/user"
	"github.com/norrbok/norrbok/pkg/money"
)

func TestErrorToStatusCode(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, fiber.StatusInternalServerError},
		{"not found", ledger.ErrAccountNotFound, fiber.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", domain.ErrNotFound), fiber.StatusNotFound},
		{"match conflict", bank.ErrMatchConflict, fiber.StatusConflict},
		{"duplicate", domain.ErrAlreadyExists, fiber.StatusConflict},
		{"unauthorized", user.ErrUserUnauthorized, fiber.StatusUnauthorized},
		{"negative amount", money.ErrAmountNegative, fiber.StatusBadRequest},
		{"precision", money.ErrAmountPrecision, fiber.StatusBadRequest},
		{"direction", ledger.ErrInvalidDirection, fiber.StatusBadRequest},
		{"missing external id", bank.ErrExternalIDRequired, fiber.StatusBadRequest},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ErrorToStatusCode(tc.err))
		})
	}
}

func TestProblemDetailsJSON(t *testing.T) {
	t.Parallel()
	app := fiber.New()
	app.Get("/missing", func(c *fiber.Ctx) error {
		return ProblemDetailsJSON(c, "Account lookup failed", ledger.ErrAccountNotFound)
	})
	app.Get("/explicit", func(c *fiber.Ctx) error {
		return ProblemDetailsJSON(c, "Too Many Requests", errors.New("rate limit exceeded"), fiber.StatusTooManyRequests)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/missing", nil))
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get(fiber.HeaderContentType))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var pd ProblemDetails
	require.NoError(t, json.Unmarshal(body, &pd))
	assert.Equal(t, "Account lookup failed", pd.Title)
	assert.Equal(t, fiber.StatusNotFound, pd.Status)
	assert.Equal(t, "/missing", pd.Instance)
	assert.NotEmpty(t, pd.Detail)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/explicit", nil))
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestBindAndValidate(t *testing.T) {
	t.Parallel()
	type input struct {
		Name string `json:"name" validate:"required"`
	}
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		in, err := BindAndValidate[input](c)
		if in == nil {
			return err
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "ok", in)
	})

	req := httptest.NewRequest(fiber.MethodPost, "/", nil)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

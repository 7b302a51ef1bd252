// Package webapi assembles the HTTP surface. It is organized into
// sub-packages per domain:
//   - auth:   registration and login
//   - ledger: companies, chart of accounts, posting
//   - bank:   feed import and reconciliation
package webapi

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/norrbok/norrbok/pkg/app"
	authweb "github.com/norrbok/norrbok/webapi/auth"
	bankweb "github.com/norrbok/norrbok/webapi/bank"
	"github.com/norrbok/norrbok/webapi/common"
	ledgerweb "github.com/norrbok/norrbok/webapi/ledger"
)

// SetupApp initializes Fiber with the shared middleware and registers
// every route group.
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return common.ProblemDetailsJSON(c, fiberErr.Message, err, fiberErr.Code)
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	// Rate limiting keyed on the originating client IP. Behind a proxy the
	// X-Forwarded-For chain wins, then X-Real-IP, then the direct peer.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Config.RateLimit.MaxRequests,
		Expiration: a.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Norrbok ledger API is running")
	})

	authweb.Routes(fiberApp, a.AuthService, a.UserService)
	ledgerweb.Routes(fiberApp, a.LedgerService, a.Config)
	bankweb.Routes(fiberApp, a.BankService, a.Config)
	return fiberApp
}

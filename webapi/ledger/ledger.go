// Package ledger exposes company, chart-of-accounts and posting endpoints.
//
// Routes:
//   - POST /companies                        : Create a company.
//   - POST /companies/:id/chart-of-accounts  : Seed the default BAS chart.
//   - GET  /companies/:id/accounts           : List the company's accounts.
//   - POST /accounts                         : Add a single account.
//   - POST /transactions                     : Post a ledger entry.
//   - GET  /accounts/:id/balance             : Read the running balance.
//   - GET  /accounts/:id/transactions        : List entries for an account.
package ledger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/norrbok/norrbok/pkg/config"
	"github.com/norrbok/norrbok/pkg/domain/ledger"
	"github.com/norrbok/norrbok/pkg/middleware"
	ledgersvc "github.com/norrbok/norrbok/pkg/service/ledger"
	"github.com/norrbok/norrbok/webapi/common"
)

// Routes registers the ledger endpoints. All of them require a valid token.
func Routes(app *fiber.App, svc *ledgersvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Jwt)
	app.Post("/companies", protected, CreateCompany(svc))
	app.Post("/companies/:id/chart-of-accounts", protected, SeedChart(svc))
	app.Get("/companies/:id/accounts", protected, ListAccounts(svc))
	app.Post("/accounts", protected, CreateAccount(svc))
	app.Post("/transactions", protected, PostTransaction(svc))
	app.Get("/accounts/:id/balance", protected, GetBalance(svc))
	app.Get("/accounts/:id/transactions", protected, ListEntries(svc))
}

// CreateCompany creates a company.
func CreateCompany(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateCompanyInput](c)
		if input == nil {
			return err
		}
		company, err := svc.CreateCompany(c.Context(), input.Name, input.OrgNumber)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Company creation failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Company created", fiber.Map{
			"id":        company.ID.String(),
			"name":      company.Name,
			"orgNumber": company.OrgNumber,
		})
	}
}

// SeedChart provisions the default chart of accounts for a company.
func SeedChart(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid company ID", err, fiber.StatusBadRequest)
		}
		accounts, err := svc.SeedDefaultChart(c.Context(), companyID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Chart seeding failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Chart of accounts seeded", ToAccountDTOs(accounts))
	}
}

// ListAccounts returns a company's chart of accounts.
func ListAccounts(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid company ID", err, fiber.StatusBadRequest)
		}
		accounts, err := svc.ListAccounts(c.Context(), companyID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Account listing failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts", ToAccountDTOs(accounts))
	}
}

// CreateAccount adds a single account to a company's chart.
func CreateAccount(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateAccountInput](c)
		if input == nil {
			return err
		}
		companyID := uuid.MustParse(input.CompanyID)
		a, err := svc.CreateAccount(c.Context(), companyID, input.Code, input.Name, ledger.Type(input.Type))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Account creation failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", ToAccountDTO(a))
	}
}

// PostTransaction posts a ledger entry and adjusts the account balance.
// @Summary Post a transaction
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body PostTransactionInput true "Transaction data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /transactions [post]
// @Security Bearer
func PostTransaction(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[PostTransactionInput](c)
		if input == nil {
			return err
		}
		accountID := uuid.MustParse(input.AccountID)
		entry, err := svc.Post(
			c.Context(),
			accountID,
			input.Description,
			input.TransactionDate,
			input.Amount,
			ledger.Direction(input.Type),
		)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Posting failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transaction posted", ToEntryDTO(entry))
	}
}

// GetBalance returns the account's running balance.
func GetBalance(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		balance, err := svc.GetBalance(c.Context(), accountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Balance lookup failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance", fiber.Map{
			"accountId": accountID.String(),
			"balance":   balance.StringFixed(2),
		})
	}
}

// ListEntries returns the entries posted against an account.
func ListEntries(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		entries, err := svc.ListEntries(c.Context(), accountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Entry listing failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Entries", ToEntryDTOs(entries))
	}
}

// Package bank exposes the bank feed and reconciliation endpoints.
//
// Routes:
//   - POST /bank-accounts                          : Register a bank account.
//   - GET  /bank-accounts/:id/transactions         : List imported transactions.
//   - POST /bank-accounts/:id/import-transactions  : Import a feed (idempotent).
//   - POST /bank-transactions/:id/find-matches     : Suggest matching entries.
//   - POST /bank-transactions/:id/mark-matched     : Commit a match.
package bank

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/norrbok/norrbok/pkg/config"
	"github.com/norrbok/norrbok/pkg/domain/bank"
	"github.com/norrbok/norrbok/pkg/middleware"
	"github.com/norrbok/norrbok/pkg/money"
	banksvc "github.com/norrbok/norrbok/pkg/service/bank"
	"github.com/norrbok/norrbok/webapi/common"
	ledgerweb "github.com/norrbok/norrbok/webapi/ledger"
)

// Routes registers the bank endpoints. All of them require a valid token.
func Routes(app *fiber.App, svc *banksvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Jwt)
	app.Post("/bank-accounts", protected, CreateBankAccount(svc))
	app.Get("/bank-accounts/:id/transactions", protected, ListTransactions(svc))
	app.Post("/bank-accounts/:id/import-transactions", protected, ImportTransactions(svc))
	app.Post("/bank-transactions/:id/find-matches", protected, FindMatches(svc))
	app.Post("/bank-transactions/:id/mark-matched", protected, MarkMatched(svc))
}

// CreateBankAccount registers a bank account for a company.
func CreateBankAccount(svc *banksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateBankAccountInput](c)
		if input == nil {
			return err
		}
		companyID := uuid.MustParse(input.CompanyID)
		a, err := svc.CreateBankAccount(
			c.Context(),
			companyID,
			input.Name, input.BankName, input.IBAN, input.BIC,
			money.Code(input.Currency),
		)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Bank account creation failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Bank account created", ToBankAccountDTO(a))
	}
}

// ImportTransactions ingests a bank feed. Rows whose external id was seen
// before are skipped; the response always reflects the stored state of
// every row in the request.
// @Summary Import bank transactions
// @Tags bank
// @Accept json
// @Produce json
// @Param id path string true "Bank account ID"
// @Param request body ImportInput true "Feed rows"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /bank-accounts/{id}/import-transactions [post]
// @Security Bearer
func ImportTransactions(svc *banksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bankAccountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid bank account ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[ImportInput](c)
		if input == nil {
			return err
		}
		rows := make([]bank.FeedRow, 0, len(input.Transactions))
		for _, in := range input.Transactions {
			rows = append(rows, in.ToFeedRow())
		}
		stored, err := svc.Import(c.Context(), bankAccountID, rows)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Import failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transactions imported", ToTransactionDTOs(stored))
	}
}

// ListTransactions returns the imported transactions of a bank account.
func ListTransactions(svc *banksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bankAccountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid bank account ID", err, fiber.StatusBadRequest)
		}
		txs, err := svc.ListBankTransactions(c.Context(), bankAccountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Transaction listing failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Bank transactions", ToTransactionDTOs(txs))
	}
}

// FindMatches suggests unmatched ledger entries that could settle the bank
// transaction. Read only; committing a match is a separate call.
func FindMatches(svc *banksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bankTransactionID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid bank transaction ID", err, fiber.StatusBadRequest)
		}
		entries, err := svc.FindMatches(c.Context(), bankTransactionID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Match search failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Match candidates", ledgerweb.ToEntryDTOs(entries))
	}
}

// MarkMatched commits a match between a bank transaction and a ledger
// entry. Re-committing the same pair succeeds without changes; a pair
// where either side is already matched elsewhere is a conflict.
// @Summary Mark a bank transaction matched
// @Tags bank
// @Accept json
// @Produce json
// @Param id path string true "Bank transaction ID"
// @Param request body MarkMatchedInput true "Matched ledger entry"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /bank-transactions/{id}/mark-matched [post]
// @Security Bearer
func MarkMatched(svc *banksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bankTransactionID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid bank transaction ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[MarkMatchedInput](c)
		if input == nil {
			return err
		}
		entryID := uuid.MustParse(input.MatchedTransactionID)
		tx, err := svc.CommitMatch(c.Context(), bankTransactionID, entryID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Match commit failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction matched", ToTransactionDTO(tx))
	}
}

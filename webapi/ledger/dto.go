package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/norrbok/norrbok/pkg/domain/ledger"
)

// CreateCompanyInput is the request body for company creation.
type CreateCompanyInput struct {
	Name      string `json:"name" validate:"required,max=100"`
	OrgNumber string `json:"orgNumber" validate:"required,max=20"`
}

// CreateAccountInput is the request body for adding a single account to a
// company's chart.
type CreateAccountInput struct {
	CompanyID string `json:"companyId" validate:"required,uuid"`
	Code      string `json:"code" validate:"required,max=10"`
	Name      string `json:"name" validate:"required,max=100"`
	Type      string `json:"type" validate:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
}

// PostTransactionInput is the request body for posting a ledger entry.
// Amount accepts a JSON number or a numeric string; a zero transaction
// date defaults to the posting time.
type PostTransactionInput struct {
	AccountID       string          `json:"accountId" validate:"required,uuid"`
	Description     string          `json:"description" validate:"required,max=255"`
	TransactionDate time.Time       `json:"transactionDate"`
	Amount          decimal.Decimal `json:"amount"`
	Type            string          `json:"type" validate:"required,oneof=DEBIT CREDIT"`
}

// AccountDTO is the API representation of a ledger account.
type AccountDTO struct {
	ID        string `json:"id"`
	CompanyID string `json:"companyId"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Balance   string `json:"balance"`
}

// EntryDTO is the API representation of a ledger entry.
type EntryDTO struct {
	ID                       string  `json:"id"`
	AccountID                string  `json:"accountId"`
	Description              string  `json:"description"`
	TransactionDate          string  `json:"transactionDate"`
	Amount                   string  `json:"amount"`
	Type                     string  `json:"type"`
	IsMatched                bool    `json:"isMatched"`
	MatchedBankTransactionID *string `json:"matchedBankTransactionId,omitempty"`
	CreatedAt                string  `json:"createdAt"`
}

// ToAccountDTO maps a domain account to its API shape.
func ToAccountDTO(a *ledger.Account) AccountDTO {
	return AccountDTO{
		ID:        a.ID.String(),
		CompanyID: a.CompanyID.String(),
		Code:      a.Code,
		Name:      a.Name,
		Type:      string(a.Type),
		Status:    string(a.Status),
		Balance:   a.Balance.StringFixed(2),
	}
}

// ToAccountDTOs maps a slice of accounts.
func ToAccountDTOs(accounts []*ledger.Account) []AccountDTO {
	out := make([]AccountDTO, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, ToAccountDTO(a))
	}
	return out
}

// ToEntryDTO maps a domain entry to its API shape.
func ToEntryDTO(e *ledger.Entry) EntryDTO {
	dto := EntryDTO{
		ID:              e.ID.String(),
		AccountID:       e.AccountID.String(),
		Description:     e.Description,
		TransactionDate: e.TransactionDate.Format(time.RFC3339),
		Amount:          e.Amount.StringFixed(2),
		Type:            string(e.Direction),
		IsMatched:       e.IsMatched,
		CreatedAt:       e.CreatedAt.Format(time.RFC3339),
	}
	if e.MatchedBankTransactionID != nil {
		id := e.MatchedBankTransactionID.String()
		dto.MatchedBankTransactionID = &id
	}
	return dto
}

// ToEntryDTOs maps a slice of entries.
func ToEntryDTOs(entries []*ledger.Entry) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToEntryDTO(e))
	}
	return out
}

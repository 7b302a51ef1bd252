package bank

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/norrbok/norrbok/pkg/domain/bank"
	"github.com/norrbok/norrbok/pkg/domain/ledger"
	"github.com/norrbok/norrbok/pkg/money"
)

// CreateBankAccountInput is the request body for registering a bank account.
type CreateBankAccountInput struct {
	CompanyID string `json:"companyId" validate:"required,uuid"`
	Name      string `json:"name" validate:"required,max=100"`
	BankName  string `json:"bankName" validate:"max=100"`
	IBAN      string `json:"iban" validate:"max=34"`
	BIC       string `json:"bic" validate:"max=11"`
	Currency  string `json:"currency" validate:"omitempty,len=3,uppercase"`
}

// FeedRowInput is one transaction row of a bank feed. Currency and type
// are optional; missing values fall back to the import defaults (SEK,
// CREDIT).
type FeedRowInput struct {
	ExternalID      string          `json:"externalId" validate:"required,max=100"`
	TransactionDate time.Time       `json:"transactionDate"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description" validate:"max=255"`
	Reference       string          `json:"reference" validate:"max=100"`
	Currency        string          `json:"currency" validate:"omitempty,len=3,uppercase"`
	Type            string          `json:"type" validate:"omitempty,oneof=DEBIT CREDIT"`
}

// ImportInput is the request body for a feed import.
type ImportInput struct {
	Transactions []FeedRowInput `json:"transactions" validate:"required,min=1,dive"`
}

// MarkMatchedInput names the ledger entry a bank transaction settles.
type MarkMatchedInput struct {
	MatchedTransactionID string `json:"matchedTransactionId" validate:"required,uuid"`
}

// BankAccountDTO is the API representation of a bank account.
type BankAccountDTO struct {
	ID        string `json:"id"`
	CompanyID string `json:"companyId"`
	Name      string `json:"name"`
	BankName  string `json:"bankName"`
	IBAN      string `json:"iban"`
	BIC       string `json:"bic"`
	Currency  string `json:"currency"`
}

// TransactionDTO is the API representation of an imported bank transaction.
type TransactionDTO struct {
	ID                string `json:"id"`
	BankAccountID     string `json:"bankAccountId"`
	ExternalID        string `json:"externalId"`
	TransactionDate   string `json:"transactionDate"`
	Amount            string `json:"amount"`
	Description       string `json:"description"`
	Reference         string `json:"reference,omitempty"`
	Currency          string `json:"currency"`
	Type              string `json:"type"`
	Status            string `json:"status"`
	IsMatched         bool   `json:"isMatched"`
	SuggestedCategory string `json:"suggestedCategory,omitempty"`
}

// ToFeedRow maps an input row to the domain feed row.
func (in FeedRowInput) ToFeedRow() bank.FeedRow {
	return bank.FeedRow{
		ExternalID:      in.ExternalID,
		TransactionDate: in.TransactionDate,
		Amount:          in.Amount,
		Description:     in.Description,
		Reference:       in.Reference,
		Currency:        money.Code(in.Currency),
		Direction:       ledger.Direction(in.Type),
	}
}

// ToBankAccountDTO maps a domain bank account to its API shape.
func ToBankAccountDTO(a *bank.Account) BankAccountDTO {
	return BankAccountDTO{
		ID:        a.ID.String(),
		CompanyID: a.CompanyID.String(),
		Name:      a.Name,
		BankName:  a.BankName,
		IBAN:      a.IBAN,
		BIC:       a.BIC,
		Currency:  string(a.Currency),
	}
}

// ToTransactionDTO maps a domain bank transaction to its API shape.
func ToTransactionDTO(t *bank.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:                t.ID.String(),
		BankAccountID:     t.BankAccountID.String(),
		ExternalID:        t.ExternalID,
		TransactionDate:   t.TransactionDate.Format(time.RFC3339),
		Amount:            t.Amount.StringFixed(2),
		Description:       t.Description,
		Reference:         t.Reference,
		Currency:          string(t.Currency),
		Type:              string(t.Direction),
		Status:            string(t.Status),
		IsMatched:         t.IsMatched,
		SuggestedCategory: t.SuggestedCategory,
	}
}

// ToTransactionDTOs maps a slice of bank transactions.
func ToTransactionDTOs(txs []*bank.Transaction) []TransactionDTO {
	out := make([]TransactionDTO, 0, len(txs))
	for _, t := range txs {
		out = append(out, ToTransactionDTO(t))
	}
	return out
}

// Package bank contains the bank-feed domain: bank accounts and the
// externally sourced transactions imported from their feeds, pending
// reconciliation against the ledger.
package bank

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/norrbok/norrbok/pkg/domain"
	"github.com/norrbok/norrbok/pkg/domain/ledger"
	"github.com/norrbok/norrbok/pkg/money"
)

var (
	// ErrBankAccountNotFound is returned when a bank account cannot be found.
	ErrBankAccountNotFound = fmt.Errorf("bank account %w", domain.ErrNotFound)
	// ErrBankTransactionNotFound is returned when a bank transaction cannot
	// be found.
	ErrBankTransactionNotFound = fmt.Errorf("bank transaction %w", domain.ErrNotFound)
	// ErrMatchConflict is returned when a commit would re-match a side that
	// is already matched to a different counterpart.
	ErrMatchConflict = fmt.Errorf("transaction already matched: %w", domain.ErrConflict)
	// ErrExternalIDRequired is returned when an imported row is missing its
	// idempotency key.
	ErrExternalIDRequired = errors.New("externalId is required")
)

// TransactionStatus tracks a bank transaction through reconciliation.
// CLEARED holds exactly when the transaction is matched.
type TransactionStatus string

// Bank transaction statuses.
const (
	StatusPending TransactionStatus = "PENDING"
	StatusCleared TransactionStatus = "CLEARED"
	StatusFailed  TransactionStatus = "FAILED"
)

// Account is a company's bank account, the source of imported feed
// transactions. Its balance is not touched by the importer; balance sync
// against the feed is a separate concern.
type Account struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Name      string
	BankName  string
	IBAN      string
	BIC       string
	Currency  money.Code
	Balance   decimal.Decimal
	CreatedAt time.Time
}

// NewAccount validates and constructs a bank account.
func NewAccount(companyID uuid.UUID, name, bankName, iban, bic string, currency money.Code) (*Account, error) {
	if companyID == uuid.Nil {
		return nil, errors.New("companyID is required")
	}
	if name == "" {
		return nil, errors.New("bank account name is required")
	}
	if err := money.ValidateCode(currency); err != nil {
		return nil, err
	}
	return &Account{
		ID:        uuid.New(),
		CompanyID: companyID,
		Name:      name,
		BankName:  bankName,
		IBAN:      iban,
		BIC:       bic,
		Currency:  money.OrDefault(currency),
		Balance:   decimal.Zero,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Transaction is an externally sourced movement from a bank feed. ExternalID
// is the idempotency key from the source; imports never duplicate a
// (bank account, external id) pair.
type Transaction struct {
	ID                uuid.UUID
	BankAccountID     uuid.UUID
	ExternalID        string
	TransactionDate   time.Time
	Amount            decimal.Decimal
	Description       string
	Reference         string
	Currency          money.Code
	Direction         ledger.Direction
	Status            TransactionStatus
	IsMatched         bool
	SuggestedCategory string
	CreatedAt         time.Time
}

// FeedRow is one raw row from a bank feed, before defaults are applied.
type FeedRow struct {
	ExternalID      string
	TransactionDate time.Time
	Amount          decimal.Decimal
	Description     string
	Reference       string
	Currency        money.Code
	Direction       ledger.Direction
}

// NewTransaction builds a pending, unmatched transaction from a feed row,
// applying the import defaults: currency SEK, direction CREDIT.
func NewTransaction(bankAccountID uuid.UUID, row FeedRow) (*Transaction, error) {
	if bankAccountID == uuid.Nil {
		return nil, ErrBankAccountNotFound
	}
	if row.ExternalID == "" {
		return nil, ErrExternalIDRequired
	}
	if err := money.ValidateCode(row.Currency); err != nil {
		return nil, err
	}
	direction := row.Direction
	if direction == "" {
		direction = ledger.Credit
	}
	if !direction.Valid() {
		return nil, ledger.ErrInvalidDirection
	}
	date := row.TransactionDate
	if date.IsZero() {
		date = time.Now().UTC()
	}
	return &Transaction{
		ID:              uuid.New(),
		BankAccountID:   bankAccountID,
		ExternalID:      row.ExternalID,
		TransactionDate: date,
		Amount:          money.Round(row.Amount),
		Description:     row.Description,
		Reference:       row.Reference,
		Currency:        money.OrDefault(row.Currency),
		Direction:       direction,
		Status:          StatusPending,
		IsMatched:       false,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// MarkCleared transitions the transaction to its matched state. The
// status/matched invariant moves together.
func (t *Transaction) MarkCleared() {
	t.IsMatched = true
	t.Status = StatusCleared
}

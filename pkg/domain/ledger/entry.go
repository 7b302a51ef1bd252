package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/norrbok/norrbok/pkg/domain"
	"github.com/norrbok/norrbok/pkg/money"
)

// ErrEntryNotFound is returned when a ledger entry cannot be found.
var ErrEntryNotFound = fmt.Errorf("ledger entry %w", domain.ErrNotFound)

// Direction is the side of an entry: DEBIT adds to the account balance,
// CREDIT subtracts.
type Direction string

// Entry directions.
const (
	Debit  Direction = "DEBIT"
	Credit Direction = "CREDIT"
)

// ErrInvalidDirection is returned when a direction is neither DEBIT nor CREDIT.
var ErrInvalidDirection = fmt.Errorf("direction must be %s or %s", Debit, Credit)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == Debit || d == Credit
}

// Entry is a posted financial movement against exactly one account. Amount
// and date are immutable after posting; only the match metadata may change,
// and once IsMatched is true MatchedBankTransactionID is set and stable.
type Entry struct {
	ID                       uuid.UUID
	AccountID                uuid.UUID
	Description              string
	TransactionDate          time.Time
	Amount                   decimal.Decimal
	Direction                Direction
	IsMatched                bool
	MatchedBankTransactionID *uuid.UUID
	CreatedAt                time.Time
}

// NewEntry validates and constructs an unposted entry.
func NewEntry(
	accountID uuid.UUID,
	description string,
	transactionDate time.Time,
	amount decimal.Decimal,
	direction Direction,
) (*Entry, error) {
	if accountID == uuid.Nil {
		return nil, ErrAccountNotFound
	}
	if !direction.Valid() {
		return nil, ErrInvalidDirection
	}
	if err := money.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if transactionDate.IsZero() {
		transactionDate = time.Now().UTC()
	}
	return &Entry{
		ID:              uuid.New(),
		AccountID:       accountID,
		Description:     description,
		TransactionDate: transactionDate,
		Amount:          money.Round(amount),
		Direction:       direction,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// NewEntryFromData hydrates an Entry from raw data. It bypasses invariants
// and is for repository hydration and test fixtures only.
func NewEntryFromData(
	id, accountID uuid.UUID,
	description string,
	transactionDate time.Time,
	amount decimal.Decimal,
	direction Direction,
	isMatched bool,
	matchedBankTransactionID *uuid.UUID,
	createdAt time.Time,
) *Entry {
	return &Entry{
		ID:                       id,
		AccountID:                accountID,
		Description:              description,
		TransactionDate:          transactionDate,
		Amount:                   amount,
		Direction:                direction,
		IsMatched:                isMatched,
		MatchedBankTransactionID: matchedBankTransactionID,
		CreatedAt:                createdAt,
	}
}

// MarkMatched links the entry to a bank transaction.
func (e *Entry) MarkMatched(bankTransactionID uuid.UUID) {
	e.IsMatched = true
	e.MatchedBankTransactionID = &bankTransactionID
}

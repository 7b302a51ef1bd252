// Package ledger contains the general-ledger domain: accounts with running
// balances and the entries posted against them.
//
// The sign convention is fixed: a DEBIT entry adds to the account balance,
// a CREDIT entry subtracts. Changing it would change every observable
// balance, so it is preserved exactly.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/norrbok/norrbok/pkg/domain"
	"github.com/norrbok/norrbok/pkg/money"
)

var (
	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = fmt.Errorf("account %w", domain.ErrNotFound)
	// ErrAccountCodeTaken is returned when an account code already exists
	// within the company's chart.
	ErrAccountCodeTaken = fmt.Errorf("account code %w", domain.ErrAlreadyExists)
)

// Type classifies an account within the chart of accounts.
type Type string

// Account types.
const (
	TypeAsset     Type = "ASSET"
	TypeLiability Type = "LIABILITY"
	TypeEquity    Type = "EQUITY"
	TypeRevenue   Type = "REVENUE"
	TypeExpense   Type = "EXPENSE"
)

// Valid reports whether t is one of the known account types.
func (t Type) Valid() bool {
	switch t {
	case TypeAsset, TypeLiability, TypeEquity, TypeRevenue, TypeExpense:
		return true
	}
	return false
}

// Status marks whether an account accepts postings. Accounts are never
// deleted, only set passive.
type Status string

// Account statuses.
const (
	StatusActive  Status = "ACTIVE"
	StatusPassive Status = "PASSIVE"
)

// Account is a general-ledger account. Its balance is the algebraic sum of
// all posted entries and is mutated only by the posting service, inside the
// same transaction that creates the entry.
type Account struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Code      string
	Name      string
	Type      Type
	Status    Status
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Builder provides a fluent API for constructing Account instances so that
// only valid accounts reach the repository.
type Builder struct {
	id        uuid.UUID
	companyID uuid.UUID
	code      string
	name      string
	typ       Type
	status    Status
	balance   decimal.Decimal
	createdAt time.Time
	updatedAt time.Time
}

// New creates a Builder with a fresh UUID and an ACTIVE status.
func New() *Builder {
	return &Builder{
		id:        uuid.New(),
		status:    StatusActive,
		createdAt: time.Now().UTC(),
	}
}

// WithID sets the ID for the account being built.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithCompanyID sets the owning company. Mandatory.
func (b *Builder) WithCompanyID(companyID uuid.UUID) *Builder {
	b.companyID = companyID
	return b
}

// WithCode sets the account code, unique within the company's chart.
func (b *Builder) WithCode(code string) *Builder {
	b.code = code
	return b
}

// WithName sets the human-readable account name.
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithType sets the account type.
func (b *Builder) WithType(t Type) *Builder {
	b.typ = t
	return b
}

// WithStatus sets the account status. Defaults to ACTIVE.
func (b *Builder) WithStatus(s Status) *Builder {
	b.status = s
	return b
}

// WithBalance sets the opening balance. This is for hydration from a data
// store or test setup; live balances move only through postings.
func (b *Builder) WithBalance(balance decimal.Decimal) *Builder {
	b.balance = balance
	return b
}

// WithCreatedAt sets the creation timestamp, for hydration.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-updated timestamp, for hydration.
func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build validates the invariants and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if b.companyID == uuid.Nil {
		return nil, errors.New("companyID is required")
	}
	if b.code == "" {
		return nil, errors.New("account code is required")
	}
	if b.name == "" {
		return nil, errors.New("account name is required")
	}
	if !b.typ.Valid() {
		return nil, fmt.Errorf("invalid account type %q", b.typ)
	}
	if b.status != StatusActive && b.status != StatusPassive {
		return nil, fmt.Errorf("invalid account status %q", b.status)
	}
	return &Account{
		ID:        b.id,
		CompanyID: b.companyID,
		Code:      b.code,
		Name:      b.name,
		Type:      b.typ,
		Status:    b.status,
		Balance:   money.Round(b.balance),
		CreatedAt: b.createdAt,
		UpdatedAt: b.updatedAt,
	}, nil
}

// Apply adjusts the balance for a posted entry per the sign convention.
func (a *Account) Apply(e *Entry) {
	switch e.Direction {
	case Debit:
		a.Balance = a.Balance.Add(e.Amount)
	case Credit:
		a.Balance = a.Balance.Sub(e.Amount)
	}
	a.UpdatedAt = time.Now().UTC()
}

// Deactivate marks the account passive. Passive accounts stay in the chart
// with their balance intact.
func (a *Account) Deactivate() {
	a.Status = StatusPassive
	a.UpdatedAt = time.Now().UTC()
}

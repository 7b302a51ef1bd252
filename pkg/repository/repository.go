// Package repository defines the persistence contracts consumed by the
// service layer. Implementations live in infra/repository.
package repository

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/norrbok/norrbok/pkg/domain/bank"
	"github.com/norrbok/norrbok/pkg/domain/company"
	"github.com/norrbok/norrbok/pkg/domain/ledger"
	"github.com/norrbok/norrbok/pkg/domain/user"
)

// CompanyRepository persists companies.
type CompanyRepository interface {
	Create(c *company.Company) error
	Get(id uuid.UUID) (*company.Company, error)
}

// AccountRepository persists general-ledger accounts.
type AccountRepository interface {
	Create(a *ledger.Account) error
	// CreateBatch inserts a whole chart in one round-trip.
	CreateBatch(accounts []*ledger.Account) error
	Get(id uuid.UUID) (*ledger.Account, error)
	// GetForUpdate loads the account under a row lock so concurrent
	// postings against it serialize. Only valid inside a UnitOfWork
	// transaction.
	GetForUpdate(id uuid.UUID) (*ledger.Account, error)
	ListByCompany(companyID uuid.UUID) ([]*ledger.Account, error)
	Update(a *ledger.Account) error
}

// EntryRepository persists ledger entries.
type EntryRepository interface {
	Create(e *ledger.Entry) error
	Get(id uuid.UUID) (*ledger.Entry, error)
	// GetForUpdate loads the entry under a row lock. Only valid inside a
	// UnitOfWork transaction.
	GetForUpdate(id uuid.UUID) (*ledger.Entry, error)
	ListByAccount(accountID uuid.UUID) ([]*ledger.Entry, error)
	// FindUnmatched returns the unmatched entries whose amount equals the
	// given amount exactly and whose description contains the given
	// fragment (SQL LIKE; case sensitivity follows the store's collation).
	FindUnmatched(amount decimal.Decimal, descriptionContains string) ([]*ledger.Entry, error)
	Update(e *ledger.Entry) error
}

// BankAccountRepository persists bank accounts.
type BankAccountRepository interface {
	Create(a *bank.Account) error
	Get(id uuid.UUID) (*bank.Account, error)
	ListByCompany(companyID uuid.UUID) ([]*bank.Account, error)
}

// BankTransactionRepository persists imported bank transactions.
type BankTransactionRepository interface {
	// UpsertBatch inserts the transactions, silently skipping rows whose
	// (bank account, external id) pair already exists.
	UpsertBatch(txs []*bank.Transaction) error
	Get(id uuid.UUID) (*bank.Transaction, error)
	// GetForUpdate loads the transaction under a row lock. Only valid
	// inside a UnitOfWork transaction.
	GetForUpdate(id uuid.UUID) (*bank.Transaction, error)
	// ListByExternalIDs returns the stored rows for the given idempotency
	// keys of one bank account.
	ListByExternalIDs(bankAccountID uuid.UUID, externalIDs []string) ([]*bank.Transaction, error)
	ListByBankAccount(bankAccountID uuid.UUID) ([]*bank.Transaction, error)
	Update(t *bank.Transaction) error
}

// UserRepository persists users.
type UserRepository interface {
	Create(u *user.User) error
	Get(id uuid.UUID) (*user.User, error)
	GetByEmail(email string) (*user.User, error)
	GetByUsername(username string) (*user.User, error)
}

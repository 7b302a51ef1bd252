package repository

import (
	"context"
	"reflect"
)

// UnitOfWork is the transaction boundary for multi-entity mutations. Every
// repository obtained from the UnitOfWork passed to Do shares one database
// transaction, so a posting's entry insert and balance update, or a match
// commit's two-sided flip, land atomically or not at all.
//
// If the function given to Do returns an error, or the context is
// cancelled, the transaction rolls back with no partial state.
type UnitOfWork interface {
	// Do executes fn inside a transaction boundary. fn receives a
	// UnitOfWork whose repositories are bound to that transaction.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns a repository of the requested interface type,
	// bound to the current session.
	GetRepository(repoType reflect.Type) (any, error)

	// Typed accessors over GetRepository.
	CompanyRepository() (CompanyRepository, error)
	AccountRepository() (AccountRepository, error)
	EntryRepository() (EntryRepository, error)
	BankAccountRepository() (BankAccountRepository, error)
	BankTransactionRepository() (BankTransactionRepository, error)
	UserRepository() (UserRepository, error)
}

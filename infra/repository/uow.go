package repository

import (
	"context"
	"fmt"
	"reflect"

	"gorm.io/gorm"

	"github.com/norrbok/norrbok/pkg/repository"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. Repositories are constructed against the transaction session,
// so every repository obtained inside Do shares one database transaction.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			reflect.TypeOf((*repository.CompanyRepository)(nil)).Elem():         func(db *gorm.DB) any { return NewCompanyRepository(db) },
			reflect.TypeOf((*repository.AccountRepository)(nil)).Elem():         func(db *gorm.DB) any { return NewAccountRepository(db) },
			reflect.TypeOf((*repository.EntryRepository)(nil)).Elem():           func(db *gorm.DB) any { return NewEntryRepository(db) },
			reflect.TypeOf((*repository.BankAccountRepository)(nil)).Elem():     func(db *gorm.DB) any { return NewBankAccountRepository(db) },
			reflect.TypeOf((*repository.BankTransactionRepository)(nil)).Elem(): func(db *gorm.DB) any { return NewBankTransactionRepository(db) },
			reflect.TypeOf((*repository.UserRepository)(nil)).Elem():            func(db *gorm.DB) any { return NewUserRepository(db) },
		},
	}
}

// Do runs fn inside a database transaction, providing a UoW bound to it.
// A returned error or cancelled context rolls the transaction back.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txnUow := &UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry}
		return fn(txnUow)
	})
}

// session returns the transaction when inside Do, the root session otherwise.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// GetRepository returns a repository of the requested interface type bound
// to the current session.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
	return constructor(u.session()), nil
}

// CompanyRepository returns a CompanyRepository bound to the current session.
func (u *UoW) CompanyRepository() (repository.CompanyRepository, error) {
	repoAny, err := u.GetRepository(reflect.TypeOf((*repository.CompanyRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repoAny.(repository.CompanyRepository), nil
}

// AccountRepository returns an AccountRepository bound to the current session.
func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	repoAny, err := u.GetRepository(reflect.TypeOf((*repository.AccountRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repoAny.(repository.AccountRepository), nil
}

// EntryRepository returns an EntryRepository bound to the current session.
func (u *UoW) EntryRepository() (repository.EntryRepository, error) {
	repoAny, err := u.GetRepository(reflect.TypeOf((*repository.EntryRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repoAny.(repository.EntryRepository), nil
}

// BankAccountRepository returns a BankAccountRepository bound to the current session.
func (u *UoW) BankAccountRepository() (repository.BankAccountRepository, error) {
	repoAny, err := u.GetRepository(reflect.TypeOf((*repository.BankAccountRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repoAny.(repository.BankAccountRepository), nil
}

// BankTransactionRepository returns a BankTransactionRepository bound to the current session.
func (u *UoW) BankTransactionRepository() (repository.BankTransactionRepository, error) {
	repoAny, err := u.GetRepository(reflect.TypeOf((*repository.BankTransactionRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repoAny.(repository.BankTransactionRepository), nil
}

// UserRepository returns a UserRepository bound to the current session.
func (u *UoW) UserRepository() (repository.UserRepository, error) {
	repoAny, err := u.GetRepository(reflect.TypeOf((*repository.UserRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repoAny.(repository.UserRepository), nil
}

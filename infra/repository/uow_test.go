package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/norrbok/norrbok/pkg/repository"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestUoW_DoAndGetRepository(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	db, mock := newMockDB(t)

	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		repoAny, err := txUow.GetRepository(reflect.TypeOf((*repository.AccountRepository)(nil)).Elem())
		require.NoError(err)
		_, ok := repoAny.(repository.AccountRepository)
		assert.True(ok)

		repoAny, err = txUow.GetRepository(reflect.TypeOf((*repository.BankTransactionRepository)(nil)).Elem())
		require.NoError(err)
		_, ok = repoAny.(repository.BankTransactionRepository)
		assert.True(ok)

		return nil
	})
	assert.NoError(err)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestUoW_RollbackOnError(t *testing.T) {
	assert := assert.New(t)
	db, mock := newMockDB(t)

	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	wantErr := errors.New("boom")
	err := uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		return wantErr
	})
	assert.ErrorIs(err, wantErr)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestUoW_TypedAccessors(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	db, mock := newMockDB(t)

	uow := NewUoW(db)

	// Outside a transaction the accessors bind to the root session.
	accountRepo, err := uow.AccountRepository()
	require.NoError(err)
	assert.NotNil(accountRepo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err = uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		for _, get := range []func() (any, error){
			func() (any, error) { return txUow.CompanyRepository() },
			func() (any, error) { return txUow.AccountRepository() },
			func() (any, error) { return txUow.EntryRepository() },
			func() (any, error) { return txUow.BankAccountRepository() },
			func() (any, error) { return txUow.BankTransactionRepository() },
			func() (any, error) { return txUow.UserRepository() },
		} {
			repo, err := get()
			require.NoError(err)
			assert.NotNil(repo)
		}
		return nil
	})
	assert.NoError(err)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestUoW_GetRepository_Unsupported(t *testing.T) {
	db, _ := newMockDB(t)
	uow := NewUoW(db)

	_, err := uow.GetRepository(reflect.TypeOf((*error)(nil)).Elem())
	assert.Error(t, err)
}

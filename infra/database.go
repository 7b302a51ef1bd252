// Package infra wires the persistence layer: database connection, schema
// migration, and the GORM unit of work.
package infra

import (
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/norrbok/norrbok/infra/repository"
)

// Migrate brings the schema up to date for all persisted models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&repository.Company{},
		&repository.Account{},
		&repository.Entry{},
		&repository.BankAccount{},
		&repository.BankTransaction{},
		&repository.User{},
	)
}

// NewDBConnection opens the PostgreSQL connection named by url and migrates
// the schema. SkipDefaultTransaction is set because every multi-entity
// mutation runs through the UnitOfWork's explicit transaction.
func NewDBConnection(url string) (*gorm.DB, error) {
	if url == "" {
		return nil, errors.New("database url is not set")
	}
	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

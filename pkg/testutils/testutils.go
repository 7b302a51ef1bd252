// Package testutils provides shared fixtures for service and API tests: an
// in-memory SQLite database carrying the full schema, and a unit of work
// bound to it.
package testutils

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/norrbok/norrbok/infra"
	infrarepo "github.com/norrbok/norrbok/infra/repository"
)

// NewTestDB opens a private in-memory SQLite database with the schema
// migrated.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the shared-cache memory database alive for the
	// duration of the test.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, infra.Migrate(db))
	return db
}

// NewTestUoW returns a unit of work over a fresh in-memory database.
func NewTestUoW(t *testing.T) *infrarepo.UoW {
	t.Helper()
	return infrarepo.NewUoW(NewTestDB(t))
}

// NewTestLogger returns a logger that drops everything.
func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(127)}))
}

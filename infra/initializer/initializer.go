// Package initializer builds the application dependencies from
// configuration: logger, database connection, unit of work and the
// categorization rule table.
package initializer

import (
	"fmt"

	"github.com/norrbok/norrbok/infra"
	infra_repository "github.com/norrbok/norrbok/infra/repository"
	"github.com/norrbok/norrbok/pkg/app"
	"github.com/norrbok/norrbok/pkg/categorize"
	"github.com/norrbok/norrbok/pkg/config"
)

// InitializeDependencies connects the database, runs migrations and
// assembles the dependency set the services are built from.
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	logger := setupLogger(cfg.Log)

	// NewDBConnection migrates the schema before returning.
	db, err := infra.NewDBConnection(cfg.DB.Url)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return &app.Deps{
		Uow:         infra_repository.NewUoW(db),
		Categorizer: categorize.Default(),
		Logger:      logger,
	}, nil
}

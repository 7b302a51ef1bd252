// Package app wires the services from their shared dependencies.
package app

import (
	"log/slog"

	"github.com/norrbok/norrbok/pkg/categorize"
	"github.com/norrbok/norrbok/pkg/config"
	"github.com/norrbok/norrbok/pkg/repository"
	authsvc "github.com/norrbok/norrbok/pkg/service/auth"
	banksvc "github.com/norrbok/norrbok/pkg/service/bank"
	ledgersvc "github.com/norrbok/norrbok/pkg/service/ledger"
	usersvc "github.com/norrbok/norrbok/pkg/service/user"
)

// Deps holds the shared infrastructure every service builds on.
type Deps struct {
	Uow         repository.UnitOfWork
	Categorizer *categorize.Categorizer
	Logger      *slog.Logger
}

// App is the assembled application.
type App struct {
	Deps          *Deps
	Config        *config.App
	AuthService   *authsvc.Service
	UserService   *usersvc.Service
	LedgerService *ledgersvc.Service
	BankService   *banksvc.Service
}

// New builds the services from the dependencies and configuration.
func New(deps *Deps, cfg *config.App) *App {
	return &App{
		Deps:          deps,
		Config:        cfg,
		AuthService:   authsvc.New(deps.Uow, cfg.Jwt, deps.Logger),
		UserService:   usersvc.New(deps.Uow, deps.Logger),
		LedgerService: ledgersvc.New(deps.Uow, deps.Logger),
		BankService:   banksvc.New(deps.Uow, deps.Categorizer, deps.Logger),
	}
}

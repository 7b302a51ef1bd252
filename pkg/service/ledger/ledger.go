// Package ledger provides the business logic for the general ledger:
// company provisioning, chart-of-accounts seeding, and transaction posting.
//
// Posting is the only writer of account balances. The entry insert and the
// balance update run inside one unit of work with the account row locked,
// so concurrent postings against the same account serialize instead of
// losing updates.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/norrbok/norrbok/pkg/domain"
	"github.com/norrbok/norrbok/pkg/domain/company"
	"github.com/norrbok/norrbok/pkg/domain/ledger"
	"github.com/norrbok/norrbok/pkg/repository"
)

// ErrAccountInactive is returned when posting against a passive account.
var ErrAccountInactive = fmt.Errorf("account is not active: %w", domain.ErrConflict)

// Service provides ledger operations over a unit of work.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a ledger Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateCompany creates a company.
func (s *Service) CreateCompany(ctx context.Context, name, orgNumber string) (c *company.Company, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CompanyRepository()
		if err != nil {
			return err
		}
		c, err = company.NewCompany(name, orgNumber)
		if err != nil {
			return err
		}
		return repo.Create(c)
	})
	if err != nil {
		c = nil
	}
	return
}

// SeedDefaultChart provisions the default BAS chart of accounts for a
// company. Seeding twice fails on the chart's code uniqueness.
func (s *Service) SeedDefaultChart(ctx context.Context, companyID uuid.UUID) (accounts []*ledger.Account, err error) {
	log := s.logger.With("context", "SeedDefaultChart", "companyID", companyID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		companies, err := uow.CompanyRepository()
		if err != nil {
			return err
		}
		if _, err = companies.Get(companyID); err != nil {
			return err
		}
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		accounts, err = ledger.DefaultChart(companyID)
		if err != nil {
			return err
		}
		return repo.CreateBatch(accounts)
	})
	if err != nil {
		log.Error("chart seeding failed", "error", err)
		return nil, err
	}
	log.Info("chart seeded", "accounts", len(accounts))
	return accounts, nil
}

// CreateAccount adds a single account to a company's chart.
func (s *Service) CreateAccount(
	ctx context.Context,
	companyID uuid.UUID,
	code, name string,
	accountType ledger.Type,
) (a *ledger.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		companies, err := uow.CompanyRepository()
		if err != nil {
			return err
		}
		if _, err = companies.Get(companyID); err != nil {
			return err
		}
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err = ledger.New().
			WithCompanyID(companyID).
			WithCode(code).
			WithName(name).
			WithType(accountType).
			Build()
		if err != nil {
			return err
		}
		return repo.Create(a)
	})
	if err != nil {
		a = nil
	}
	return
}

// ListAccounts returns a company's chart of accounts ordered by code.
func (s *Service) ListAccounts(ctx context.Context, companyID uuid.UUID) ([]*ledger.Account, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListByCompany(companyID)
}

// Post creates a ledger entry against an account and adjusts the account's
// balance per the sign convention (DEBIT adds, CREDIT subtracts). Both
// writes land in one transaction; the account row is locked for the
// duration so concurrent posts serialize.
func (s *Service) Post(
	ctx context.Context,
	accountID uuid.UUID,
	description string,
	transactionDate time.Time,
	amount decimal.Decimal,
	direction ledger.Direction,
) (e *ledger.Entry, err error) {
	log := s.logger.With("context", "Post", "accountID", accountID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		entries, err := uow.EntryRepository()
		if err != nil {
			return err
		}
		a, err := accounts.GetForUpdate(accountID)
		if err != nil {
			return err
		}
		if a.Status != ledger.StatusActive {
			return ErrAccountInactive
		}
		e, err = ledger.NewEntry(accountID, description, transactionDate, amount, direction)
		if err != nil {
			return err
		}
		if err = entries.Create(e); err != nil {
			return err
		}
		a.Apply(e)
		return accounts.Update(a)
	})
	if err != nil {
		log.Error("posting failed", "error", err)
		return nil, err
	}
	log.Info("entry posted", "entryID", e.ID, "direction", e.Direction, "amount", e.Amount)
	return e, nil
}

// GetBalance returns the account's running balance.
func (s *Service) GetBalance(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return decimal.Zero, err
	}
	a, err := repo.Get(accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return a.Balance, nil
}

// ListEntries returns the most recent entries posted against an account.
func (s *Service) ListEntries(ctx context.Context, accountID uuid.UUID) ([]*ledger.Entry, error) {
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	if _, err = accounts.Get(accountID); err != nil {
		return nil, err
	}
	entries, err := s.uow.EntryRepository()
	if err != nil {
		return nil, err
	}
	return entries.ListByAccount(accountID)
}

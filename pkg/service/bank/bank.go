// Package bank provides the bank-feed business logic: bank account
// provisioning, idempotent feed import, reconciliation candidate search,
// and the atomic match commit.
package bank

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/norrbok/norrbok/pkg/categorize"
	"github.com/norrbok/norrbok/pkg/domain/bank"
	"github.com/norrbok/norrbok/pkg/domain/ledger"
	"github.com/norrbok/norrbok/pkg/money"
	"github.com/norrbok/norrbok/pkg/repository"
)

// Service provides bank-feed operations over a unit of work.
type Service struct {
	uow         repository.UnitOfWork
	categorizer *categorize.Categorizer
	logger      *slog.Logger
}

// New creates a bank Service.
func New(uow repository.UnitOfWork, categorizer *categorize.Categorizer, logger *slog.Logger) *Service {
	return &Service{uow: uow, categorizer: categorizer, logger: logger}
}

// CreateBankAccount creates a bank account for a company.
func (s *Service) CreateBankAccount(
	ctx context.Context,
	companyID uuid.UUID,
	name, bankName, iban, bic string,
	currency money.Code,
) (a *bank.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.BankAccountRepository()
		if err != nil {
			return err
		}
		a, err = bank.NewAccount(companyID, name, bankName, iban, bic, currency)
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

// Import ingests feed rows for a bank account. The import is idempotent on
// each row's external id: rows already stored are skipped, and the returned
// slice holds the stored state of every referenced row, whether it was
// inserted now or on an earlier import. The bank account's own balance is
// not touched; balance sync against the feed is a separate concern.
func (s *Service) Import(
	ctx context.Context,
	bankAccountID uuid.UUID,
	rows []bank.FeedRow,
) (stored []*bank.Transaction, err error) {
	log := s.logger.With("context", "Import", "bankAccountID", bankAccountID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.BankAccountRepository()
		if err != nil {
			return err
		}
		if _, err = accounts.Get(bankAccountID); err != nil {
			return err
		}
		repo, err := uow.BankTransactionRepository()
		if err != nil {
			return err
		}
		txs := make([]*bank.Transaction, 0, len(rows))
		externalIDs := make([]string, 0, len(rows))
		for _, row := range rows {
			tx, err := bank.NewTransaction(bankAccountID, row)
			if err != nil {
				return err
			}
			tx.SuggestedCategory = s.categorizer.Categorize(tx.Description)
			txs = append(txs, tx)
			externalIDs = append(externalIDs, tx.ExternalID)
		}
		if err = repo.UpsertBatch(txs); err != nil {
			return err
		}
		stored, err = repo.ListByExternalIDs(bankAccountID, externalIDs)
		return err
	})
	if err != nil {
		log.Error("import failed", "error", err)
		return nil, err
	}
	log.Info("feed imported", "rows", len(rows), "stored", len(stored))
	return stored, nil
}

// FindMatches returns reconciliation candidates for a bank transaction: the
// unmatched ledger entries whose amount equals the absolute bank amount and
// whose description contains the bank description. Candidates are
// unranked; an empty result is not an error. Whether the bank transaction
// itself is already matched is deliberately not checked here — that is the
// committer's boundary.
func (s *Service) FindMatches(ctx context.Context, bankTransactionID uuid.UUID) ([]*ledger.Entry, error) {
	txRepo, err := s.uow.BankTransactionRepository()
	if err != nil {
		return nil, err
	}
	tx, err := txRepo.Get(bankTransactionID)
	if err != nil {
		return nil, err
	}
	entries, err := s.uow.EntryRepository()
	if err != nil {
		return nil, err
	}
	return entries.FindUnmatched(money.Round(tx.Amount.Abs()), tx.Description)
}

// CommitMatch links a bank transaction and a ledger entry as reconciled:
// the bank side becomes CLEARED and matched, the ledger side records the
// bank transaction id. Both writes land in one transaction.
//
// Committing the same pair again is a no-op returning the committed state.
// Committing against a side that is already matched to a different
// counterpart fails with ErrMatchConflict before any mutation.
func (s *Service) CommitMatch(
	ctx context.Context,
	bankTransactionID, entryID uuid.UUID,
) (tx *bank.Transaction, err error) {
	log := s.logger.With(
		"context", "CommitMatch",
		"bankTransactionID", bankTransactionID,
		"entryID", entryID,
	)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txRepo, err := uow.BankTransactionRepository()
		if err != nil {
			return err
		}
		entryRepo, err := uow.EntryRepository()
		if err != nil {
			return err
		}
		// Lock order is fixed (bank side first) so concurrent commits on
		// the same pair cannot deadlock.
		tx, err = txRepo.GetForUpdate(bankTransactionID)
		if err != nil {
			return err
		}
		entry, err := entryRepo.GetForUpdate(entryID)
		if err != nil {
			return err
		}

		alreadyThisPair := tx.IsMatched &&
			entry.IsMatched &&
			entry.MatchedBankTransactionID != nil &&
			*entry.MatchedBankTransactionID == tx.ID
		if alreadyThisPair {
			return nil
		}
		if tx.IsMatched || entry.IsMatched {
			return bank.ErrMatchConflict
		}

		tx.MarkCleared()
		entry.MarkMatched(tx.ID)
		if err = txRepo.Update(tx); err != nil {
			return err
		}
		return entryRepo.Update(entry)
	})
	if err != nil {
		log.Error("match commit failed", "error", err)
		return nil, err
	}
	log.Info("match committed", "status", tx.Status)
	return tx, nil
}

// ListBankTransactions returns the most recent imported transactions of a
// bank account.
func (s *Service) ListBankTransactions(ctx context.Context, bankAccountID uuid.UUID) ([]*bank.Transaction, error) {
	accounts, err := s.uow.BankAccountRepository()
	if err != nil {
		return nil, err
	}
	if _, err = accounts.Get(bankAccountID); err != nil {
		return nil, err
	}
	repo, err := s.uow.BankTransactionRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListByBankAccount(bankAccountID)
}

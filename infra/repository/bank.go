package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/norrbok/norrbok/pkg/domain/bank"
	"github.com/norrbok/norrbok/pkg/domain/ledger"
	"github.com/norrbok/norrbok/pkg/money"
	"github.com/norrbok/norrbok/pkg/repository"
)

type bankAccountRepository struct {
	db *gorm.DB
}

// NewBankAccountRepository creates a GORM-backed BankAccountRepository.
func NewBankAccountRepository(db *gorm.DB) repository.BankAccountRepository {
	return &bankAccountRepository{db: db}
}

func bankAccountFromModel(m *BankAccount) *bank.Account {
	return &bank.Account{
		ID:        m.ID,
		CompanyID: m.CompanyID,
		Name:      m.Name,
		BankName:  m.BankName,
		IBAN:      m.IBAN,
		BIC:       m.BIC,
		Currency:  money.Code(m.Currency),
		Balance:   m.Balance,
		CreatedAt: m.CreatedAt,
	}
}

func (r *bankAccountRepository) Create(a *bank.Account) error {
	m := BankAccount{
		Model:     gorm.Model{CreatedAt: a.CreatedAt, UpdatedAt: a.CreatedAt},
		ID:        a.ID,
		CompanyID: a.CompanyID,
		Name:      a.Name,
		BankName:  a.BankName,
		IBAN:      a.IBAN,
		BIC:       a.BIC,
		Currency:  string(a.Currency),
		Balance:   a.Balance,
	}
	result := r.db.Create(&m)
	if result.Error != nil {
		return MapGormErrorToDomain(result.Error)
	}
	return nil
}

func (r *bankAccountRepository) Get(id uuid.UUID) (*bank.Account, error) {
	var m BankAccount
	result := r.db.Where("id = ?", id).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, bank.ErrBankAccountNotFound
		}
		return nil, result.Error
	}
	return bankAccountFromModel(&m), nil
}

func (r *bankAccountRepository) ListByCompany(companyID uuid.UUID) ([]*bank.Account, error) {
	var models []*BankAccount
	result := r.db.Where("company_id = ?", companyID).Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	accounts := make([]*bank.Account, 0, len(models))
	for _, m := range models {
		accounts = append(accounts, bankAccountFromModel(m))
	}
	return accounts, nil
}

type bankTransactionRepository struct {
	db *gorm.DB
}

// NewBankTransactionRepository creates a GORM-backed BankTransactionRepository.
func NewBankTransactionRepository(db *gorm.DB) repository.BankTransactionRepository {
	return &bankTransactionRepository{db: db}
}

func bankTransactionToModel(t *bank.Transaction) *BankTransaction {
	return &BankTransaction{
		Model:             gorm.Model{CreatedAt: t.CreatedAt, UpdatedAt: t.CreatedAt},
		ID:                t.ID,
		BankAccountID:     t.BankAccountID,
		ExternalID:        t.ExternalID,
		TransactionDate:   t.TransactionDate,
		Amount:            t.Amount,
		Description:       t.Description,
		Reference:         t.Reference,
		Currency:          string(t.Currency),
		Direction:         string(t.Direction),
		Status:            string(t.Status),
		IsMatched:         t.IsMatched,
		SuggestedCategory: t.SuggestedCategory,
	}
}

func bankTransactionFromModel(m *BankTransaction) *bank.Transaction {
	return &bank.Transaction{
		ID:                m.ID,
		BankAccountID:     m.BankAccountID,
		ExternalID:        m.ExternalID,
		TransactionDate:   m.TransactionDate,
		Amount:            m.Amount,
		Description:       m.Description,
		Reference:         m.Reference,
		Currency:          money.Code(m.Currency),
		Direction:         ledger.Direction(m.Direction),
		Status:            bank.TransactionStatus(m.Status),
		IsMatched:         m.IsMatched,
		SuggestedCategory: m.SuggestedCategory,
		CreatedAt:         m.CreatedAt,
	}
}

// UpsertBatch inserts the rows in one round-trip, skipping any whose
// (bank_account_id, external_id) pair already exists.
func (r *bankTransactionRepository) UpsertBatch(txs []*bank.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	models := make([]*BankTransaction, 0, len(txs))
	for _, t := range txs {
		models = append(models, bankTransactionToModel(t))
	}
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "bank_account_id"}, {Name: "external_id"}},
		DoNothing: true,
	}).Create(&models)
	if result.Error != nil {
		return MapGormErrorToDomain(result.Error)
	}
	return nil
}

func (r *bankTransactionRepository) Get(id uuid.UUID) (*bank.Transaction, error) {
	return r.get(r.db, id)
}

func (r *bankTransactionRepository) GetForUpdate(id uuid.UUID) (*bank.Transaction, error) {
	return r.get(forUpdate(r.db), id)
}

func (r *bankTransactionRepository) get(db *gorm.DB, id uuid.UUID) (*bank.Transaction, error) {
	var m BankTransaction
	result := db.Where("id = ?", id).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, bank.ErrBankTransactionNotFound
		}
		return nil, result.Error
	}
	return bankTransactionFromModel(&m), nil
}

func (r *bankTransactionRepository) ListByExternalIDs(bankAccountID uuid.UUID, externalIDs []string) ([]*bank.Transaction, error) {
	var models []*BankTransaction
	result := r.db.
		Where("bank_account_id = ?", bankAccountID).
		Where("external_id IN ?", externalIDs).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	txs := make([]*bank.Transaction, 0, len(models))
	for _, m := range models {
		txs = append(txs, bankTransactionFromModel(m))
	}
	return txs, nil
}

func (r *bankTransactionRepository) ListByBankAccount(bankAccountID uuid.UUID) ([]*bank.Transaction, error) {
	var models []*BankTransaction
	result := r.db.
		Where("bank_account_id = ?", bankAccountID).
		Order("transaction_date desc").
		Limit(100).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	txs := make([]*bank.Transaction, 0, len(models))
	for _, m := range models {
		txs = append(txs, bankTransactionFromModel(m))
	}
	return txs, nil
}

func (r *bankTransactionRepository) Update(t *bank.Transaction) error {
	result := r.db.Model(&BankTransaction{}).
		Where("id = ?", t.ID).
		Updates(map[string]any{
			"status":     string(t.Status),
			"is_matched": t.IsMatched,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return MapGormErrorToDomain(result.Error)
	}
	if result.RowsAffected == 0 {
		return bank.ErrBankTransactionNotFound
	}
	return nil
}

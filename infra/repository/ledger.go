package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/norrbok/norrbok/pkg/domain/ledger"
	"github.com/norrbok/norrbok/pkg/repository"
)

// forUpdate adds a row lock on dialects that support it. SQLite is a
// single-writer store, so the clause is both unsupported and unneeded there.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a GORM-backed AccountRepository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func accountToModel(a *ledger.Account) *Account {
	return &Account{
		Model: gorm.Model{
			CreatedAt: a.CreatedAt,
			UpdatedAt: a.UpdatedAt,
		},
		ID:        a.ID,
		CompanyID: a.CompanyID,
		Code:      a.Code,
		Name:      a.Name,
		Type:      string(a.Type),
		Status:    string(a.Status),
		Balance:   a.Balance,
	}
}

func accountFromModel(m *Account) *ledger.Account {
	return &ledger.Account{
		ID:        m.ID,
		CompanyID: m.CompanyID,
		Code:      m.Code,
		Name:      m.Name,
		Type:      ledger.Type(m.Type),
		Status:    ledger.Status(m.Status),
		Balance:   m.Balance,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *accountRepository) Create(a *ledger.Account) error {
	result := r.db.Create(accountToModel(a))
	if result.Error != nil {
		return MapGormErrorToDomain(result.Error)
	}
	return nil
}

func (r *accountRepository) CreateBatch(accounts []*ledger.Account) error {
	models := make([]*Account, 0, len(accounts))
	for _, a := range accounts {
		models = append(models, accountToModel(a))
	}
	result := r.db.Create(&models)
	if result.Error != nil {
		return MapGormErrorToDomain(result.Error)
	}
	return nil
}

func (r *accountRepository) Get(id uuid.UUID) (*ledger.Account, error) {
	return r.get(r.db, id)
}

func (r *accountRepository) GetForUpdate(id uuid.UUID) (*ledger.Account, error) {
	return r.get(forUpdate(r.db), id)
}

func (r *accountRepository) get(db *gorm.DB, id uuid.UUID) (*ledger.Account, error) {
	var m Account
	result := db.Where("id = ?", id).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrAccountNotFound
		}
		return nil, result.Error
	}
	return accountFromModel(&m), nil
}

func (r *accountRepository) ListByCompany(companyID uuid.UUID) ([]*ledger.Account, error) {
	var models []*Account
	result := r.db.Where("company_id = ?", companyID).Order("code asc").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	accounts := make([]*ledger.Account, 0, len(models))
	for _, m := range models {
		accounts = append(accounts, accountFromModel(m))
	}
	return accounts, nil
}

func (r *accountRepository) Update(a *ledger.Account) error {
	result := r.db.Model(&Account{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"balance":    a.Balance,
			"status":     string(a.Status),
			"name":       a.Name,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return MapGormErrorToDomain(result.Error)
	}
	if result.RowsAffected == 0 {
		return ledger.ErrAccountNotFound
	}
	return nil
}

type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a GORM-backed EntryRepository.
func NewEntryRepository(db *gorm.DB) repository.EntryRepository {
	return &entryRepository{db: db}
}

func entryFromModel(m *Entry) *ledger.Entry {
	return ledger.NewEntryFromData(
		m.ID,
		m.AccountID,
		m.Description,
		m.TransactionDate,
		m.Amount,
		ledger.Direction(m.Direction),
		m.IsMatched,
		m.MatchedBankTransactionID,
		m.CreatedAt,
	)
}

func (r *entryRepository) Create(e *ledger.Entry) error {
	m := Entry{
		Model: gorm.Model{
			CreatedAt: e.CreatedAt,
			UpdatedAt: e.CreatedAt,
		},
		ID:                       e.ID,
		AccountID:                e.AccountID,
		Description:              e.Description,
		TransactionDate:          e.TransactionDate,
		Amount:                   e.Amount,
		Direction:                string(e.Direction),
		IsMatched:                e.IsMatched,
		MatchedBankTransactionID: e.MatchedBankTransactionID,
	}
	result := r.db.Create(&m)
	if result.Error != nil {
		return MapGormErrorToDomain(result.Error)
	}
	return nil
}

func (r *entryRepository) Get(id uuid.UUID) (*ledger.Entry, error) {
	return r.get(r.db, id)
}

func (r *entryRepository) GetForUpdate(id uuid.UUID) (*ledger.Entry, error) {
	return r.get(forUpdate(r.db), id)
}

func (r *entryRepository) get(db *gorm.DB, id uuid.UUID) (*ledger.Entry, error) {
	var m Entry
	result := db.Where("id = ?", id).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrEntryNotFound
		}
		return nil, result.Error
	}
	return entryFromModel(&m), nil
}

func (r *entryRepository) ListByAccount(accountID uuid.UUID) ([]*ledger.Entry, error) {
	var models []*Entry
	result := r.db.Where("account_id = ?", accountID).
		Order("transaction_date desc").
		Limit(100).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	entries := make([]*ledger.Entry, 0, len(models))
	for _, m := range models {
		entries = append(entries, entryFromModel(m))
	}
	return entries, nil
}

func (r *entryRepository) FindUnmatched(amount decimal.Decimal, descriptionContains string) ([]*ledger.Entry, error) {
	var models []*Entry
	result := r.db.
		Where("is_matched = ?", false).
		Where("amount = ?", amount).
		Where("description LIKE ?", "%"+descriptionContains+"%").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	entries := make([]*ledger.Entry, 0, len(models))
	for _, m := range models {
		entries = append(entries, entryFromModel(m))
	}
	return entries, nil
}

func (r *entryRepository) Update(e *ledger.Entry) error {
	result := r.db.Model(&Entry{}).
		Where("id = ?", e.ID).
		Updates(map[string]any{
			"is_matched":                  e.IsMatched,
			"matched_bank_transaction_id": e.MatchedBankTransactionID,
			"updated_at":                  time.Now().UTC(),
		})
	if result.Error != nil {
		return MapGormErrorToDomain(result.Error)
	}
	if result.RowsAffected == 0 {
		return ledger.ErrEntryNotFound
	}
	return nil
}

package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Company represents a company record in the database.
type Company struct {
	gorm.Model
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"not null;size:255"`
	OrgNumber string    `gorm:"size:20"`
}

// Account represents a general-ledger account record in the database.
// Code is unique within a company's chart.
type Account struct {
	gorm.Model
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	CompanyID uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_account_company_code"`
	Code      string          `gorm:"not null;size:10;uniqueIndex:idx_account_company_code"`
	Name      string          `gorm:"not null;size:255"`
	Type      string          `gorm:"type:varchar(16);not null"`
	Status    string          `gorm:"type:varchar(8);not null;default:'ACTIVE'"`
	Balance   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// Entry represents a posted ledger entry.
type Entry struct {
	gorm.Model
	ID                       uuid.UUID       `gorm:"type:uuid;primary_key"`
	AccountID                uuid.UUID       `gorm:"type:uuid;index"`
	Description              string          `gorm:"size:512"`
	TransactionDate          time.Time       `gorm:"not null"`
	Amount                   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Direction                string          `gorm:"type:varchar(6);not null"`
	IsMatched                bool            `gorm:"not null;default:false;index"`
	MatchedBankTransactionID *uuid.UUID      `gorm:"type:uuid"`
}

// BankAccount represents a company's bank account.
type BankAccount struct {
	gorm.Model
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	CompanyID uuid.UUID       `gorm:"type:uuid;index"`
	Name      string          `gorm:"not null;size:255"`
	BankName  string          `gorm:"size:255"`
	IBAN      string          `gorm:"size:34"`
	BIC       string          `gorm:"size:11"`
	Currency  string          `gorm:"type:varchar(3);not null;default:'SEK'"`
	Balance   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// BankTransaction represents an imported bank-feed transaction. The
// (bank_account_id, external_id) pair is unique so re-imports cannot
// double-insert.
type BankTransaction struct {
	gorm.Model
	ID                uuid.UUID       `gorm:"type:uuid;primary_key"`
	BankAccountID     uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_bank_txn_external"`
	ExternalID        string          `gorm:"not null;size:255;uniqueIndex:idx_bank_txn_external"`
	TransactionDate   time.Time       `gorm:"not null"`
	Amount            decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Description       string          `gorm:"size:512"`
	Reference         string          `gorm:"size:255"`
	Currency          string          `gorm:"type:varchar(3);not null;default:'SEK'"`
	Direction         string          `gorm:"type:varchar(6);not null;default:'CREDIT'"`
	Status            string          `gorm:"type:varchar(8);not null;default:'PENDING'"`
	IsMatched         bool            `gorm:"not null;default:false;index"`
	SuggestedCategory string          `gorm:"size:64"`
}

// User represents a user record in the database.
type User struct {
	gorm.Model
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Username string    `gorm:"uniqueIndex;not null;size:50"`
	Email    string    `gorm:"uniqueIndex;not null;size:255"`
	Password string    `gorm:"not null"`
}

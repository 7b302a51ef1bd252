// Package company holds the company entity that owns a chart of accounts
// and its bank accounts.
package company

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/norrbok/norrbok/pkg/domain"
)

// ErrCompanyNotFound is returned when a company cannot be found.
var ErrCompanyNotFound = fmt.Errorf("company %w", domain.ErrNotFound)

// Company is the bookkeeping subject: accounts and bank accounts belong to
// exactly one company.
type Company struct {
	ID        uuid.UUID
	Name      string
	OrgNumber string
	CreatedAt time.Time
}

// NewCompany validates and constructs a company.
func NewCompany(name, orgNumber string) (*Company, error) {
	if name == "" {
		return nil, errors.New("company name is required")
	}
	return &Company{
		ID:        uuid.New(),
		Name:      name,
		OrgNumber: orgNumber,
		CreatedAt: time.Now().UTC(),
	}, nil
}

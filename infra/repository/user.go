package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/norrbok/norrbok/pkg/domain/company"
	"github.com/norrbok/norrbok/pkg/domain/user"
	"github.com/norrbok/norrbok/pkg/repository"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a GORM-backed UserRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func userFromModel(m *User) *user.User {
	return user.NewUserFromData(m.ID, m.Username, m.Email, m.Password, m.CreatedAt, m.UpdatedAt)
}

func (r *userRepository) Create(u *user.User) error {
	m := User{
		Model:    gorm.Model{CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt},
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Password: u.Password,
	}
	result := r.db.Create(&m)
	if result.Error != nil {
		return MapGormErrorToDomain(result.Error)
	}
	return nil
}

func (r *userRepository) Get(id uuid.UUID) (*user.User, error) {
	var m User
	result := r.db.Where("id = ?", id).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, result.Error
	}
	return userFromModel(&m), nil
}

func (r *userRepository) GetByEmail(email string) (*user.User, error) {
	var m User
	result := r.db.Where("email = ?", email).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, result.Error
	}
	return userFromModel(&m), nil
}

func (r *userRepository) GetByUsername(username string) (*user.User, error) {
	var m User
	result := r.db.Where("username = ?", username).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, result.Error
	}
	return userFromModel(&m), nil
}

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a GORM-backed CompanyRepository.
func NewCompanyRepository(db *gorm.DB) repository.CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(c *company.Company) error {
	m := Company{
		Model:     gorm.Model{CreatedAt: c.CreatedAt, UpdatedAt: c.CreatedAt},
		ID:        c.ID,
		Name:      c.Name,
		OrgNumber: c.OrgNumber,
	}
	result := r.db.Create(&m)
	if result.Error != nil {
		return MapGormErrorToDomain(result.Error)
	}
	return nil
}

func (r *companyRepository) Get(id uuid.UUID) (*company.Company, error) {
	var m Company
	result := r.db.Where("id = ?", id).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, company.ErrCompanyNotFound
		}
		return nil, result.Error
	}
	return &company.Company{
		ID:        m.ID,
		Name:      m.Name,
		OrgNumber: m.OrgNumber,
		CreatedAt: m.CreatedAt,
	}, nil
}

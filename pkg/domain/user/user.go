// Package user holds the user entity and its password handling.
package user

import (
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/norrbok/norrbok/pkg/domain"
)

var (
	// ErrUserNotFound is returned when a user cannot be found.
	ErrUserNotFound = fmt.Errorf("user %w", domain.ErrNotFound)
	// ErrUserUnauthorized is returned when credentials do not check out.
	ErrUserUnauthorized = errors.New("user unauthorized")
)

// User represents an authenticated API user.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated"`
}

// NewUser creates a User with a bcrypt-hashed password.
func NewUser(username, email, password string) (*User, error) {
	if username == "" {
		return nil, errors.New("username cannot be empty")
	}
	if !IsEmail(email) {
		return nil, errors.New("invalid email address")
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}
	hashed, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Password:  hashed,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NewUserFromData hydrates a User from raw data.
func NewUserFromData(
	id uuid.UUID,
	username, email, password string,
	created, updated time.Time,
) *User {
	return &User{
		ID:        id,
		Username:  username,
		Email:     email,
		Password:  password,
		CreatedAt: created,
		UpdatedAt: updated,
	}
}

// CheckPassword compares a plain password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// HashPassword hashes a plain password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// IsEmail reports whether the string is a valid email address.
func IsEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// Package user provides account registration and lookup on top of the
// unit-of-work boundary.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/norrbok/norrbok/pkg/domain/user"
	"github.com/norrbok/norrbok/pkg/repository"
)

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger.With("context", "user-service")}
}

// Register creates a user with a hashed password. Duplicate usernames or
// emails surface as domain.ErrAlreadyExists from the storage layer.
func (s *Service) Register(ctx context.Context, username, email, password string) (*user.User, error) {
	u, err := user.NewUser(username, email, password)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		return users.Create(u)
	})
	if err != nil {
		s.logger.Error("registration failed", "username", username, "error", err)
		return nil, err
	}
	s.logger.Info("user registered", "user_id", u.ID, "username", username)
	return u, nil
}

// Get returns the user by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var u *user.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = users.Get(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Package auth implements credential checking and JWT issuance.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/norrbok/norrbok/pkg/config"
	"github.com/norrbok/norrbok/pkg/domain"
	"github.com/norrbok/norrbok/pkg/domain/user"
	"github.com/norrbok/norrbok/pkg/repository"
)

type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, cfg *config.Jwt, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger.With("context", "auth-service")}
}

// Login verifies the credentials and returns a signed token. The identity
// may be a username or an email address. Unknown identities and wrong
// passwords both surface as user.ErrUserUnauthorized so callers cannot
// probe for which accounts exist.
func (s *Service) Login(ctx context.Context, identity, password string) (string, error) {
	var u *user.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if user.IsEmail(identity) {
			u, err = users.GetByEmail(identity)
		} else {
			u, err = users.GetByUsername(identity)
		}
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("login attempt for unknown identity", "identity", identity)
			return "", user.ErrUserUnauthorized
		}
		return "", err
	}
	if !u.CheckPassword(password) {
		s.logger.Warn("login attempt with wrong password", "user_id", u.ID)
		return "", user.ErrUserUnauthorized
	}

	token, err := s.GenerateToken(u)
	if err != nil {
		return "", err
	}
	s.logger.Info("user logged in", "user_id", u.ID)
	return token, nil
}

// GenerateToken signs an HS256 token carrying the user id.
func (s *Service) GenerateToken(u *user.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID.String(),
		"exp":     time.Now().Add(s.cfg.Expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// UserIDFromToken extracts the subject user id from a verified token.
func UserIDFromToken(token *jwt.Token) (uuid.UUID, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	return id, nil
}

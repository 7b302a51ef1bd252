package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/norrbok/norrbok/pkg/domain"
)

// MapGormErrorToDomain converts GORM errors to domain errors so database
// concerns stay inside the infrastructure layer. The whole error chain is
// traversed because GORM wraps driver errors.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}

	currentErr := err
	for currentErr != nil {
		switch {
		case errors.Is(currentErr, gorm.ErrDuplicatedKey):
			return domain.ErrAlreadyExists
		case errors.Is(currentErr, gorm.ErrRecordNotFound):
			return domain.ErrNotFound
		}
		currentErr = errors.Unwrap(currentErr)
	}

	return err
}

// Package domain defines errors shared across the domain packages.
package domain

import "errors"

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned when a uniqueness constraint is violated.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrConflict is returned when a mutation would contradict committed
	// state, such as re-matching an already matched transaction.
	ErrConflict = errors.New("conflicting state")
)

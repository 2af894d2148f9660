// Package repository holds the gorm backed persistence of users, exercices,
// health conditions and exercice assignments.
package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a unique column already holds the value.
	ErrConflict = errors.New("record already exists")
	// ErrInvalidReference is returned when a foreign key points to a missing row.
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// translate maps store errors onto the package errors. Anything else is
// wrapped with the operation name.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, ErrConflict)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: %w", op, ErrInvalidReference)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

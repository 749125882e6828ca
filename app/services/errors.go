package services

import (
	"errors"
	"strings"
)

// Validation errors are raised before any statement reaches the store.
var (
	// ErrInvalidTable means the table name is not on the allow-list.
	ErrInvalidTable = errors.New("table not allow-listed")
	// ErrInvalidColumn means the record references a column the table
	// does not have.
	ErrInvalidColumn = errors.New("unknown column")
	// ErrEmptyRecord means a create/update carried no columns at all.
	ErrEmptyRecord = errors.New("record has no columns")
	// ErrConstraint wraps a uniqueness or foreign-key failure reported
	// by the store.
	ErrConstraint = errors.New("constraint violation")
	// ErrInvalidCredentials is returned on a failed signin.
	ErrInvalidCredentials = errors.New("incorrect email or password")
)

// isConstraintErr reports whether err is a SQLite constraint failure
// (FOREIGN KEY, UNIQUE, NOT NULL, CHECK all carry the word).
func isConstraintErr(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "constraint")
}

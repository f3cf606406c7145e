// Package model provides domain model for csveda
package model

import "errors"

var (
	// ErrDuplicateColumnName is returned when a rename would produce duplicate column names
	ErrDuplicateColumnName = errors.New("duplicate column name")

	// ErrColumnCountMismatch is returned when a rename does not supply one name per column
	ErrColumnCountMismatch = errors.New("column count mismatch")
)

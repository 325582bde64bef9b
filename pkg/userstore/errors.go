package userstore

import "errors"

var (
	// ErrNotFound indicates no account matches the lookup.
	ErrNotFound = errors.New("userstore: account not found")
	// ErrConflict indicates a write would violate a uniqueness constraint
	// (duplicate email or provider identity).
	ErrConflict = errors.New("userstore: account conflict")
	// ErrInvalidRecord indicates a record with required fields missing.
	ErrInvalidRecord = errors.New("userstore: invalid record")
)

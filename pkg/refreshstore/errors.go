package refreshstore

import "errors"

var (
	// ErrNotFound covers unknown, expired, rotated and deleted credentials
	// alike; callers must not be able to tell which.
	ErrNotFound = errors.New("refreshstore: credential not found")

	// ErrInvalidToken indicates a token with missing fields or a TTL in the
	// past was offered for storage.
	ErrInvalidToken = errors.New("refreshstore: invalid token")
)

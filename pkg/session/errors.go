package session

import "errors"

var (
	// ErrInvalidCredential indicates the access credential is malformed or expired.
	ErrInvalidCredential = errors.New("session.invalid_credential")

	// ErrMissingUser indicates an operation requires a user snapshot and none was given.
	ErrMissingUser = errors.New("session.missing_user")

	// ErrStorageUnavailable indicates the persistent store rejected a write.
	// In-memory state is still updated; only persistence is degraded.
	ErrStorageUnavailable = errors.New("session.storage_unavailable")

	// ErrStaleRenewal indicates a renewal completed after the session it
	// belonged to was cleared. The result must be discarded.
	ErrStaleRenewal = errors.New("session.stale_renewal")
)

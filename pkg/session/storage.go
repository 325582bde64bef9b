package session

import "time"

// Storage persists the three named session values. Implementations are
// best-effort and must never panic: Set reports failure through its return
// value, Get reports absence, and Delete of a missing value is a no-op.
// Writing the same value twice has no additional effect.
type Storage interface {
	// Get returns the named value and whether it is present.
	Get(name string) (string, bool)

	// Set stores the named value with the given lifetime. It returns false
	// when the store is unavailable; callers treat that as degraded
	// persistence, not as a fatal error.
	Set(name, value string, ttl time.Duration) bool

	// Delete removes the named value. Deleting a missing value is a no-op.
	Delete(name string)
}

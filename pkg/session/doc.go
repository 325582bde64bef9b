// Package session holds the authoritative authentication record of the
// client runtime: the access and refresh credentials, the last-known user
// profile snapshot, and the derived authenticated flag.
//
// A Manager owns the record and is its sole write path. It is an explicitly
// constructed, dependency-injected service (never ambient global state) with
// a defined lifecycle:
//
//	cold → hydrating → hydrated
//
// Hydrate restores the record from the persisted cookie values exactly once
// per process; once hydrated, further calls are no-ops. The session payload
// may still change while hydrated — through SetAuth, SetUser, ApplyRenewal
// and ClearAuth — but every mutation that changes the access credential also
// rewrites the persisted snapshot as one logical operation.
//
// The core invariant is fail-closed: authenticated implies the access
// credential is present, decodable, unexpired, and a user snapshot exists.
// IsAuthenticated recomputes this instead of trusting the stored flag, so
// external tampering with the credential self-corrects into a cleared
// session on the next check. No operation in this package panics or fails
// open; on any doubt the session is cleared and access denied.
//
// Persistence goes through the Storage interface: three independently named,
// independently expiring string values. Writes are best-effort with a typed
// result — a failed write degrades persistence but never corrupts in-memory
// state.
package session

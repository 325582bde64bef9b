// Package apiclient is the authenticated HTTP client used by application
// code: get/post/put/patch/delete against relative endpoint paths, with the
// bearer credential attached and transparently renewed.
//
// The access credential is read fresh from the session manager at call
// time, never captured at construction, so a renewal taking effect
// mid-session is immediately visible to new calls.
//
// # Renewal
//
// A 401 on a request that has a refresh credential available and has not
// already been retried triggers renewal. Renewal is single-flight: a
// process-wide in-flight registry (golang.org/x/sync/singleflight, keyed by
// operation) guarantees at most one outstanding renewal call no matter how
// many requests hit the expiry at once; concurrent callers join the same
// renewal and share its outcome. On success the session is updated — unless
// it was cleared while the renewal was in flight, in which case the result
// is discarded — and the original request is replayed once with the new
// credential. On failure the session is cleared exactly once, a single auth
// error notification fires, and every joined caller gets ErrAuthRequired. A
// 403, or a second 401 after renewal, is terminal without another attempt.
//
// # Errors
//
// Every failure reaching application code is a *Error carrying an HTTP-like
// status, a message, and an optional machine-readable code; no raw
// transport error crosses the boundary. Sentinels classify the failure:
// ErrAuthRequired (sign in again), ErrRenewalFailed, ErrNetwork.
package apiclient

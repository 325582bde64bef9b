// Package profile defines the user profile snapshot shared between the
// session state, the persisted profile cookie and the route guards.
//
// The snapshot is the last-known profile of the signed-in user, including
// the optional creator application with its review status. It is persisted
// as a JSON cookie so that the edge classifier can answer the creator-gated
// check without a network call.
//
// Snapshot decoding is fail-closed: a snapshot that cannot be parsed is
// reported as ErrMalformedSnapshot and callers treat the user as having no
// profile at all.
package profile

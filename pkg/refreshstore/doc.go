// Package refreshstore persists refresh credentials server-side. A refresh
// credential is an opaque identifier with a TTL; renewing with it rotates it,
// which atomically invalidates the predecessor. Presenting a rotated,
// deleted, or expired credential is indistinguishable from presenting an
// unknown one: every such path returns ErrNotFound, and the caller treats it
// as a renewal failure.
//
// Two implementations are provided: MemoryStore for tests and single-process
// setups, and RedisStore for deployments where renewals may land on any
// instance.
package refreshstore

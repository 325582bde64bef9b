// Package pg provides PostgreSQL connection helpers for the account store:
// env-driven pool configuration, retrying connect, and a health check probe.
// Schema management lives with the store (pkg/userstore/migrations).
package pg

// Package userstore persists user accounts: the profile snapshot served to
// clients plus the credentials that never leave the server (password hash,
// OAuth provider identity). Lookups exist for each sign-in path: by id for
// bearer-authenticated requests, by email for password login, by provider
// identity for OAuth callbacks.
//
// MemoryStore backs tests and single-process setups; Postgres is the
// production implementation, with the schema managed by the embedded goose
// migrations in the migrations subpackage.
package userstore

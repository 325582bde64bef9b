package userstore

import (
	"context"

	"github.com/fanvault/accesskit/pkg/profile"
)

// Record is one stored account: the client-visible profile plus server-only
// credential fields. Provider is empty for password accounts.
type Record struct {
	Profile      profile.User
	PasswordHash string
	Provider     string
	ProviderID   string
}

func (r Record) validate() error {
	if r.Profile.ID == "" || r.Profile.Email == "" {
		return ErrInvalidRecord
	}
	if r.PasswordHash == "" && r.Provider == "" {
		return ErrInvalidRecord
	}
	return nil
}

// Store is the persistence contract for accounts.
type Store interface {
	// Create persists a new account; ErrConflict when the email or provider
	// identity is taken.
	Create(ctx context.Context, rec Record) error

	// ByID returns the account with the given profile ID.
	ByID(ctx context.Context, id string) (Record, error)

	// ByEmail returns the account registered under an email address.
	ByEmail(ctx context.Context, email string) (Record, error)

	// ByProvider returns the account linked to an OAuth provider identity.
	ByProvider(ctx context.Context, provider, providerID string) (Record, error)

	// Update replaces an existing account's fields.
	Update(ctx context.Context, rec Record) error
}

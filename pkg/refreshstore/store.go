package refreshstore

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Token is one refresh credential. ID is the opaque value handed to the
// client; nothing about the user is derivable from it.
type Token struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the token's lifetime has passed.
func (t Token) Expired() bool {
	return !t.ExpiresAt.After(time.Now())
}

// New mints a fresh token for a user with the given lifetime.
func New(userID string, ttl time.Duration) Token {
	now := time.Now().UTC()
	return Token{
		ID:        uuid.NewString(),
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

// Store is the persistence contract for refresh credentials.
type Store interface {
	// Save persists a token until its expiry.
	Save(ctx context.Context, token Token) error

	// Get returns a live token by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (Token, error)

	// Rotate replaces the token identified by oldID with next. The
	// predecessor must exist and be live; after a successful rotation it is
	// gone, so presenting it again fails with ErrNotFound.
	Rotate(ctx context.Context, oldID string, next Token) error

	// Delete revokes a token. Deleting an absent token is not an error.
	Delete(ctx context.Context, id string) error
}

func validate(token Token) error {
	if token.ID == "" || token.UserID == "" || token.Expired() {
		return ErrInvalidToken
	}
	return nil
}

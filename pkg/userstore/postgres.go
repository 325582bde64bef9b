package userstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fanvault/accesskit/pkg/profile"
)

const uniqueViolation = "23505"

// Querier is the subset of pgxpool.Pool the store needs; it also lets tests
// substitute a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres is the production account store. The profile snapshot lives in a
// jsonb column; the credential fields get their own columns so uniqueness is
// enforced by the database.
type Postgres struct {
	db Querier
}

// NewPostgres creates a Postgres-backed account store.
func NewPostgres(db Querier) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, rec Record) error {
	if err := rec.validate(); err != nil {
		return err
	}

	snapshot, err := json.Marshal(rec.Profile)
	if err != nil {
		return fmt.Errorf("userstore: encoding profile: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, provider, provider_id, profile, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	`, rec.Profile.ID, normalizeEmail(rec.Profile.Email), rec.PasswordHash, rec.Provider, rec.ProviderID, snapshot, now)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrConflict
		}
		return fmt.Errorf("userstore: insert account: %w", err)
	}
	return nil
}

func (s *Postgres) ByID(ctx context.Context, id string) (Record, error) {
	return s.scanOne(s.db.QueryRow(ctx, selectColumns+` WHERE id = $1`, id))
}

func (s *Postgres) ByEmail(ctx context.Context, email string) (Record, error) {
	return s.scanOne(s.db.QueryRow(ctx, selectColumns+` WHERE email = $1`, normalizeEmail(email)))
}

func (s *Postgres) ByProvider(ctx context.Context, provider, providerID string) (Record, error) {
	return s.scanOne(s.db.QueryRow(ctx, selectColumns+` WHERE provider = $1 AND provider_id = $2`, provider, providerID))
}

func (s *Postgres) Update(ctx context.Context, rec Record) error {
	if err := rec.validate(); err != nil {
		return err
	}

	snapshot, err := json.Marshal(rec.Profile)
	if err != nil {
		return fmt.Errorf("userstore: encoding profile: %w", err)
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE users
		SET email = $2, password_hash = $3, provider = $4, provider_id = $5, profile = $6, updated_at = $7
		WHERE id = $1
	`, rec.Profile.ID, normalizeEmail(rec.Profile.Email), rec.PasswordHash, rec.Provider, rec.ProviderID, snapshot, time.Now().UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrConflict
		}
		return fmt.Errorf("userstore: update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const selectColumns = `SELECT password_hash, provider, provider_id, profile FROM users`

func (s *Postgres) scanOne(row pgx.Row) (Record, error) {
	var (
		rec      Record
		snapshot []byte
	)
	if err := row.Scan(&rec.PasswordHash, &rec.Provider, &rec.ProviderID, &snapshot); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("userstore: select account: %w", err)
	}

	var user profile.User
	if err := json.Unmarshal(snapshot, &user); err != nil {
		return Record{}, fmt.Errorf("userstore: decoding profile: %w", err)
	}
	rec.Profile = user
	return rec, nil
}

package authapi

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/fanvault/accesskit/pkg/credential"
	"github.com/fanvault/accesskit/pkg/logger"
	"github.com/fanvault/accesskit/pkg/profile"
	"github.com/fanvault/accesskit/pkg/refreshstore"
	"github.com/fanvault/accesskit/pkg/userstore"
)

// Tokens is one minted credential pair.
type Tokens struct {
	Access  string
	Refresh string
}

// Service implements the auth operations behind the HTTP surface.
type Service struct {
	cfg    Config
	users  userstore.Store
	tokens refreshstore.Store
	signer *credential.Signer
	log    *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger.
func WithServiceLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) { s.log = log }
}

// NewService creates the auth service over the given stores.
func NewService(cfg Config, users userstore.Store, tokens refreshstore.Store, opts ...ServiceOption) (*Service, error) {
	signer, err := credential.NewSigner([]byte(cfg.SigningKey))
	if err != nil {
		return nil, err
	}

	s := &Service{
		cfg:    cfg,
		users:  users,
		tokens: tokens,
		signer: signer,
		log:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Login authenticates an email+password pair and mints a credential set.
// Unknown emails, OAuth-only accounts and wrong passwords all collapse to
// ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (Tokens, *profile.User, error) {
	rec, err := s.users.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			return Tokens{}, nil, ErrInvalidCredentials
		}
		return Tokens{}, nil, err
	}
	if rec.PasswordHash == "" {
		return Tokens{}, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return Tokens{}, nil, ErrInvalidCredentials
	}

	tokens, err := s.issue(ctx, rec.Profile.ID)
	if err != nil {
		return Tokens{}, nil, err
	}

	s.log.Info("user signed in", logger.Component("authapi"), logger.UserID(rec.Profile.ID))
	user := rec.Profile
	return tokens, &user, nil
}

// Refresh exchanges a live refresh credential for a new pair, rotating the
// refresh credential so the presented one cannot be used again.
func (s *Service) Refresh(ctx context.Context, refreshID string) (Tokens, *profile.User, error) {
	old, err := s.tokens.Get(ctx, refreshID)
	if err != nil {
		if errors.Is(err, refreshstore.ErrNotFound) {
			return Tokens{}, nil, ErrInvalidRefresh
		}
		return Tokens{}, nil, err
	}

	rec, err := s.users.ByID(ctx, old.UserID)
	if err != nil {
		// The account is gone; the credential is dead weight.
		_ = s.tokens.Delete(ctx, refreshID)
		if errors.Is(err, userstore.ErrNotFound) {
			return Tokens{}, nil, ErrInvalidRefresh
		}
		return Tokens{}, nil, err
	}

	next := refreshstore.New(old.UserID, s.cfg.RefreshTTL)
	if err := s.tokens.Rotate(ctx, refreshID, next); err != nil {
		if errors.Is(err, refreshstore.ErrNotFound) {
			return Tokens{}, nil, ErrInvalidRefresh
		}
		return Tokens{}, nil, err
	}

	access, err := s.signer.Issue(old.UserID, s.cfg.AccessTTL)
	if err != nil {
		return Tokens{}, nil, err
	}

	user := rec.Profile
	return Tokens{Access: access, Refresh: next.ID}, &user, nil
}

// Authenticate verifies a bearer credential and loads the profile it names.
func (s *Service) Authenticate(ctx context.Context, bearer string) (*profile.User, error) {
	claims, err := s.signer.Verify(bearer)
	if err != nil {
		return nil, errors.Join(ErrUnauthorized, err)
	}

	rec, err := s.users.ByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	user := rec.Profile
	return &user, nil
}

// Logout revokes a refresh credential. Revoking an already dead credential
// is not an error; logout must always succeed from the client's view.
func (s *Service) Logout(ctx context.Context, refreshID string) error {
	if refreshID == "" {
		return nil
	}
	return s.tokens.Delete(ctx, refreshID)
}

// issue mints an access credential and persists a fresh refresh credential
// for the given user.
func (s *Service) issue(ctx context.Context, userID string) (Tokens, error) {
	access, err := s.signer.Issue(userID, s.cfg.AccessTTL)
	if err != nil {
		return Tokens{}, err
	}

	refresh := refreshstore.New(userID, s.cfg.RefreshTTL)
	if err := s.tokens.Save(ctx, refresh); err != nil {
		return Tokens{}, err
	}

	return Tokens{Access: access, Refresh: refresh.ID}, nil
}

// HashPassword prepares a password for storage in a userstore record.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

package authapi

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/fanvault/accesskit/pkg/logger"
	"github.com/fanvault/accesskit/pkg/profile"
	"github.com/fanvault/accesskit/pkg/userstore"
)

// ProviderGoogle is the provider name stored on Google-linked accounts.
const ProviderGoogle = "google"

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleConfig holds the Google OAuth client settings.
type GoogleConfig struct {
	ClientID     string        `env:"GOOGLE_OAUTH_CLIENT_ID,required"`
	ClientSecret string        `env:"GOOGLE_OAUTH_CLIENT_SECRET,required"`
	RedirectURL  string        `env:"GOOGLE_OAUTH_REDIRECT_URL,required"`
	Scopes       []string      `env:"GOOGLE_OAUTH_SCOPES" envSeparator:"," envDefault:"https://www.googleapis.com/auth/userinfo.email,https://www.googleapis.com/auth/userinfo.profile"`
	StateTTL     time.Duration `env:"GOOGLE_OAUTH_STATE_TTL" envDefault:"10m"`
}

// GoogleOAuth signs users in through Google: it hands out consent URLs with
// one-time CSRF states and exchanges callback codes for platform credentials,
// creating the account on first sign-in.
type GoogleOAuth struct {
	cfg          GoogleConfig
	svc          *Service
	oauth2Config *oauth2.Config
	userinfoURL  string
	log          *slog.Logger

	mu     sync.Mutex
	states map[string]time.Time
}

// GoogleOption configures GoogleOAuth.
type GoogleOption func(*GoogleOAuth)

// WithGoogleLogger sets the logger.
func WithGoogleLogger(log *slog.Logger) GoogleOption {
	return func(g *GoogleOAuth) { g.log = log }
}

// WithGoogleEndpoint overrides the OAuth endpoint and userinfo URL. Tests
// point these at a local server.
func WithGoogleEndpoint(endpoint oauth2.Endpoint, userinfoURL string) GoogleOption {
	return func(g *GoogleOAuth) {
		g.oauth2Config.Endpoint = endpoint
		g.userinfoURL = userinfoURL
	}
}

// NewGoogleOAuth creates the Google sign-in adapter over the auth service.
func NewGoogleOAuth(cfg GoogleConfig, svc *Service, opts ...GoogleOption) *GoogleOAuth {
	g := &GoogleOAuth{
		cfg: cfg,
		svc: svc,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     google.Endpoint,
		},
		userinfoURL: googleUserinfoURL,
		log:         logger.Discard(),
		states:      make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AuthURL returns the consent URL carrying a one-time state parameter.
func (g *GoogleOAuth) AuthURL() (string, error) {
	state, err := g.mintState()
	if err != nil {
		return "", err
	}
	return g.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

// Exchange completes the callback: validates the state, trades the code for
// a Google token, loads the Google profile and signs the matching platform
// account in, creating it on first contact.
func (g *GoogleOAuth) Exchange(ctx context.Context, code, state string) (Tokens, *profile.User, error) {
	if !g.consumeState(state) {
		return Tokens{}, nil, ErrInvalidState
	}

	token, err := g.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return Tokens{}, nil, errors.Join(ErrInvalidCode, err)
	}

	info, err := g.fetchUserinfo(ctx, token)
	if err != nil {
		return Tokens{}, nil, err
	}
	if !info.VerifiedEmail {
		return Tokens{}, nil, ErrUnverifiedEmail
	}

	user, err := g.findOrCreate(ctx, info)
	if err != nil {
		return Tokens{}, nil, err
	}

	tokens, err := g.svc.issue(ctx, user.ID)
	if err != nil {
		return Tokens{}, nil, err
	}

	g.log.Info("google sign-in", logger.Component("authapi"), logger.UserID(user.ID))
	return tokens, user, nil
}

type googleUserinfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func (g *GoogleOAuth) fetchUserinfo(ctx context.Context, token *oauth2.Token) (googleUserinfo, error) {
	client := g.oauth2Config.Client(ctx, token)
	resp, err := client.Get(g.userinfoURL)
	if err != nil {
		return googleUserinfo{}, fmt.Errorf("authapi: fetching google profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return googleUserinfo{}, fmt.Errorf("authapi: google profile fetch returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return googleUserinfo{}, fmt.Errorf("authapi: reading google profile: %w", err)
	}

	var info googleUserinfo
	if err := json.Unmarshal(body, &info); err != nil {
		return googleUserinfo{}, fmt.Errorf("authapi: decoding google profile: %w", err)
	}
	if info.ID == "" || info.Email == "" {
		return googleUserinfo{}, errors.New("authapi: google profile missing id or email")
	}
	return info, nil
}

// findOrCreate resolves the platform account for a Google identity. An email
// already registered through another method is rejected rather than silently
// linked.
func (g *GoogleOAuth) findOrCreate(ctx context.Context, info googleUserinfo) (*profile.User, error) {
	rec, err := g.svc.users.ByProvider(ctx, ProviderGoogle, info.ID)
	if err == nil {
		user := rec.Profile
		return &user, nil
	}
	if !errors.Is(err, userstore.ErrNotFound) {
		return nil, err
	}

	if _, err := g.svc.users.ByEmail(ctx, info.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, userstore.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	user := profile.User{
		ID:         uuid.NewString(),
		Email:      info.Email,
		Name:       info.Name,
		Provider:   ProviderGoogle,
		ProviderID: info.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = g.svc.users.Create(ctx, userstore.Record{
		Profile:    user,
		Provider:   ProviderGoogle,
		ProviderID: info.ID,
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// mintState stores a random one-time state token.
func (g *GoogleOAuth) mintState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("authapi: generating oauth state: %w", err)
	}
	state := base64.RawURLEncoding.EncodeToString(buf)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.states[state] = time.Now().Add(g.cfg.StateTTL)
	return state, nil
}

// consumeState validates and burns a state token.
func (g *GoogleOAuth) consumeState(state string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	expiry, ok := g.states[state]
	if !ok {
		return false
	}
	delete(g.states, state)
	return time.Now().Before(expiry)
}

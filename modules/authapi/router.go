package authapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fanvault/accesskit/pkg/cookie"
	"github.com/fanvault/accesskit/pkg/logger"
	"github.com/fanvault/accesskit/pkg/profile"
	"github.com/fanvault/accesskit/pkg/session"
)

type router struct {
	svc             *Service
	google          *GoogleOAuth
	cookies         *cookie.Manager
	sessCfg         session.Config
	successRedirect string
	log             *slog.Logger
}

// RouterOption configures the HTTP surface.
type RouterOption func(*router)

// WithGoogle mounts the Google sign-in endpoints.
func WithGoogle(g *GoogleOAuth) RouterOption {
	return func(r *router) { r.google = g }
}

// WithCookieManager replaces the cookie manager used for session cookies.
func WithCookieManager(m *cookie.Manager) RouterOption {
	return func(r *router) { r.cookies = m }
}

// WithSessionConfig replaces the cookie names and TTLs.
func WithSessionConfig(cfg session.Config) RouterOption {
	return func(r *router) { r.sessCfg = cfg }
}

// WithSuccessRedirect sets where the OAuth callback lands after sign-in.
func WithSuccessRedirect(path string) RouterOption {
	return func(r *router) { r.successRedirect = path }
}

// WithRouterLogger sets the logger.
func WithRouterLogger(log *slog.Logger) RouterOption {
	return func(r *router) { r.log = log }
}

// Router mounts the auth endpoints.
func Router(svc *Service, opts ...RouterOption) chi.Router {
	h := &router{
		svc:             svc,
		cookies:         cookie.New(),
		sessCfg:         session.DefaultConfig(),
		successRedirect: "/",
		log:             logger.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}

	r := chi.NewRouter()
	r.Post("/auth/login", h.login)
	r.Post("/auth/refresh", h.refresh)
	r.Post("/auth/logout", h.logout)
	r.Get("/users/me", h.me)
	if h.google != nil {
		r.Get("/auth/google", h.googleRedirect)
		r.Get("/auth/google/callback", h.googleCallback)
	}
	return r
}

// session binds a session manager to this request so cookie writes mirror
// what the browser runtime would persist.
func (h *router) session(w http.ResponseWriter, r *http.Request) *session.Manager {
	return session.New(
		session.WithConfig(h.sessCfg),
		session.WithStorage(session.NewHTTPStorage(h.cookies, w, r)),
	)
}

type authResponse struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	User         *profile.User `json:"user,omitempty"`
}

func (h *router) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required", "invalid_request")
		return
	}

	tokens, user, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	if err := h.session(w, r).SetAuth(tokens.Access, tokens.Refresh, user); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{AccessToken: tokens.Access, RefreshToken: tokens.Refresh, User: user})
}

func (h *router) refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "refreshToken is required", "invalid_request")
		return
	}

	tokens, user, err := h.svc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	if err := h.session(w, r).SetAuth(tokens.Access, tokens.Refresh, user); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{AccessToken: tokens.Access, RefreshToken: tokens.Refresh})
}

func (h *router) logout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	sess := h.session(w, r)
	refreshID := req.RefreshToken
	if refreshID == "" {
		// Browser flows send the credential as a cookie, not a body.
		sess.Hydrate()
		refreshID = sess.RefreshToken()
	}

	if err := h.svc.Logout(r.Context(), refreshID); err != nil {
		h.log.Warn("refresh revocation failed", logger.Component("authapi"), logger.Error(err))
	}
	sess.ClearAuth()
	w.WriteHeader(http.StatusNoContent)
}

func (h *router) me(w http.ResponseWriter, r *http.Request) {
	bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || bearer == "" {
		writeError(w, http.StatusUnauthorized, "missing bearer credential", "unauthorized")
		return
	}

	user, err := h.svc.Authenticate(r.Context(), bearer)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *router) googleRedirect(w http.ResponseWriter, r *http.Request) {
	url, err := h.google.AuthURL()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

func (h *router) googleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" || state == "" {
		writeError(w, http.StatusBadRequest, "missing code or state", "invalid_request")
		return
	}

	tokens, user, err := h.google.Exchange(r.Context(), code, state)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	if err := h.session(w, r).SetAuth(tokens.Access, tokens.Refresh, user); err != nil {
		h.writeServiceError(w, err)
		return
	}
	http.Redirect(w, r, h.successRedirect, http.StatusFound)
}

// writeServiceError maps service errors onto the normalized error envelope.
func (h *router) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid email or password", "invalid_credentials")
	case errors.Is(err, ErrInvalidRefresh):
		writeError(w, http.StatusUnauthorized, "refresh credential is no longer valid", "invalid_refresh")
	case errors.Is(err, ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "invalid or expired credential", "unauthorized")
	case errors.Is(err, ErrEmailExists):
		writeError(w, http.StatusConflict, "email already registered with a different method", "email_exists")
	case errors.Is(err, ErrUnverifiedEmail):
		writeError(w, http.StatusForbidden, "google account email is not verified", "unverified_email")
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrInvalidCode):
		writeError(w, http.StatusBadRequest, "oauth exchange failed", "oauth_failed")
	default:
		h.log.Error("unhandled service error", logger.Component("authapi"), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error", "internal")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, map[string]string{"message": message, "code": code})
}

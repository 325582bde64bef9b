package session

import (
	"log/slog"
	"sync"

	"github.com/fanvault/accesskit/pkg/credential"
	"github.com/fanvault/accesskit/pkg/logger"
	"github.com/fanvault/accesskit/pkg/profile"
)

// Manager owns the session record. All mutations go through its methods;
// no other component writes session fields directly.
type Manager struct {
	mu      sync.Mutex
	cfg     Config
	storage Storage
	log     *slog.Logger

	sess  Session
	state State
	epoch uint64
}

// New creates a session manager. Without options it uses in-memory storage,
// the default cookie names/TTLs and a discard logger.
func New(opts ...Option) *Manager {
	m := &Manager{
		cfg: DefaultConfig(),
		log: logger.Discard(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.storage == nil {
		m.storage = NewMemoryStorage()
	}

	return m
}

// SetAuth validates and installs a freshly authenticated session, replacing
// all fields atomically and persisting the three cookie values. An invalid
// credential or missing user clears the session instead (fail-closed) and
// the validation failure is reported to the caller.
func (m *Manager) SetAuth(access, refresh string, user *profile.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !credential.IsValid(access) {
		m.clearLocked()
		return ErrInvalidCredential
	}
	if user == nil {
		m.clearLocked()
		return ErrMissingUser
	}

	snapshot, err := profile.EncodeSnapshot(user)
	if err != nil {
		m.clearLocked()
		return err
	}

	m.sess = Session{
		AccessToken:   access,
		RefreshToken:  refresh,
		User:          user,
		Authenticated: true,
	}

	return m.persistLocked(access, refresh, snapshot)
}

// SetUser replaces only the profile snapshot and rewrites its cookie. The
// credentials are untouched.
func (m *Manager) SetUser(user *profile.User) error {
	if user == nil {
		return ErrMissingUser
	}

	snapshot, err := profile.EncodeSnapshot(user)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sess.User = user
	if !m.storage.Set(m.cfg.ProfileCookie, snapshot, m.cfg.ProfileTTL) {
		m.log.Warn("profile snapshot not persisted", logger.Component("session"))
		return ErrStorageUnavailable
	}
	return nil
}

// ApplyRenewal installs renewed credentials obtained while the session at
// the given epoch was current. A rotated refresh credential replaces the old
// one; an empty rotation keeps it. If the session was cleared since the
// renewal started, the result is discarded and ErrStaleRenewal returned so a
// cleared session is never resurrected.
func (m *Manager) ApplyRenewal(epoch uint64, access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if epoch != m.epoch {
		return ErrStaleRenewal
	}
	if !credential.IsValid(access) {
		m.clearLocked()
		return ErrInvalidCredential
	}
	if m.sess.User == nil {
		m.clearLocked()
		return ErrMissingUser
	}

	m.sess.AccessToken = access
	if refresh != "" {
		m.sess.RefreshToken = refresh
	}
	m.sess.Authenticated = true

	ok := m.storage.Set(m.cfg.AccessCookie, m.sess.AccessToken, m.cfg.AccessTTL)
	ok = m.storage.Set(m.cfg.RefreshCookie, m.sess.RefreshToken, m.cfg.RefreshTTL) && ok
	if !ok {
		m.log.Warn("renewed credentials not persisted", logger.Component("session"))
		return ErrStorageUnavailable
	}
	return nil
}

// ClearAuth deletes the persisted cookies first, then resets the in-memory
// record. It is idempotent; the return value reports whether there was
// anything to clear, which lets callers deduplicate auth-error signals.
func (m *Manager) ClearAuth() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clearLocked()
}

// Logout is ClearAuth under the name application code reaches for.
func (m *Manager) Logout() bool {
	return m.ClearAuth()
}

// Hydrate restores the session from persisted cookies. It runs at most once
// per process lifetime: the first call transitions cold → hydrating →
// hydrated, later calls are no-ops. If all three values are present and the
// access credential is valid the session is restored; anything less clears
// it. Either way the manager ends hydrated.
func (m *Manager) Hydrate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateCold {
		return
	}
	m.state = StateHydrating

	access, okAccess := m.storage.Get(m.cfg.AccessCookie)
	refresh, okRefresh := m.storage.Get(m.cfg.RefreshCookie)
	snapshot, okProfile := m.storage.Get(m.cfg.ProfileCookie)

	m.restoreLocked(access, refresh, snapshot, okAccess && okRefresh && okProfile)
	m.state = StateHydrated
}

// Resync re-reads the persisted cookies into memory after hydration. Cookies
// are the shared medium between tabs and the edge, and the last writer wins:
// a cross-tab logout or renewal becomes visible here. Call it from a
// tab-focus hook or wherever staleness matters.
func (m *Manager) Resync() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateHydrated {
		return
	}

	access, okAccess := m.storage.Get(m.cfg.AccessCookie)
	refresh, okRefresh := m.storage.Get(m.cfg.RefreshCookie)
	snapshot, okProfile := m.storage.Get(m.cfg.ProfileCookie)

	m.restoreLocked(access, refresh, snapshot, okAccess && okRefresh && okProfile)
}

// restoreLocked installs a session from persisted values, or clears on any
// missing or invalid piece.
func (m *Manager) restoreLocked(access, refresh, snapshot string, complete bool) {
	if !complete || !credential.IsValid(access) {
		m.clearLocked()
		return
	}

	user, err := profile.DecodeSnapshot(snapshot)
	if err != nil {
		m.log.Warn("discarding malformed profile snapshot", logger.Component("session"), logger.Error(err))
		m.clearLocked()
		return
	}

	m.sess = Session{
		AccessToken:   access,
		RefreshToken:  refresh,
		User:          user,
		Authenticated: true,
	}
}

// IsAuthenticated recomputes the session invariant instead of trusting the
// stored flag: the access credential must be present, decodable and
// unexpired, and a user snapshot must exist. Any violation forces the
// session back to the cleared state before answering.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.sess.Authenticated {
		return false
	}
	if m.sess.User == nil || !credential.IsValid(m.sess.AccessToken) {
		m.clearLocked()
		return false
	}
	return true
}

// AccessToken returns the current access credential, empty when signed out.
func (m *Manager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess.AccessToken
}

// RefreshToken returns the current refresh credential, empty when signed out.
func (m *Manager) RefreshToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess.RefreshToken
}

// User returns the current profile snapshot, nil when signed out.
func (m *Manager) User() *profile.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess.User
}

// Snapshot returns a copy of the whole session record.
func (m *Manager) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess
}

// State returns the lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Hydrated reports whether the one-time restoration has completed.
func (m *Manager) Hydrated() bool {
	return m.State() == StateHydrated
}

// Epoch identifies the current session incarnation. It advances on every
// clear; renewal completions compare it to detect that they are stale.
func (m *Manager) Epoch() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.epoch
}

func (m *Manager) persistLocked(access, refresh, snapshot string) error {
	ok := m.storage.Set(m.cfg.AccessCookie, access, m.cfg.AccessTTL)
	ok = m.storage.Set(m.cfg.RefreshCookie, refresh, m.cfg.RefreshTTL) && ok
	ok = m.storage.Set(m.cfg.ProfileCookie, snapshot, m.cfg.ProfileTTL) && ok
	if !ok {
		m.log.Warn("session not fully persisted", logger.Component("session"))
		return ErrStorageUnavailable
	}
	return nil
}

func (m *Manager) clearLocked() bool {
	m.storage.Delete(m.cfg.AccessCookie)
	m.storage.Delete(m.cfg.RefreshCookie)
	m.storage.Delete(m.cfg.ProfileCookie)

	changed := !m.sess.IsZero()
	m.sess = Session{}
	m.epoch++
	return changed
}

package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanvault/accesskit/pkg/credential"
	"github.com/fanvault/accesskit/pkg/profile"
	"github.com/fanvault/accesskit/pkg/session"
)

var testSigner = func() *credential.Signer {
	s, err := credential.NewSigner([]byte("test-signing-key-that-is-long-enough"))
	if err != nil {
		panic(err)
	}
	return s
}()

func validToken(t *testing.T) string {
	t.Helper()
	token, err := testSigner.Issue("user-123", time.Hour)
	require.NoError(t, err)
	return token
}

func expiredToken(t *testing.T) string {
	t.Helper()
	token, err := testSigner.IssueClaims(credential.Claims{
		Subject:   "user-123",
		IssuedAt:  time.Now().Add(-2 * time.Hour).Unix(),
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	})
	require.NoError(t, err)
	return token
}

func testUser() *profile.User {
	return &profile.User{
		ID:    "user-123",
		Email: "user@example.com",
		Name:  "User",
	}
}

func TestManager_SetAuth(t *testing.T) {
	t.Parallel()

	t.Run("installs a valid session and persists it", func(t *testing.T) {
		storage := session.NewMemoryStorage()
		mgr := session.New(session.WithStorage(storage))

		token := validToken(t)
		require.NoError(t, mgr.SetAuth(token, "refresh-1", testUser()))

		assert.True(t, mgr.IsAuthenticated())
		assert.Equal(t, token, mgr.AccessToken())
		assert.Equal(t, "refresh-1", mgr.RefreshToken())

		access, ok := storage.Get(session.DefaultAccessCookie)
		require.True(t, ok)
		assert.Equal(t, token, access)
		_, ok = storage.Get(session.DefaultRefreshCookie)
		assert.True(t, ok)
		_, ok = storage.Get(session.DefaultProfileCookie)
		assert.True(t, ok)
	})

	t.Run("expired credential is equivalent to clearAuth", func(t *testing.T) {
		storage := session.NewMemoryStorage()
		mgr := session.New(session.WithStorage(storage))

		require.NoError(t, mgr.SetAuth(validToken(t), "refresh-1", testUser()))
		err := mgr.SetAuth(expiredToken(t), "refresh-2", testUser())
		assert.ErrorIs(t, err, session.ErrInvalidCredential)

		assert.False(t, mgr.IsAuthenticated())
		assert.Empty(t, mgr.AccessToken())
		_, ok := storage.Get(session.DefaultAccessCookie)
		assert.False(t, ok)
	})

	t.Run("malformed credential clears", func(t *testing.T) {
		mgr := session.New()
		err := mgr.SetAuth("garbage", "refresh-1", testUser())
		assert.ErrorIs(t, err, session.ErrInvalidCredential)
		assert.False(t, mgr.IsAuthenticated())
	})

	t.Run("missing user clears", func(t *testing.T) {
		mgr := session.New()
		err := mgr.SetAuth(validToken(t), "refresh-1", nil)
		assert.ErrorIs(t, err, session.ErrMissingUser)
		assert.False(t, mgr.IsAuthenticated())
	})
}

func TestManager_IsAuthenticated_Recomputes(t *testing.T) {
	t.Parallel()

	// A credential that expires almost immediately: the stored flag says
	// authenticated, but the recomputed invariant must fail and clear.
	token, err := testSigner.IssueClaims(credential.Claims{
		Subject:   "user-123",
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(time.Second).Unix(),
	})
	require.NoError(t, err)

	storage := session.NewMemoryStorage()
	mgr := session.New(session.WithStorage(storage))
	require.NoError(t, mgr.SetAuth(token, "refresh-1", testUser()))
	require.True(t, mgr.IsAuthenticated())

	time.Sleep(2100 * time.Millisecond)

	assert.False(t, mgr.IsAuthenticated())
	assert.True(t, mgr.Snapshot().IsZero(), "invalid credential must force the cleared state")
	_, ok := storage.Get(session.DefaultAccessCookie)
	assert.False(t, ok)
}

func TestManager_ClearAuth(t *testing.T) {
	t.Parallel()

	storage := session.NewMemoryStorage()
	mgr := session.New(session.WithStorage(storage))
	require.NoError(t, mgr.SetAuth(validToken(t), "refresh-1", testUser()))

	assert.True(t, mgr.ClearAuth(), "first clear reports a state change")
	assert.False(t, mgr.ClearAuth(), "second clear is a no-op")
	assert.True(t, mgr.Snapshot().IsZero())

	_, ok := storage.Get(session.DefaultRefreshCookie)
	assert.False(t, ok)
}

func TestManager_Hydrate(t *testing.T) {
	t.Parallel()

	t.Run("round-trips a persisted session", func(t *testing.T) {
		storage := session.NewMemoryStorage()
		token := validToken(t)
		user := testUser()

		first := session.New(session.WithStorage(storage))
		require.NoError(t, first.SetAuth(token, "refresh-1", user))

		// Simulate a reload: a fresh manager over the same jar.
		second := session.New(session.WithStorage(storage))
		require.False(t, second.Hydrated())
		second.Hydrate()

		require.True(t, second.Hydrated())
		assert.True(t, second.IsAuthenticated())
		got := second.Snapshot()
		assert.Equal(t, token, got.AccessToken)
		assert.Equal(t, "refresh-1", got.RefreshToken)
		assert.Equal(t, user, got.User)
		assert.True(t, got.Authenticated)
	})

	t.Run("is idempotent", func(t *testing.T) {
		storage := session.NewMemoryStorage()
		first := session.New(session.WithStorage(storage))
		require.NoError(t, first.SetAuth(validToken(t), "refresh-1", testUser()))

		mgr := session.New(session.WithStorage(storage))
		mgr.Hydrate()
		snap := mgr.Snapshot()

		mgr.Hydrate()
		assert.True(t, mgr.Hydrated())
		assert.Equal(t, snap, mgr.Snapshot())
	})

	t.Run("clears when a cookie is missing", func(t *testing.T) {
		storage := session.NewMemoryStorage()
		first := session.New(session.WithStorage(storage))
		require.NoError(t, first.SetAuth(validToken(t), "refresh-1", testUser()))
		storage.Delete(session.DefaultProfileCookie)

		mgr := session.New(session.WithStorage(storage))
		mgr.Hydrate()

		assert.True(t, mgr.Hydrated())
		assert.False(t, mgr.IsAuthenticated())
		assert.True(t, mgr.Snapshot().IsZero())
	})

	t.Run("clears when the persisted credential expired", func(t *testing.T) {
		storage := session.NewMemoryStorage()
		storage.Set(session.DefaultAccessCookie, expiredToken(t), time.Hour)
		storage.Set(session.DefaultRefreshCookie, "refresh-1", time.Hour)
		snapshot, err := profile.EncodeSnapshot(testUser())
		require.NoError(t, err)
		storage.Set(session.DefaultProfileCookie, snapshot, time.Hour)

		mgr := session.New(session.WithStorage(storage))
		mgr.Hydrate()

		assert.True(t, mgr.Hydrated())
		assert.False(t, mgr.IsAuthenticated())
		_, ok := storage.Get(session.DefaultAccessCookie)
		assert.False(t, ok, "hydration failure deletes the stale cookies")
	})

	t.Run("clears on a malformed profile snapshot", func(t *testing.T) {
		storage := session.NewMemoryStorage()
		storage.Set(session.DefaultAccessCookie, validToken(t), time.Hour)
		storage.Set(session.DefaultRefreshCookie, "refresh-1", time.Hour)
		storage.Set(session.DefaultProfileCookie, "{not json", time.Hour)

		mgr := session.New(session.WithStorage(storage))
		mgr.Hydrate()

		assert.True(t, mgr.Hydrated())
		assert.False(t, mgr.IsAuthenticated())
	})

	t.Run("empty jar hydrates to signed-out", func(t *testing.T) {
		mgr := session.New()
		mgr.Hydrate()
		assert.True(t, mgr.Hydrated())
		assert.False(t, mgr.IsAuthenticated())
	})
}

func TestManager_SetUser(t *testing.T) {
	t.Parallel()

	storage := session.NewMemoryStorage()
	mgr := session.New(session.WithStorage(storage))
	require.NoError(t, mgr.SetAuth(validToken(t), "refresh-1", testUser()))

	updated := testUser()
	updated.CreatorProfile = &profile.CreatorProfile{
		DisplayName: "The Creator",
		Username:    "creator",
		Status:      profile.CreatorStatusApproved,
	}
	require.NoError(t, mgr.SetUser(updated))

	assert.True(t, mgr.User().IsApprovedCreator())

	snapshot, ok := storage.Get(session.DefaultProfileCookie)
	require.True(t, ok)
	decoded, err := profile.DecodeSnapshot(snapshot)
	require.NoError(t, err)
	assert.True(t, decoded.IsApprovedCreator(), "profile cookie is rewritten")

	assert.ErrorIs(t, mgr.SetUser(nil), session.ErrMissingUser)
}

func TestManager_ApplyRenewal(t *testing.T) {
	t.Parallel()

	t.Run("installs rotated credentials", func(t *testing.T) {
		storage := session.NewMemoryStorage()
		mgr := session.New(session.WithStorage(storage))
		require.NoError(t, mgr.SetAuth(validToken(t), "refresh-1", testUser()))

		renewed := validToken(t)
		require.NoError(t, mgr.ApplyRenewal(mgr.Epoch(), renewed, "refresh-2"))

		assert.Equal(t, renewed, mgr.AccessToken())
		assert.Equal(t, "refresh-2", mgr.RefreshToken())
		assert.True(t, mgr.IsAuthenticated())

		access, ok := storage.Get(session.DefaultAccessCookie)
		require.True(t, ok)
		assert.Equal(t, renewed, access)
	})

	t.Run("keeps refresh credential when rotation is empty", func(t *testing.T) {
		mgr := session.New()
		require.NoError(t, mgr.SetAuth(validToken(t), "refresh-1", testUser()))
		require.NoError(t, mgr.ApplyRenewal(mgr.Epoch(), validToken(t), ""))
		assert.Equal(t, "refresh-1", mgr.RefreshToken())
	})

	t.Run("does not resurrect a cleared session", func(t *testing.T) {
		mgr := session.New()
		require.NoError(t, mgr.SetAuth(validToken(t), "refresh-1", testUser()))

		epoch := mgr.Epoch()
		mgr.ClearAuth()

		err := mgr.ApplyRenewal(epoch, validToken(t), "refresh-2")
		assert.ErrorIs(t, err, session.ErrStaleRenewal)
		assert.False(t, mgr.IsAuthenticated())
		assert.True(t, mgr.Snapshot().IsZero())
	})

	t.Run("invalid renewed credential clears", func(t *testing.T) {
		mgr := session.New()
		require.NoError(t, mgr.SetAuth(validToken(t), "refresh-1", testUser()))

		err := mgr.ApplyRenewal(mgr.Epoch(), expiredToken(t), "")
		assert.ErrorIs(t, err, session.ErrInvalidCredential)
		assert.False(t, mgr.IsAuthenticated())
	})
}

func TestManager_Resync(t *testing.T) {
	t.Parallel()

	t.Run("picks up a cross-tab logout", func(t *testing.T) {
		storage := session.NewMemoryStorage()
		mgr := session.New(session.WithStorage(storage))
		require.NoError(t, mgr.SetAuth(validToken(t), "refresh-1", testUser()))
		mgr.Hydrate()

		// Another tab logged out: the shared jar is emptied behind our back.
		storage.Delete(session.DefaultAccessCookie)
		storage.Delete(session.DefaultRefreshCookie)
		storage.Delete(session.DefaultProfileCookie)

		mgr.Resync()
		assert.False(t, mgr.IsAuthenticated())
	})

	t.Run("no-op before hydration", func(t *testing.T) {
		mgr := session.New()
		mgr.Resync()
		assert.False(t, mgr.Hydrated())
	})
}

func TestStorageUnavailable(t *testing.T) {
	t.Parallel()

	mgr := session.New(session.WithStorage(unavailableStorage{}))
	err := mgr.SetAuth(validToken(t), "refresh-1", testUser())
	assert.ErrorIs(t, err, session.ErrStorageUnavailable)

	// Persistence is degraded but the in-memory session still works.
	assert.True(t, mgr.IsAuthenticated())
}

type unavailableStorage struct{}

func (unavailableStorage) Get(string) (string, bool)              { return "", false }
func (unavailableStorage) Set(string, string, time.Duration) bool { return false }
func (unavailableStorage) Delete(string)                          {}

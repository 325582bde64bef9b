package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanvault/accesskit/pkg/guard"
	"github.com/fanvault/accesskit/pkg/profile"
	"github.com/fanvault/accesskit/pkg/routes"
	"github.com/fanvault/accesskit/pkg/session"
)

func member(t *testing.T, status profile.CreatorStatus) *session.Manager {
	t.Helper()
	user := &profile.User{ID: "user-123", Email: "user@example.com"}
	if status != "" {
		user.CreatorProfile = &profile.CreatorProfile{Username: "creator", Status: status}
	}

	sess := session.New()
	require.NoError(t, sess.SetAuth(validToken(t), "refresh-1", user))
	sess.Hydrate()
	return sess
}

func TestClient_DefersUntilHydrated(t *testing.T) {
	t.Parallel()

	sess := session.New() // never hydrated
	g := guard.NewClient(routes.DefaultTable(), sess)

	check := g.Check("/dashboard")
	assert.Equal(t, guard.Checking, check.State)
	assert.False(t, check.Allowed())

	sess.Hydrate() // empty jar: signed out
	check = g.Check("/dashboard")
	assert.Equal(t, guard.Settled, check.State)
	assert.Equal(t, "/auth", check.Redirect)
}

func TestClient_ProtectedPaths(t *testing.T) {
	t.Parallel()

	t.Run("authenticated session is allowed", func(t *testing.T) {
		g := guard.NewClient(routes.DefaultTable(), member(t, ""))
		check := g.Check("/dashboard")
		assert.True(t, check.Allowed())
	})

	t.Run("signed-out session is redirected", func(t *testing.T) {
		sess := session.New()
		sess.Hydrate()
		g := guard.NewClient(routes.DefaultTable(), sess)
		check := g.Check("/wallet")
		assert.Equal(t, "/auth", check.Redirect)
	})

	t.Run("public path allowed for everyone", func(t *testing.T) {
		sess := session.New()
		sess.Hydrate()
		g := guard.NewClient(routes.DefaultTable(), sess)
		assert.True(t, g.Check("/about").Allowed())
	})
}

func TestClient_AuthPageBounce(t *testing.T) {
	t.Parallel()

	g := guard.NewClient(routes.DefaultTable(), member(t, ""))
	check := g.Check("/auth")
	assert.Equal(t, guard.Settled, check.State)
	assert.Equal(t, "/", check.Redirect)
}

func TestClient_CreatorGated(t *testing.T) {
	t.Parallel()

	t.Run("approved creator allowed without extra redirect", func(t *testing.T) {
		// The edge approved this path on cookies; the hydrated client must
		// reach the same conclusion.
		g := guard.NewClient(routes.DefaultTable(), member(t, profile.CreatorStatusApproved))
		check := g.Check("/creator/earnings")
		assert.True(t, check.Allowed())
	})

	t.Run("pending creator is sent to apply", func(t *testing.T) {
		g := guard.NewClient(routes.DefaultTable(), member(t, profile.CreatorStatusPending))
		check := g.Check("/creator/earnings")
		assert.Equal(t, "/apply", check.Redirect)
	})

	t.Run("defers while the profile fetch is outstanding", func(t *testing.T) {
		pending := true
		sess := member(t, "")
		g := guard.NewClient(routes.DefaultTable(), sess,
			guard.WithProfilePending(func() bool { return pending }),
		)

		check := g.Check("/creator/earnings")
		assert.Equal(t, guard.Checking, check.State, "deferred, not failed")

		// Fetch finished: the profile turned out approved.
		pending = false
		user := sess.User()
		user.CreatorProfile = &profile.CreatorProfile{Username: "creator", Status: profile.CreatorStatusApproved}
		require.NoError(t, sess.SetUser(user))

		check = g.Check("/creator/earnings")
		assert.True(t, check.Allowed())
	})
}

func TestClient_OncePerPath(t *testing.T) {
	t.Parallel()

	g := guard.NewClient(routes.DefaultTable(), member(t, ""))

	first := g.Check("/dashboard")
	require.True(t, first.Allowed())

	// Same path: settled, no re-derivation.
	assert.True(t, g.Check("/dashboard").Allowed())

	// Path change resets the memo and re-checks.
	check := g.Check("/creator/earnings")
	assert.Equal(t, "/apply", check.Redirect)
}

func TestClient_CatchesStaleEdgeApproval(t *testing.T) {
	t.Parallel()

	// The edge let the request through on a cookie snapshot, but the client
	// cleared the session right after (e.g. a renewal failure).
	sess := member(t, "")
	g := guard.NewClient(routes.DefaultTable(), sess)
	require.True(t, g.Check("/dashboard").Allowed())

	sess.ClearAuth()

	check := g.Check("/wallet")
	assert.Equal(t, "/auth", check.Redirect)
}

func TestClient_Evaluate(t *testing.T) {
	t.Parallel()

	t.Run("not hydrated defers", func(t *testing.T) {
		g := guard.NewClient(routes.DefaultTable(), session.New())
		check := g.Evaluate(guard.Requirement{Auth: true}, "/dashboard")
		assert.Equal(t, guard.Checking, check.State)
	})

	t.Run("auth requirement", func(t *testing.T) {
		sess := session.New()
		sess.Hydrate()
		g := guard.NewClient(routes.DefaultTable(), sess)
		check := g.Evaluate(guard.Requirement{Auth: true}, "/dashboard")
		assert.Equal(t, "/auth", check.Redirect)
	})

	t.Run("creator requirement", func(t *testing.T) {
		g := guard.NewClient(routes.DefaultTable(), member(t, profile.CreatorStatusRejected))
		check := g.Evaluate(guard.Requirement{Auth: true, Creator: true}, "/creator")
		assert.Equal(t, "/apply", check.Redirect)

		approved := guard.NewClient(routes.DefaultTable(), member(t, profile.CreatorStatusApproved))
		assert.True(t, approved.Evaluate(guard.Requirement{Auth: true, Creator: true}, "/creator").Allowed())
	})

	t.Run("signed-in visitor bounced off auth page", func(t *testing.T) {
		g := guard.NewClient(routes.DefaultTable(), member(t, ""))
		check := g.Evaluate(guard.Requirement{}, "/auth")
		assert.Equal(t, "/", check.Redirect)
	})
}

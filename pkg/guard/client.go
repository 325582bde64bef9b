package guard

import (
	"log/slog"
	"sync"

	"github.com/fanvault/accesskit/pkg/credential"
	"github.com/fanvault/accesskit/pkg/logger"
	"github.com/fanvault/accesskit/pkg/routes"
	"github.com/fanvault/accesskit/pkg/session"
)

// CheckState says whether a guard evaluation has finished.
type CheckState int

const (
	// Checking means the evaluation is deferred: hydration has not finished
	// or a creator-profile fetch is still outstanding. Render an interim
	// state and call Check again when the pending work completes.
	Checking CheckState = iota
	// Settled means the evaluation finished; consult Redirect.
	Settled
)

// Check is the result of one guard evaluation.
type Check struct {
	State CheckState
	// Redirect is the path to navigate to, empty when the content may render.
	Redirect string
}

// Allowed reports whether gated content may render.
func (c Check) Allowed() bool {
	return c.State == Settled && c.Redirect == ""
}

// Requirement is an explicit gate for a view that knows its own needs,
// mirroring the route table's classes: Auth corresponds to protected,
// Creator to creator-gated.
type Requirement struct {
	Auth    bool
	Creator bool
}

// Client is the post-hydration route guard. It evaluates the shared
// decision table against the live session state, once per path change.
type Client struct {
	mu             sync.Mutex
	table          routes.Table
	sess           *session.Manager
	log            *slog.Logger
	profilePending func() bool

	lastPath string
	settled  bool
}

// ClientOption configures the client guard.
type ClientOption func(*Client)

// WithProfilePending tells the guard how to ask whether a creator-profile
// fetch is still outstanding. While it reports true, creator-gated checks
// are deferred rather than failed.
func WithProfilePending(fn func() bool) ClientOption {
	return func(g *Client) { g.profilePending = fn }
}

// WithClientLogger sets the logger.
func WithClientLogger(log *slog.Logger) ClientOption {
	return func(g *Client) { g.log = log }
}

// NewClient creates a client guard over the given session manager.
func NewClient(table routes.Table, sess *session.Manager, opts ...ClientOption) *Client {
	g := &Client{
		table: table,
		sess:  sess,
		log:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check evaluates the guard for a path. A path change resets the
// once-per-route memo; repeated calls for an already settled, allowed path
// return immediately without re-deriving anything.
func (g *Client) Check(path string) Check {
	g.mu.Lock()
	defer g.mu.Unlock()

	if path != g.lastPath {
		g.lastPath = path
		g.settled = false
	}
	if g.settled {
		return Check{State: Settled}
	}

	if !g.sess.Hydrated() {
		return Check{State: Checking}
	}

	class := g.table.Classify(path)
	in := g.inputs()

	// The edge may have let a creator path through on a stale cookie while
	// the fresh profile is still being fetched. Defer instead of bouncing
	// the user on incomplete information.
	if class == routes.ClassCreatorGated && in.CredentialValid && !in.CreatorApproved && g.pending() {
		return Check{State: Checking}
	}

	outcome := routes.Decide(class, in)
	if outcome == routes.Allow {
		g.settled = true
		return Check{State: Settled}
	}

	g.log.Debug("client redirect",
		logger.Component("guard"),
		logger.Route(path),
		logger.Event(outcome.String()),
	)
	return Check{State: Settled, Redirect: g.table.RedirectTarget(outcome)}
}

// Evaluate applies an explicit Requirement instead of classifying the path.
// Views that wrap themselves in a gate use this; the path is still needed
// to bounce signed-in visitors off the auth page.
func (g *Client) Evaluate(req Requirement, path string) Check {
	if !g.sess.Hydrated() {
		return Check{State: Checking}
	}

	in := g.inputs()

	if (req.Auth || req.Creator) && !in.CredentialValid {
		return Check{State: Settled, Redirect: g.table.AuthPath}
	}
	if in.CredentialValid && path == g.table.AuthPath {
		return Check{State: Settled, Redirect: g.table.HomePath}
	}
	if req.Creator {
		if !in.CreatorApproved && g.pending() {
			return Check{State: Checking}
		}
		if !in.CreatorApproved {
			return Check{State: Settled, Redirect: g.table.ApplyPath}
		}
	}

	return Check{State: Settled}
}

// inputs derives the decision inputs from the live session. IsAuthenticated
// recomputes the session invariant, so a credential that expired since the
// last check collapses to signed-out here.
func (g *Client) inputs() routes.Inputs {
	var in routes.Inputs

	in.CredentialValid = g.sess.IsAuthenticated()
	if token := g.sess.AccessToken(); token != "" {
		if _, err := credential.Decode(token); err == nil {
			in.CredentialPresent = true
		}
	}
	if user := g.sess.User(); user != nil {
		in.ProfilePresent = true
		in.CreatorApproved = user.IsApprovedCreator()
	}

	return in
}

func (g *Client) pending() bool {
	return g.profilePending != nil && g.profilePending()
}

package guard

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/fanvault/accesskit/pkg/cookie"
	"github.com/fanvault/accesskit/pkg/credential"
	"github.com/fanvault/accesskit/pkg/logger"
	"github.com/fanvault/accesskit/pkg/profile"
	"github.com/fanvault/accesskit/pkg/routes"
	"github.com/fanvault/accesskit/pkg/session"
)

// Edge is the cookie-only pre-render check.
type Edge struct {
	table         routes.Table
	cookies       *cookie.Manager
	accessCookie  string
	profileCookie string
	log           *slog.Logger
}

// EdgeOption configures the edge check.
type EdgeOption func(*Edge)

// WithEdgeCookieManager sets the cookie manager used to read the request jar.
func WithEdgeCookieManager(cookies *cookie.Manager) EdgeOption {
	return func(e *Edge) { e.cookies = cookies }
}

// WithEdgeCookieNames overrides the cookie names read by the edge. They must
// match the names the session layer writes.
func WithEdgeCookieNames(access, profileName string) EdgeOption {
	return func(e *Edge) {
		e.accessCookie = access
		e.profileCookie = profileName
	}
}

// WithEdgeLogger sets the logger.
func WithEdgeLogger(log *slog.Logger) EdgeOption {
	return func(e *Edge) { e.log = log }
}

// NewEdge creates the edge check for a route table.
func NewEdge(table routes.Table, opts ...EdgeOption) *Edge {
	e := &Edge{
		table:         table,
		accessCookie:  session.DefaultAccessCookie,
		profileCookie: session.DefaultProfileCookie,
		log:           logger.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cookies == nil {
		e.cookies = cookie.New()
	}
	return e
}

// Middleware classifies the request path and redirects before any page code
// runs when the cookie snapshot does not satisfy the path's requirements.
func (e *Edge) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		class := e.table.Classify(path)
		if class == routes.ClassPublic {
			next.ServeHTTP(w, r)
			return
		}

		outcome := routes.Decide(class, e.inputs(r))
		if outcome == routes.Allow {
			next.ServeHTTP(w, r)
			return
		}

		target := e.table.RedirectTarget(outcome)
		e.log.Debug("edge redirect",
			logger.Component("guard"),
			logger.Route(path),
			logger.Event(outcome.String()),
		)
		http.Redirect(w, r, target, http.StatusTemporaryRedirect)
	})
}

// inputs derives the decision inputs from the request cookies. A malformed
// credential yields the same inputs as a missing one, and a profile cookie
// that does not parse counts as no profile.
func (e *Edge) inputs(r *http.Request) routes.Inputs {
	var in routes.Inputs

	if token, err := e.cookies.Get(r, e.accessCookie); err == nil && token != "" {
		if _, err := credential.Decode(token); err == nil {
			in.CredentialPresent = true
			in.CredentialValid = credential.IsValid(token)
		}
	}

	if snapshot, err := e.cookies.Get(r, e.profileCookie); err == nil && snapshot != "" {
		// The snapshot is URL-escaped on the wire (the writer escapes it;
		// JSON quotes are not valid cookie octets), so undo that here
		// before decoding.
		if unescaped, err := url.QueryUnescape(snapshot); err == nil {
			snapshot = unescaped
		}
		if user, err := profile.DecodeSnapshot(snapshot); err == nil {
			in.ProfilePresent = true
			in.CreatorApproved = user.IsApprovedCreator()
		}
	}

	return in
}

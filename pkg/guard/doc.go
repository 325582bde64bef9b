// Package guard implements the two enforcement points that gate navigation:
//
//   - Edge is pre-render HTTP middleware. It runs before any page code in a
//     process that shares no memory with the client runtime, so its only
//     inputs are the request's cookies. It is a coarse, fast filter: the
//     cookie snapshot may lag an in-memory renewal, and the client guard
//     exists to catch exactly that.
//
//   - Client is the post-hydration re-check. It re-derives the same
//     classification from the live session state once per path change,
//     because the edge may have approved a request on a credential the
//     client has since invalidated. While the profile fetch for a
//     creator-gated path is outstanding the check is deferred, not failed.
//
// Both consult the same routes.Table and routes.Decide, so the two points
// can disagree for at most one navigation cycle — the time it takes cookies
// and state to converge — and never because of diverging rules. Every
// failure mode denies: missing, malformed and expired credentials all end
// in a redirect away from gated content.
package guard

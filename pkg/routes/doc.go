// Package routes is the single source of truth for route access rules.
//
// Both enforcement points — the pre-render edge classifier, which only sees
// cookies, and the post-hydration client guard, which sees live session
// state — consult the same Table and the same Decide function. The two
// contexts differ only in how they gather Inputs, never in how a path is
// classified or what a classification requires. Keeping one decision table
// is what prevents the two checks from drifting apart.
//
// Classification is a pure function of the path string to one of four
// classes:
//
//	public        no check
//	auth-page     the sign-in page; bounced when already signed in
//	protected     requires any authenticated session
//	creator-gated requires an approved creator profile on top
//
// Decide is a pure function of a class plus the Inputs available in the
// calling context, yielding Allow or one of three redirects. A malformed
// access credential produces the same Inputs as a missing one.
//
// The default table mirrors the platform's layout and can be overridden
// from a YAML file:
//
//	protected_prefixes: [/dashboard, /wallet]
//	creator_prefixes: [/creator, /content/create]
package routes

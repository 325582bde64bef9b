package routes

// Inputs are the facts a context can gather about the visitor. The edge
// derives them from cookies alone; the client guard derives them from the
// hydrated session. A malformed credential must be presented as
// CredentialPresent=false — undecodable and missing are the same thing.
type Inputs struct {
	// CredentialPresent is true when an access credential exists and decodes.
	CredentialPresent bool
	// CredentialValid is true when the credential also has an unexpired
	// expiry claim. Implies CredentialPresent.
	CredentialValid bool
	// ProfilePresent is true when a parseable user profile snapshot exists.
	ProfilePresent bool
	// CreatorApproved is true when the profile carries an approved creator
	// application. Implies ProfilePresent.
	CreatorApproved bool
}

// Outcome is the decision for a request.
type Outcome int

const (
	// Allow lets the request proceed.
	Allow Outcome = iota
	// RedirectSignIn sends the visitor to the sign-in page.
	RedirectSignIn
	// RedirectHome sends an already signed-in visitor off the auth page.
	RedirectHome
	// RedirectApply sends an authenticated but ineligible visitor to the
	// creator application page.
	RedirectApply
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case RedirectSignIn:
		return "redirect-sign-in"
	case RedirectHome:
		return "redirect-home"
	case RedirectApply:
		return "redirect-apply"
	default:
		return "unknown"
	}
}

// Decide applies the access rules for a class to the given inputs. It is
// the one decision table shared by the edge classifier and the client
// guard; every check fails closed.
func Decide(class Class, in Inputs) Outcome {
	switch class {
	case ClassAuthPage:
		// Signed-in visitors have no business on the sign-in page. The
		// check is presence-based: even a stale credential means a session
		// exists that the client side will sort out.
		if in.CredentialPresent && in.ProfilePresent {
			return RedirectHome
		}
		return Allow

	case ClassProtected:
		if !in.CredentialValid {
			return RedirectSignIn
		}
		return Allow

	case ClassCreatorGated:
		if !in.CredentialValid {
			return RedirectSignIn
		}
		if !in.ProfilePresent || !in.CreatorApproved {
			return RedirectApply
		}
		return Allow

	default:
		return Allow
	}
}

// RedirectTarget resolves an Outcome to its path in this table. Allow has
// no target and returns the empty string.
func (t Table) RedirectTarget(o Outcome) string {
	switch o {
	case RedirectSignIn:
		return t.AuthPath
	case RedirectHome:
		return t.HomePath
	case RedirectApply:
		return t.ApplyPath
	default:
		return ""
	}
}

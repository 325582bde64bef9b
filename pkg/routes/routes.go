package routes

import (
	"slices"
	"strings"
)

// Class is the access classification of a path.
type Class string

const (
	ClassPublic       Class = "public"
	ClassAuthPage     Class = "auth-page"
	ClassProtected    Class = "protected"
	ClassCreatorGated Class = "creator-gated"
)

// Table describes the platform's route layout. Prefix matching is
// segment-aware: "/creator" matches "/creator/earnings" but not
// "/creators".
type Table struct {
	// AuthPath is the sign-in page and the target of sign-in redirects.
	AuthPath string `yaml:"auth_path"`
	// HomePath is where signed-in users land when bounced off the auth page.
	HomePath string `yaml:"home_path"`
	// ApplyPath is where ineligible users are sent from creator-gated paths.
	ApplyPath string `yaml:"apply_path"`

	// ProtectedExact are protected paths matched exactly (the home page).
	ProtectedExact []string `yaml:"protected_exact"`
	// ProtectedPrefixes are path prefixes requiring an authenticated session.
	ProtectedPrefixes []string `yaml:"protected_prefixes"`
	// CreatorPrefixes are path prefixes additionally requiring an approved
	// creator profile. They win over ProtectedPrefixes on overlap.
	CreatorPrefixes []string `yaml:"creator_prefixes"`
	// SkipPrefixes are never classified (static assets, API proxies).
	SkipPrefixes []string `yaml:"skip_prefixes"`
}

// DefaultTable returns the platform's route layout.
func DefaultTable() Table {
	return Table{
		AuthPath:       "/auth",
		HomePath:       "/",
		ApplyPath:      "/apply",
		ProtectedExact: []string{"/"},
		ProtectedPrefixes: []string{
			"/dashboard",
			"/content",
			"/apply",
			"/profile",
			"/settings",
			"/wallet",
			"/subscriptions",
		},
		CreatorPrefixes: []string{
			"/creator",
			"/content/create",
		},
		SkipPrefixes: []string{
			"/api",
			"/_next",
			"/static",
			"/favicon.ico",
			"/placeholder.svg",
		},
	}
}

// Classify maps a path to its access class. The result is identical
// whether evaluated at the edge or on the client.
func (t Table) Classify(path string) Class {
	for _, p := range t.SkipPrefixes {
		if hasPathPrefix(path, p) {
			return ClassPublic
		}
	}

	if path == t.AuthPath {
		return ClassAuthPage
	}

	for _, p := range t.CreatorPrefixes {
		if hasPathPrefix(path, p) {
			return ClassCreatorGated
		}
	}

	if slices.Contains(t.ProtectedExact, path) {
		return ClassProtected
	}
	for _, p := range t.ProtectedPrefixes {
		if hasPathPrefix(path, p) {
			return ClassProtected
		}
	}

	return ClassPublic
}

// hasPathPrefix matches whole path segments: prefix "/creator" matches
// "/creator" and "/creator/x" but not "/creators".
func hasPathPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

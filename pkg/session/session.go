package session

import (
	"github.com/fanvault/accesskit/pkg/profile"
)

// State is the lifecycle state of a Manager.
type State int8

const (
	// StateCold is the initial state: nothing restored yet.
	StateCold State = iota
	// StateHydrating means restoration from persisted cookies is in progress.
	// Rehydration is the sole writer while in this state.
	StateHydrating
	// StateHydrated is terminal for the process; the session payload may
	// still change while in this state.
	StateHydrated
)

func (s State) String() string {
	switch s {
	case StateCold:
		return "cold"
	case StateHydrating:
		return "hydrating"
	case StateHydrated:
		return "hydrated"
	default:
		return "unknown"
	}
}

// Session is the in-memory authentication record.
type Session struct {
	AccessToken   string
	RefreshToken  string
	User          *profile.User
	Authenticated bool
}

// IsZero reports whether the session carries no credentials and no user.
func (s Session) IsZero() bool {
	return s.AccessToken == "" && s.RefreshToken == "" && s.User == nil && !s.Authenticated
}

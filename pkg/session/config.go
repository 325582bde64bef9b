package session

import "time"

// Default cookie names, shared with the edge classifier which reads the same
// cookies in a separate process.
const (
	DefaultAccessCookie  = "accessToken"
	DefaultRefreshCookie = "refreshToken"
	DefaultProfileCookie = "userProfile"
)

// Config holds session persistence configuration. The access credential and
// profile snapshot are short-lived; the refresh credential outlives them so
// a reload after access expiry can still renew.
type Config struct {
	AccessCookie  string `env:"SESSION_ACCESS_COOKIE" envDefault:"accessToken"`
	RefreshCookie string `env:"SESSION_REFRESH_COOKIE" envDefault:"refreshToken"`
	ProfileCookie string `env:"SESSION_PROFILE_COOKIE" envDefault:"userProfile"`

	AccessTTL  time.Duration `env:"SESSION_ACCESS_TTL" envDefault:"168h"`
	RefreshTTL time.Duration `env:"SESSION_REFRESH_TTL" envDefault:"720h"`
	ProfileTTL time.Duration `env:"SESSION_PROFILE_TTL" envDefault:"168h"`
}

// DefaultConfig returns the default session configuration: 7 day access and
// profile cookies, 30 day refresh cookie.
func DefaultConfig() Config {
	return Config{
		AccessCookie:  DefaultAccessCookie,
		RefreshCookie: DefaultRefreshCookie,
		ProfileCookie: DefaultProfileCookie,
		AccessTTL:     7 * 24 * time.Hour,
		RefreshTTL:    30 * 24 * time.Hour,
		ProfileTTL:    7 * 24 * time.Hour,
	}
}

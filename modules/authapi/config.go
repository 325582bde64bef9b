package authapi

import "time"

// Config drives credential minting. The TTLs default to the cookie
// lifetimes the clients use: access seven days, refresh thirty.
type Config struct {
	SigningKey string        `env:"AUTH_SIGNING_KEY,required"`
	AccessTTL  time.Duration `env:"AUTH_ACCESS_TTL" envDefault:"168h"`
	RefreshTTL time.Duration `env:"AUTH_REFRESH_TTL" envDefault:"720h"`
}

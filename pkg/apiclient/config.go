package apiclient

import "time"

// Config is the environment-driven client configuration.
type Config struct {
	BaseURL         string        `env:"API_BASE_URL" envDefault:"http://localhost:3000"`
	Timeout         time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
	RefreshEndpoint string        `env:"API_REFRESH_ENDPOINT" envDefault:"/auth/refresh"`
}

// DefaultConfig returns the configuration used when nothing is set in the
// environment.
func DefaultConfig() Config {
	return Config{
		BaseURL:         "http://localhost:3000",
		Timeout:         30 * time.Second,
		RefreshEndpoint: "/auth/refresh",
	}
}

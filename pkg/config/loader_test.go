package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanvault/accesskit/pkg/config"
)

type testConfig struct {
	BaseURL string        `env:"TEST_BASE_URL" envDefault:"http://localhost:3000"`
	TTL     time.Duration `env:"TEST_TTL" envDefault:"168h"`
	Secure  bool          `env:"TEST_SECURE" envDefault:"false"`
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
		assert.Equal(t, 168*time.Hour, cfg.TTL)
		assert.False(t, cfg.Secure)
	})

	t.Run("reads environment overrides", func(t *testing.T) {
		t.Setenv("TEST_BASE_URL", "https://api.example.com")
		t.Setenv("TEST_SECURE", "true")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "https://api.example.com", cfg.BaseURL)
		assert.True(t, cfg.Secure)
	})

	t.Run("rejects nil pointer", func(t *testing.T) {
		err := config.Load[testConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})

	t.Run("reports unparsable values", func(t *testing.T) {
		t.Setenv("TEST_TTL", "not-a-duration")

		var cfg testConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

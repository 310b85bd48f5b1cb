package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CMS_API_BASE_URL", "")
	t.Setenv("CMS_SESSION_STORE", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "http://localhost:5000", cfg.CMS.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.CMS.HTTPTimeout)
	assert.Equal(t, time.Second, cfg.CMS.ConfirmDelay)
	assert.Equal(t, SessionStoreFile, cfg.CMS.SessionStore)
	assert.NotEmpty(t, cfg.CMS.SessionFile)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "fonova", cfg.Site.Brand)
	assert.Equal(t, 6, cfg.Quote.RatePerMinute)
}

func TestLoad_EnvVarOverride(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CMS_API_BASE_URL", "https://api.example.com/")
	t.Setenv("CMS_HTTP_TIMEOUT", "5s")
	t.Setenv("CMS_SESSION_STORE", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "https://api.example.com", cfg.CMS.APIBaseURL, "trailing slash is trimmed")
	assert.Equal(t, 5*time.Second, cfg.CMS.HTTPTimeout)
	assert.Equal(t, SessionStoreRedis, cfg.CMS.SessionStore)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("CMS_OTP_CONFIRM_DELAY", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.CMS.ConfirmDelay)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server: ServerConfig{Port: "8080"},
			CMS:    CMSConfig{APIBaseURL: "http://localhost:5000", SessionStore: SessionStoreMemory},
			Quote:  QuoteConfig{RatePerMinute: 1},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("redis store needs address", func(t *testing.T) {
		cfg := base()
		cfg.CMS.SessionStore = SessionStoreRedis
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown store", func(t *testing.T) {
		cfg := base()
		cfg.CMS.SessionStore = "cookie"
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing base url", func(t *testing.T) {
		cfg := base()
		cfg.CMS.APIBaseURL = ""
		assert.Error(t, cfg.Validate())
	})
}

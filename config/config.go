package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	App    AppConfig
	CMS    CMSConfig
	Redis  RedisConfig
	Site   SiteConfig
	Quote  QuoteConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

// CMSConfig configures the CMS console and every client of the content backend.
type CMSConfig struct {
	APIBaseURL   string
	HTTPTimeout  time.Duration
	ConfirmDelay time.Duration
	SessionStore string // file, memory or redis
	SessionFile  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Addr) != ""
}

type SiteConfig struct {
	Brand       string
	ContentFile string
	FeedCron    string
}

type QuoteConfig struct {
	RatePerMinute int
	MaxUploadMB   int
}

const (
	SessionStoreFile   = "file"
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		CMS: CMSConfig{
			APIBaseURL:   strings.TrimRight(getEnv("CMS_API_BASE_URL", "http://localhost:5000"), "/"),
			HTTPTimeout:  getEnvAsDuration("CMS_HTTP_TIMEOUT", 15*time.Second),
			ConfirmDelay: getEnvAsDuration("CMS_OTP_CONFIRM_DELAY", time.Second),
			SessionStore: strings.ToLower(getEnv("CMS_SESSION_STORE", SessionStoreFile)),
			SessionFile:  getEnv("CMS_SESSION_FILE", defaultSessionFile()),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Site: SiteConfig{
			Brand:       getEnv("SITE_BRAND", "fonova"),
			ContentFile: getEnv("SITE_CONTENT_FILE", ""),
			FeedCron:    getEnv("FEED_REFRESH_CRON", "0 */5 * * * *"),
		},
		Quote: QuoteConfig{
			RatePerMinute: getEnvAsInt("QUOTE_RATE_PER_MINUTE", 6),
			MaxUploadMB:   getEnvAsInt("QUOTE_MAX_UPLOAD_MB", 25),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.CMS.APIBaseURL == "" {
		return fmt.Errorf("CMS_API_BASE_URL is required")
	}

	switch c.CMS.SessionStore {
	case SessionStoreFile, SessionStoreMemory:
	case SessionStoreRedis:
		if !c.Redis.Enabled() {
			return fmt.Errorf("REDIS_ADDR is required when CMS_SESSION_STORE=redis")
		}
	default:
		return fmt.Errorf("CMS_SESSION_STORE must be one of file, memory, redis (got %q)", c.CMS.SessionStore)
	}

	if c.Quote.RatePerMinute <= 0 {
		return fmt.Errorf("QUOTE_RATE_PER_MINUTE must be positive")
	}

	return nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "fonova-cms", "session.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil || value < 0 {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

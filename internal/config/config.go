// Package config manages application settings loaded from environment
// variables, with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every deployment-time setting of the gateway.
type Config struct {
	// Server
	Port string
	Env  string

	// Tenant API
	API APIConfig

	// Redis (optional course/branch/subject list cache)
	Redis RedisConfig
}

// APIConfig holds the settings for the external tenant API.
type APIConfig struct {
	// BaseURL is the tenant API root, e.g. https://api.centerplus.vn/api/tenant
	BaseURL string
	// AuthBaseURL is the root used for the login endpoint. Falls back to BaseURL.
	AuthBaseURL string
	// StaticToken is an optional deployment-provided bearer token. A token
	// saved through the token store takes precedence over it.
	StaticToken string
	// Username/Password enable auto-login at startup when no token is stored.
	Username string
	Password string
	// TokenFile is where the saved bearer token persists between runs.
	TokenFile string
}

// RedisConfig holds the optional cache settings. An empty Addr disables caching.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

// Load reads the .env file (optional, real environment wins) and builds the Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),
		API: APIConfig{
			BaseURL:     strings.TrimRight(getEnv("GATEWAY_API_BASE_URL", "http://localhost:5000/api/tenant"), "/"),
			AuthBaseURL: strings.TrimRight(getEnv("GATEWAY_AUTH_BASE_URL", ""), "/"),
			StaticToken: getEnv("GATEWAY_API_TOKEN", ""),
			Username:    getEnv("GATEWAY_API_USERNAME", ""),
			Password:    getEnv("GATEWAY_API_PASSWORD", ""),
			TokenFile:   getEnv("GATEWAY_TOKEN_FILE", defaultTokenFile()),
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", ""),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvInt("REDIS_DB", 0),
			TTLSeconds: getEnvInt("CACHE_TTL_SECONDS", 120),
		},
	}

	if cfg.API.AuthBaseURL == "" {
		cfg.API.AuthBaseURL = cfg.API.BaseURL
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks the settings the gateway cannot run without.
func (c *Config) validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("GATEWAY_API_BASE_URL is required")
	}
	if c.API.TokenFile == "" {
		return fmt.Errorf("GATEWAY_TOKEN_FILE is required")
	}
	return nil
}

// IsDevelopment reports whether the gateway runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction reports whether the gateway runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// defaultTokenFile places the token next to the user's other app state.
func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".centerplus_token"
	}
	return dir + string(os.PathSeparator) + "centerplus" + string(os.PathSeparator) + "token"
}

// getEnv returns an environment variable or the default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an environment variable as int.
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return parsed
}

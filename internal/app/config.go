package app

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the console and the backend stub.
type Config struct {
	AppEnv    string `envconfig:"APP_ENV" default:"development"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	APIBaseURL string        `envconfig:"API_BASE_URL" default:"http://localhost:3000"`
	APITimeout time.Duration `envconfig:"API_TIMEOUT" default:"10s"`

	// StateDir is where the console keeps its persisted session state.
	// Empty means "<user config dir>/academico".
	StateDir string `envconfig:"STATE_DIR"`

	StubAddr         string        `envconfig:"STUB_ADDR" default:":3000"`
	StubRedisAddr    string        `envconfig:"STUB_REDIS_ADDR"`
	StubTokenTTL     time.Duration `envconfig:"STUB_TOKEN_TTL" default:"12h"`
	StubLoginRate    int           `envconfig:"STUB_LOGIN_RATE" default:"5"`
	StubLoginWindow  time.Duration `envconfig:"STUB_LOGIN_WINDOW" default:"1m"`
	StubSeedPassword string        `envconfig:"STUB_SEED_PASSWORD" default:"admin123"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.APIBaseURL == "" {
		return nil, errors.New("api base url must be provided")
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// ResolveStateDir returns the directory for persisted session state,
// creating it when missing.
func (c *Config) ResolveStateDir() (string, error) {
	dir := c.StateDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(base, "academico")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names for the remote score API.
const (
	EnvAPIURL     = "NEONFLIP_API_URL"
	EnvAPIToken   = "NEONFLIP_API_TOKEN"
	EnvAPITimeout = "NEONFLIP_API_TIMEOUT"
)

// DefaultAPITimeout bounds a single score API request.
const DefaultAPITimeout = 5 * time.Second

// RemoteConfig holds settings for the remote score API.
// An empty BaseURL disables remote submission.
type RemoteConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Enabled reports whether a remote API is configured.
func (r RemoteConfig) Enabled() bool {
	return r.BaseURL != ""
}

// LoadEnv loads variables from the given .env files into the process
// environment. Missing files are skipped; variables already set win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: failed to load %s: %w", f, err)
		}
	}
	return nil
}

// RemoteFromEnv reads the remote API settings from the environment.
func RemoteFromEnv() (RemoteConfig, error) {
	rc := RemoteConfig{
		BaseURL: strings.TrimRight(strings.TrimSpace(os.Getenv(EnvAPIURL)), "/"),
		Token:   strings.TrimSpace(os.Getenv(EnvAPIToken)),
		Timeout: DefaultAPITimeout,
	}
	if raw := strings.TrimSpace(os.Getenv(EnvAPITimeout)); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return RemoteConfig{}, fmt.Errorf("config: invalid %s %q: %w", EnvAPITimeout, raw, err)
		}
		if d <= 0 {
			return RemoteConfig{}, fmt.Errorf("config: %s must be positive, got %s", EnvAPITimeout, d)
		}
		rc.Timeout = d
	}
	return rc, nil
}

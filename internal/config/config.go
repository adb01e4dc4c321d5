// Package config loads the credentials the sync engine needs from the
// environment, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// ErrMissingCredentials indicates required configuration is absent. The
// wrapped message names every missing variable.
var ErrMissingCredentials = errors.New("missing credentials")

// Config carries the subscriber-source credentials. It is built once at
// startup and passed explicitly; nothing reads the environment after Load.
type Config struct {
	// SourceURL is the base URL of the subscriber directory.
	SourceURL string
	// ServiceKey is the service-level access key sent as bearer credential.
	ServiceKey string
}

// Load reads credentials from the environment. When envFile names an
// existing file it is loaded first; variables already set in the process
// environment win over the file. Validation runs before any network or
// file access elsewhere, so a misconfigured run fails immediately.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return Config{}, fmt.Errorf("load %s: %w", envFile, err)
			}
		}
	}

	cfg := Config{
		SourceURL:  os.Getenv("SUPABASE_URL"),
		ServiceKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
	}
	if cfg.SourceURL == "" {
		cfg.SourceURL = os.Getenv("VITE_SUPABASE_URL")
	}
	return cfg, cfg.Validate()
}

// Validate returns ErrMissingCredentials naming every absent variable.
func (c Config) Validate() error {
	var missing []string
	if c.SourceURL == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if c.ServiceKey == "" {
		missing = append(missing, "SUPABASE_SERVICE_ROLE_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}

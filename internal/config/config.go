// Package config loads agencyos settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process-wide settings for the CLI.
type Config struct {
	// DBPath is a SQLite file path or ":memory:".
	DBPath         string
	LogLevel       string
	LogUseCases    bool
	AutoReplyDelay time.Duration
}

// Default returns the settings used when nothing is configured. DBPath is left
// empty; Load resolves it under the user's home directory.
func Default() Config {
	return Config{
		LogLevel:       "warn",
		LogUseCases:    false,
		AutoReplyDelay: time.Second,
	}
}

// Load reads an optional .env file (or the given files) and then the
// AGENCYOS_* environment variables. Variables already set in the process
// environment win over the file. Invalid values fall back to defaults. A
// missing env file is skipped; one that cannot be read or parsed is an error.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading env file: %w", err)
	}

	cfg := Default()
	cfg.DBPath = os.Getenv("AGENCYOS_DB")
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".agencyos", "agencyos.db")
	}
	if v := os.Getenv("AGENCYOS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("AGENCYOS_LOG_USECASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("AGENCYOS_AUTOREPLY_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.AutoReplyDelay = d
		}
	}
	return cfg, nil
}

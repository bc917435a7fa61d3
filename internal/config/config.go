// Package config provides configuration loading and validation for the CLI
// and server, plus password hashing.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via
// CLI flags or environment variables.
type Config struct {
	// Credentials
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Server
	Port       int    `json:"port,omitempty"`        // HTTP listen port
	CORSOrigin string `json:"cors_origin,omitempty"` // allowed CORS origin

	// Client
	APIURL   string `json:"api_url,omitempty"`   // backend base URL for authenticated mode
	Token    string `json:"token,omitempty"`     // bearer token for authenticated mode
	StateDir string `json:"state_dir,omitempty"` // conversation state directory

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // print detailed debug information
}

// Defaults used when neither file, env, nor flags provide a value.
const (
	DefaultPort       = 3001
	DefaultCORSOrigin = "http://localhost:5173"
)

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. A malformed PORT is an
// error rather than a silent fallback.
func FromEnv() (*Config, error) {
	cfg := &Config{
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		CORSOrigin:  os.Getenv("CORS_ORIGIN"),
		APIURL:      os.Getenv("FORGE_API_URL"),
		Token:       os.Getenv("FORGE_TOKEN"),
		StateDir:    os.Getenv("FORGE_STATE_DIR"),
	}
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if c.Token != "" && c.APIURL == "" {
		return fmt.Errorf("config error: 'token' requires 'api_url'")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults, and built-in fallbacks applied last. CLI flags always win for
// bools, so they are not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.CORSOrigin == "" {
		result.CORSOrigin = defaults.CORSOrigin
	}
	if result.APIURL == "" {
		result.APIURL = defaults.APIURL
	}
	if result.Token == "" {
		result.Token = defaults.Token
	}
	if result.StateDir == "" {
		result.StateDir = defaults.StateDir
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	if result.Port == 0 {
		result.Port = DefaultPort
	}
	if result.CORSOrigin == "" {
		result.CORSOrigin = DefaultCORSOrigin
	}
	if result.StateDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			result.StateDir = filepath.Join(home, ".forge")
		}
	}

	return result
}

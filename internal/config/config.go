// Package config loads the TOML configuration file used by the
// mathscriptd server and (optionally) the mathscript CLI.
//
// It follows the shape of internal/tqw's resource-bundle loading: a plain
// struct with `toml` tags, read in one shot with BurntSushi/toml and then
// validated/defaulted before use.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// DBType is the type of persistence backend the history store uses.
type DBType string

const (
	DatabaseInMemory DBType = "inmem"
	DatabaseSQLite   DBType = "sqlite"
)

func (t DBType) String() string { return string(t) }

// ParseDBType parses a string into a DBType.
func ParseDBType(s string) (DBType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(DatabaseInMemory):
		return DatabaseInMemory, nil
	case string(DatabaseSQLite):
		return DatabaseSQLite, nil
	default:
		return "", fmt.Errorf("DB type not one of 'sqlite' or 'inmem': %q", s)
	}
}

// APIKey is one statically-configured caller credential. Key is never stored
// in plaintext; HashedKey is a bcrypt hash checked against the value the
// caller actually presents.
type APIKey struct {
	Label     string `toml:"label"`
	HashedKey string `toml:"hashed_key"`
}

// History holds settings for the evaluation-history store.
type History struct {
	DB      DBType `toml:"db"`
	DataDir string `toml:"data_dir"`
}

// Config is the root of the mathscriptd configuration file.
type Config struct {
	// ListenAddress is the address (HOST:PORT or :PORT) the HTTP server
	// binds to.
	ListenAddress string `toml:"listen_address"`

	// DefaultMode is the angle mode ("radians" or "degrees") used when a
	// request does not specify one.
	DefaultMode string `toml:"default_mode"`

	// TokenSecret signs the JWTs issued in exchange for a valid API key.
	TokenSecret string `toml:"token_secret"`

	History History `toml:"history"`

	APIKeys []APIKey `toml:"api_keys"`
}

// Load reads and parses the TOML file at path.
func Load(path string) (Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode config file: %w", err)
	}
	return cfg, nil
}

// FillDefaults returns a copy of cfg with unset fields replaced by their
// defaults.
func (cfg Config) FillDefaults() Config {
	filled := cfg

	if filled.ListenAddress == "" {
		filled.ListenAddress = "localhost:8080"
	}
	if filled.DefaultMode == "" {
		filled.DefaultMode = "radians"
	}
	if filled.TokenSecret == "" {
		filled.TokenSecret = "DEFAULT_TOKEN_SECRET-DO_NOT_USE_IN_PROD!"
	}
	if filled.History.DB == "" {
		filled.History.DB = DatabaseInMemory
	}

	return filled
}

// Validate returns an error if cfg has invalid or missing required values.
// Call it on the result of FillDefaults, not on a raw just-loaded Config.
func (cfg Config) Validate() error {
	if _, err := ParseDBType(string(cfg.History.DB)); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	if cfg.History.DB == DatabaseSQLite && cfg.History.DataDir == "" {
		return fmt.Errorf("history: data_dir must be set when db is 'sqlite'")
	}
	switch strings.ToLower(cfg.DefaultMode) {
	case "radians", "degrees":
	default:
		return fmt.Errorf("default_mode: must be 'radians' or 'degrees', got %q", cfg.DefaultMode)
	}
	if len(cfg.TokenSecret) < 16 {
		return fmt.Errorf("token_secret: must be at least 16 bytes, got %d", len(cfg.TokenSecret))
	}
	for i, k := range cfg.APIKeys {
		if k.Label == "" {
			return fmt.Errorf("api_keys[%d]: label must not be empty", i)
		}
		if k.HashedKey == "" {
			return fmt.Errorf("api_keys[%d]: hashed_key must not be empty", i)
		}
	}
	return nil
}

// EnsureHistoryDataDir creates the configured history data directory if the
// backend needs one on disk.
func (cfg Config) EnsureHistoryDataDir() error {
	if cfg.History.DB != DatabaseSQLite {
		return nil
	}
	return os.MkdirAll(cfg.History.DataDir, 0770)
}

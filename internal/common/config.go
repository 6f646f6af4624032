package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Storage backend names accepted in config.
const (
	BackendBadger = "badger"
	BackendSheets = "sheets"
)

// Config holds all configuration for Guarani
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Clients     ClientsConfig `toml:"clients"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Backend string       `toml:"backend"` // "badger" (local) or "sheets"
	Badger  BadgerConfig `toml:"badger"`
	Sheets  SheetsConfig `toml:"sheets"`
}

// BadgerConfig holds the local embedded store path.
type BadgerConfig struct {
	Path string `toml:"path"`
}

// SheetsConfig holds Google Sheets backend configuration.
type SheetsConfig struct {
	SpreadsheetID   string `toml:"spreadsheet_id"`
	CredentialsFile string `toml:"credentials_file"` // service account JSON; ADC used when empty
	RateLimit       int    `toml:"rate_limit"`       // write requests per second
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Gemini GeminiConfig `toml:"gemini"`
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Backend: BackendBadger,
			Badger:  BadgerConfig{Path: "data/ledger"},
			Sheets:  SheetsConfig{RateLimit: 1},
		},
		Clients: ClientsConfig{
			Gemini: GeminiConfig{
				Model: "gemini-2.0-flash",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("GUARANI_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("GUARANI_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("GUARANI_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("GUARANI_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if backend := os.Getenv("GUARANI_STORAGE_BACKEND"); backend != "" {
		config.Storage.Backend = backend
	}

	if path := os.Getenv("GUARANI_DATA_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}

	if id := os.Getenv("GUARANI_SHEET_ID"); id != "" {
		config.Storage.Sheets.SpreadsheetID = id
	}

	if creds := os.Getenv("GUARANI_SHEETS_CREDENTIALS"); creds != "" {
		config.Storage.Sheets.CredentialsFile = creds
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Clients.Gemini.APIKey = key
	}

	if model := os.Getenv("GUARANI_GEMINI_MODEL"); model != "" {
		config.Clients.Gemini.Model = model
	}
}

// validateConfig rejects configurations that cannot start.
func validateConfig(config *Config) error {
	switch config.Storage.Backend {
	case BackendBadger, BackendSheets:
	default:
		return fmt.Errorf("unknown storage backend %q; must be %q or %q",
			config.Storage.Backend, BackendBadger, BackendSheets)
	}
	if config.Storage.Backend == BackendSheets && config.Storage.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("storage backend %q requires sheets.spreadsheet_id", BackendSheets)
	}
	return nil
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

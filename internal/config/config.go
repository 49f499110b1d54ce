// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/nvelez/slate/internal/schedule"
)

// Config holds the application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	LLM     LLMConfig     `toml:"llm"`
	UI      UIConfig      `toml:"ui"`
}

// ServerConfig holds authority connection settings.
type ServerConfig struct {
	URL  string `toml:"url"`  // e.g., "http://localhost:5000"
	Term string `toml:"term"` // "fall" or "spring"
}

// StorageConfig holds local data settings.
type StorageConfig struct {
	DBPath      string `toml:"db_path"`
	HistoryPath string `toml:"history_path"`
}

// LLMConfig holds LLM provider settings for the advisor.
type LLMConfig struct {
	Provider string `toml:"provider"` // "openai", "ollama"
	Model    string `toml:"model"`    // e.g., "gpt-4o-mini"
	BaseURL  string `toml:"base_url"` // e.g., "http://localhost:11434"
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "dark", "light"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:  "http://localhost:5000",
			Term: string(schedule.TermFall),
		},
		Storage: StorageConfig{
			DBPath:      defaultDataPath("slate.db"),
			HistoryPath: defaultDataPath("course_history.json"),
		},
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		UI: UIConfig{
			Theme: "dark",
		},
	}
}

func defaultDataPath(file string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return file
	}
	return filepath.Join(home, ".local", "share", "slate", file)
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "slate", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Storage.HistoryPath = expandPath(cfg.Storage.HistoryPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SLATE_SERVER_URL"); v != "" {
		cfg.Server.URL = v
	}
	if v := os.Getenv("SLATE_TERM"); v != "" {
		cfg.Server.Term = v
	}
	if v := os.Getenv("SLATE_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("SLATE_HISTORY_PATH"); v != "" {
		cfg.Storage.HistoryPath = v
	}
	if v := os.Getenv("SLATE_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("SLATE_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("SLATE_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("SLATE_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return errors.New("server url must be set")
	}
	u, err := url.Parse(c.Server.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("server url must be absolute, got %q", c.Server.URL)
	}
	switch u.Scheme {
	case "http", "https":
	default:
		return fmt.Errorf("server url scheme must be http or https, got %q", u.Scheme)
	}

	if _, err := schedule.ParseTerm(c.Server.Term); err != nil {
		return fmt.Errorf("invalid term %q: must be fall or spring", c.Server.Term)
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}

	switch c.UI.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("invalid theme %q: must be dark or light", c.UI.Theme)
	}

	return nil
}

// Term returns the configured term.
func (c *Config) Term() schedule.Term {
	term, err := schedule.ParseTerm(c.Server.Term)
	if err != nil {
		return schedule.TermFall
	}
	return term
}

// SocketURL derives the websocket endpoint from the server URL.
func (c *Config) SocketURL() string {
	u, err := url.Parse(c.Server.URL)
	if err != nil {
		return c.Server.URL
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws"
	return u.String()
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

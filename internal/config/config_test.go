package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nvelez/slate/internal/schedule"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if cfg.Server.URL != "http://localhost:5000" {
		t.Errorf("url = %q", cfg.Server.URL)
	}
	if cfg.Term() != schedule.TermFall {
		t.Errorf("term = %q", cfg.Term())
	}
	if cfg.LLM.Provider != "openai" {
		t.Errorf("provider = %q", cfg.LLM.Provider)
	}
}

func TestLoadFrom_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
url = "https://schedule.example.edu"
term = "spring"

[ui]
theme = "light"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.URL != "https://schedule.example.edu" {
		t.Errorf("url = %q", cfg.Server.URL)
	}
	if cfg.Term() != schedule.TermSpring {
		t.Errorf("term = %q", cfg.Term())
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("theme = %q", cfg.UI.Theme)
	}
	// Unset sections keep their defaults.
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", cfg.LLM.Model)
	}
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server]\nterm = \"fall\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SLATE_TERM", "spring")
	t.Setenv("SLATE_LLM_PROVIDER", "ollama")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Term() != schedule.TermSpring {
		t.Errorf("term = %q, env must win over file", cfg.Term())
	}
	if cfg.LLM.Provider != "ollama" {
		t.Errorf("provider = %q", cfg.LLM.Provider)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"empty url", func(c *Config) { c.Server.URL = "" }, "server url"},
		{"relative url", func(c *Config) { c.Server.URL = "localhost:5000" }, "server url"},
		{"bad scheme", func(c *Config) { c.Server.URL = "ftp://example.com" }, "scheme"},
		{"bad term", func(c *Config) { c.Server.Term = "summer" }, "invalid term"},
		{"empty db path", func(c *Config) { c.Storage.DBPath = "" }, "db_path"},
		{"bad theme", func(c *Config) { c.UI.Theme = "solarized" }, "theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestSocketURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"http://localhost:5000", "ws://localhost:5000/ws"},
		{"https://schedule.example.edu", "wss://schedule.example.edu/ws"},
		{"https://example.edu/slate/", "wss://example.edu/slate/ws"},
	}

	for _, tt := range tests {
		cfg := Default()
		cfg.Server.URL = tt.url
		if got := cfg.SocketURL(); got != tt.want {
			t.Errorf("SocketURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Server.Term = "spring"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Term() != schedule.TermSpring {
		t.Errorf("term after round trip = %q", got.Term())
	}
}

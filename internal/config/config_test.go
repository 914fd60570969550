package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
// Changes to defaults must be intentional; these tests fail otherwise.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default BaseURL is the production CMS", func(t *testing.T) {
		t.Parallel()
		if cfg.BaseURL != "https://api.arc.pingtech.dev" {
			t.Errorf("expected BaseURL to be 'https://api.arc.pingtech.dev', got '%s'", cfg.BaseURL)
		}
	})

	t.Run("default PageType is cms_app.HomePage", func(t *testing.T) {
		t.Parallel()
		if cfg.PageType != "cms_app.HomePage" {
			t.Errorf("expected PageType to be 'cms_app.HomePage', got '%s'", cfg.PageType)
		}
	})

	t.Run("default Timeout is 15 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 15*time.Second {
			t.Errorf("expected Timeout to be 15s, got %v", cfg.Timeout)
		}
	})

	t.Run("default CacheTTL is 30 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.CacheTTL != 30*time.Second {
			t.Errorf("expected CacheTTL to be 30s, got %v", cfg.CacheTTL)
		}
	})

	t.Run("default health probing matches backend wait loop", func(t *testing.T) {
		t.Parallel()
		if cfg.HealthTimeout != 5*time.Second {
			t.Errorf("expected HealthTimeout to be 5s, got %v", cfg.HealthTimeout)
		}
		if cfg.APICheckTimeout != 10*time.Second {
			t.Errorf("expected APICheckTimeout to be 10s, got %v", cfg.APICheckTimeout)
		}
		if cfg.HealthAttempts != 15 {
			t.Errorf("expected HealthAttempts to be 15, got %d", cfg.HealthAttempts)
		}
		if cfg.HealthDelay != 2*time.Second {
			t.Errorf("expected HealthDelay to be 2s, got %v", cfg.HealthDelay)
		}
	})

	t.Run("default SponsorsPerPage is 4", func(t *testing.T) {
		t.Parallel()
		if cfg.SponsorsPerPage != 4 {
			t.Errorf("expected SponsorsPerPage to be 4, got %d", cfg.SponsorsPerPage)
		}
	})

	t.Run("default config is valid", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected default config to be valid, got %v", err)
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "valid config returns nil", mutate: func(_ *Config) {}},
		{name: "empty base URL", mutate: func(c *Config) { c.BaseURL = "" }, wantErr: ErrInvalidBaseURL},
		{name: "base URL without scheme", mutate: func(c *Config) { c.BaseURL = "api.arc.pingtech.dev" }, wantErr: ErrInvalidBaseURL},
		{name: "base URL with ftp scheme", mutate: func(c *Config) { c.BaseURL = "ftp://cms.local" }, wantErr: ErrInvalidBaseURL},
		{name: "localhost base URL is allowed", mutate: func(c *Config) { c.BaseURL = "http://localhost:8001" }},
		{name: "blank page type", mutate: func(c *Config) { c.PageType = "  " }, wantErr: ErrInvalidPageType},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }, wantErr: ErrInvalidTimeout},
		{name: "negative cache TTL", mutate: func(c *Config) { c.CacheTTL = -time.Second }, wantErr: ErrInvalidCacheTTL},
		{name: "zero cache TTL disables cache", mutate: func(c *Config) { c.CacheTTL = 0 }},
		{name: "zero concurrency", mutate: func(c *Config) { c.Concurrency = 0 }, wantErr: ErrInvalidConcurrency},
		{
			name:    "both report formats",
			mutate:  func(c *Config) { c.JSONReport, c.MarkdownReport = true, true },
			wantErr: ErrConflictingReportFormats,
		},
		{name: "negative max body size", mutate: func(c *Config) { c.MaxBodySize = -1 }, wantErr: ErrInvalidMaxBodySize},
		{name: "zero sponsors per page", mutate: func(c *Config) { c.SponsorsPerPage = 0 }, wantErr: ErrInvalidSponsorsPerPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestConfigApplyEnv tests the environment overlay.
func TestConfigApplyEnv(t *testing.T) {
	t.Parallel()

	t.Run("base URL from environment", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.ApplyEnv(func(key string) string {
			if key == EnvBaseURL {
				return " http://localhost:8001 "
			}
			return ""
		})
		if cfg.BaseURL != "http://localhost:8001" {
			t.Errorf("expected trimmed env base URL, got %q", cfg.BaseURL)
		}
	})

	t.Run("unset variable keeps current value", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.BaseURL = "https://staging.example"
		cfg.ApplyEnv(func(string) string { return "" })
		if cfg.BaseURL != "https://staging.example" {
			t.Errorf("expected base URL to be unchanged, got %q", cfg.BaseURL)
		}
	})
}

// TestConfigApplyFile tests the config file overlay.
func TestConfigApplyFile(t *testing.T) {
	t.Parallel()

	t.Run("nil file is a no-op", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.ApplyFile(nil)
		if cfg.BaseURL != DefaultBaseURL {
			t.Errorf("expected default base URL, got %q", cfg.BaseURL)
		}
	})

	t.Run("non-zero values override defaults", func(t *testing.T) {
		t.Parallel()

		ttl := time.Duration(0)
		cfg := NewConfig()
		cfg.ApplyFile(&File{
			BaseURL:         "http://localhost:8001",
			Timeout:         3 * time.Second,
			CacheTTL:        &ttl,
			SponsorsPerPage: 6,
			Headers:         map[string]string{"Authorization": "Bearer abc"},
		})

		if cfg.BaseURL != "http://localhost:8001" {
			t.Errorf("expected file base URL, got %q", cfg.BaseURL)
		}
		if cfg.Timeout != 3*time.Second {
			t.Errorf("expected 3s timeout, got %v", cfg.Timeout)
		}
		if cfg.CacheTTL != 0 {
			t.Errorf("expected explicit zero cache TTL, got %v", cfg.CacheTTL)
		}
		if cfg.SponsorsPerPage != 6 {
			t.Errorf("expected 6 sponsors per page, got %d", cfg.SponsorsPerPage)
		}
		if cfg.Headers["Authorization"] != "Bearer abc" {
			t.Error("expected Authorization header from file")
		}
		if cfg.PageType != DefaultPageType {
			t.Errorf("expected default page type to survive, got %q", cfg.PageType)
		}
	})
}

// TestAPIBase tests the API base URL derivation.
func TestAPIBase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		base string
		want string
	}{
		{base: "https://api.arc.pingtech.dev", want: "https://api.arc.pingtech.dev/api/v2"},
		{base: "http://localhost:8001/", want: "http://localhost:8001/api/v2"},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			t.Parallel()

			cfg := &Config{BaseURL: tt.base}
			if got := cfg.APIBase(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.arccms")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".arccms")
		content := `baseURL: "http://localhost:8001"
pageType: "cms_app.HomePage"
timeout: 20s
cacheTTL: 1m
concurrency: 4
sponsorsPerPage: 3
headers:
  Authorization: "Bearer token"
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cf, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cf.BaseURL != "http://localhost:8001" {
			t.Errorf("expected base URL from file, got %q", cf.BaseURL)
		}
		if cf.Timeout != 20*time.Second {
			t.Errorf("expected 20s timeout, got %v", cf.Timeout)
		}
		if cf.CacheTTL == nil || *cf.CacheTTL != time.Minute {
			t.Errorf("expected 1m cache TTL, got %v", cf.CacheTTL)
		}
		if cf.Concurrency != 4 {
			t.Errorf("expected concurrency 4, got %d", cf.Concurrency)
		}
		if cf.SponsorsPerPage != 3 {
			t.Errorf("expected 3 sponsors per page, got %d", cf.SponsorsPerPage)
		}
		if cf.Headers["Authorization"] != "Bearer token" {
			t.Errorf("expected Authorization header")
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".arccms")
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("initializes nil Headers map", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".arccms")
		if err := os.WriteFile(configPath, []byte("concurrency: 2\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cf, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cf.Headers == nil {
			t.Error("expected Headers map to be initialized")
		}
		if cf.CacheTTL != nil {
			t.Errorf("expected unset cache TTL, got %v", *cf.CacheTTL)
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns explicit path if exists", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("concurrency: 1\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		t.Parallel()

		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})
}

// TestXDGDirs tests XDG directory functions.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	t.Run("XDGDataDir ends with the app name", func(t *testing.T) {
		t.Parallel()

		if dir := XDGDataDir(); filepath.Base(dir) != AppName {
			t.Errorf("expected data dir to end with %q, got %q", AppName, dir)
		}
	})

	t.Run("XDGConfigDir ends with the app name", func(t *testing.T) {
		t.Parallel()

		if dir := XDGConfigDir(); filepath.Base(dir) != AppName {
			t.Errorf("expected config dir to end with %q, got %q", AppName, dir)
		}
	})
}

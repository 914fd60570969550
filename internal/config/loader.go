package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".arccms"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .arccms configuration file.
// Zero values mean "not set" and leave the defaults untouched.
type File struct {
	// BaseURL is the CMS origin, e.g. "https://api.arc.pingtech.dev".
	BaseURL string `yaml:"baseURL,omitempty"`

	// PageType is the Wagtail content type of the home page.
	PageType string `yaml:"pageType,omitempty"`

	// Timeout bounds each CMS request, e.g. "15s".
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// CacheTTL is how long fetched pages are shared, e.g. "30s".
	// A pointer so that an explicit "0s" can disable the cache.
	CacheTTL *time.Duration `yaml:"cacheTTL,omitempty"`

	// Concurrency is the number of sections resolved in parallel.
	Concurrency int `yaml:"concurrency,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Headers are extra HTTP headers sent with every CMS request.
	Headers map[string]string `yaml:"headers,omitempty"`

	// SponsorsPerPage is the sponsor carousel page size.
	SponsorsPerPage int `yaml:"sponsorsPerPage,omitempty"`

	// ListenAddr is the preview server listen address.
	ListenAddr string `yaml:"listenAddr,omitempty"`
}

// LoadConfigFile loads a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	if cf.Headers == nil {
		cf.Headers = make(map[string]string)
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .arccms in the current directory
// 3. Look for .arccms in the user's home directory
// 4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

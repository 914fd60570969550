package config

import (
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultBaseURL is the production CMS host. The API lives under /api/v2.
	DefaultBaseURL = "https://api.arc.pingtech.dev"

	// DefaultPageType is the Wagtail content type of the site's home page.
	// The listing endpoint is filtered on this value to find the page id.
	DefaultPageType = "cms_app.HomePage"

	// DefaultTimeout bounds every content request. The CMS answers in well
	// under a second when healthy; 15 seconds leaves room for cold starts
	// without stalling a section forever.
	DefaultTimeout = 15 * time.Second

	// DefaultCacheTTL is how long a fetched home page or settings document is
	// shared between sections. 30 seconds covers one page load comfortably.
	DefaultCacheTTL = 30 * time.Second

	// DefaultConcurrency is the number of sections resolved at once.
	// All sections share one cached fetch, so this mostly bounds mapping work.
	DefaultConcurrency = 8

	// DefaultMaxBodySize limits the response body size read from the CMS.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB

	// DefaultHealthTimeout bounds the health endpoint probe.
	DefaultHealthTimeout = 5 * time.Second

	// DefaultAPICheckTimeout bounds the pages endpoint probe of a health check.
	DefaultAPICheckTimeout = 10 * time.Second

	// DefaultHealthAttempts is the number of health checks made while waiting
	// for the backend to come up.
	DefaultHealthAttempts = 15

	// DefaultHealthDelay is the pause between two health checks.
	DefaultHealthDelay = 2 * time.Second

	// DefaultSponsorsPerPage is the number of sponsors shown per carousel page.
	DefaultSponsorsPerPage = 4

	// DefaultListenAddr is the address of the preview server.
	DefaultListenAddr = "127.0.0.1:8080"

	// AppName is the application name used for XDG directory paths.
	AppName = "arccms"

	// DefaultUserAgent identifies arccms in CMS access logs.
	DefaultUserAgent = "arccms/1.0 (+https://github.com/arclebanon/arccms)"

	// EnvBaseURL is the environment variable overriding the CMS base URL.
	EnvBaseURL = "ARC_API_BASE_URL"
)

// Config holds all configuration options for arccms.
// It is populated from defaults, the config file, the environment and CLI
// flags (in increasing precedence) and passed down explicitly.
type Config struct {
	// BaseURL is the CMS origin, without the /api/v2 suffix.
	BaseURL string

	// PageType is the Wagtail content type of the home page.
	PageType string

	// Timeout bounds each content request to the CMS.
	Timeout time.Duration

	// CacheTTL is how long a fetched page is shared between sections.
	// Zero disables the cache; every section then fetches on its own.
	CacheTTL time.Duration

	// Concurrency is the number of sections resolved in parallel.
	Concurrency int

	// Headers are extra HTTP headers sent with every CMS request,
	// e.g. an Authorization header for preview content.
	Headers map[string]string

	// UserAgent is the User-Agent header sent with CMS requests.
	UserAgent string

	// MaxBodySize is the maximum CMS response size in bytes.
	// Zero means DefaultMaxBodySize.
	MaxBodySize int64

	// HealthTimeout bounds the health endpoint probe.
	HealthTimeout time.Duration

	// APICheckTimeout bounds the pages endpoint probe.
	APICheckTimeout time.Duration

	// HealthAttempts is the number of checks made by "health --wait".
	HealthAttempts int

	// HealthDelay is the pause between two health checks.
	HealthDelay time.Duration

	// SponsorsPerPage is the sponsor carousel page size.
	SponsorsPerPage int

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the path of the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile writes the report to a file instead of stdout.
	ReportFile string

	// Sections restricts resolution to the named sections; empty means all.
	Sections []string

	// DBDir is the directory of the SQLite history database.
	DBDir string

	// SaveToDB records resolution outcomes in the history database.
	SaveToDB bool

	// ListenAddr is the preview server listen address.
	ListenAddr string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero. This also serves as
// documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		BaseURL:         DefaultBaseURL,
		PageType:        DefaultPageType,
		Timeout:         DefaultTimeout,
		CacheTTL:        DefaultCacheTTL,
		Concurrency:     DefaultConcurrency,
		UserAgent:       DefaultUserAgent,
		MaxBodySize:     DefaultMaxBodySize,
		HealthTimeout:   DefaultHealthTimeout,
		APICheckTimeout: DefaultAPICheckTimeout,
		HealthAttempts:  DefaultHealthAttempts,
		HealthDelay:     DefaultHealthDelay,
		SponsorsPerPage: DefaultSponsorsPerPage,
		ListenAddr:      DefaultListenAddr,
	}
}

// ApplyFile overlays non-zero values from a configuration file.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if f.BaseURL != "" {
		c.BaseURL = f.BaseURL
	}
	if f.PageType != "" {
		c.PageType = f.PageType
	}
	if f.Timeout > 0 {
		c.Timeout = f.Timeout
	}
	if f.CacheTTL != nil {
		c.CacheTTL = *f.CacheTTL
	}
	if f.Concurrency > 0 {
		c.Concurrency = f.Concurrency
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
	if f.SponsorsPerPage > 0 {
		c.SponsorsPerPage = f.SponsorsPerPage
	}
	if f.ListenAddr != "" {
		c.ListenAddr = f.ListenAddr
	}
	if len(f.Headers) > 0 {
		if c.Headers == nil {
			c.Headers = make(map[string]string, len(f.Headers))
		}
		for k, v := range f.Headers {
			c.Headers[k] = v
		}
	}
}

// ApplyEnv overlays values from the environment. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvBaseURL)); v != "" {
		c.BaseURL = v
	}
}

// APIBase returns the base URL of the Wagtail v2 API, e.g.
// "https://api.arc.pingtech.dev/api/v2".
func (c *Config) APIBase() string {
	return strings.TrimRight(c.BaseURL, "/") + "/api/v2"
}

// XDGDataDir returns the XDG data directory for arccms.
// On Linux: ~/.local/share/arccms
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for arccms.
// On Linux: ~/.config/arccms
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as a sentinel error.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidBaseURL
	}

	if strings.TrimSpace(c.PageType) == "" {
		return ErrInvalidPageType
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.CacheTTL < 0 {
		return ErrInvalidCacheTTL
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.SponsorsPerPage <= 0 {
		return ErrInvalidSponsorsPerPage
	}

	return nil
}

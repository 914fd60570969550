package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arclebanon/arccms/internal/cache"
	"github.com/arclebanon/arccms/internal/config"
	applog "github.com/arclebanon/arccms/internal/log"
	"github.com/arclebanon/arccms/internal/report"
	"github.com/arclebanon/arccms/internal/section"
	"github.com/arclebanon/arccms/internal/wagtail"
)

// addCMSFlags registers the flags of commands that talk to the CMS.
func addCMSFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .arccms in current or home directory)")
	cmd.Flags().StringP("base-url", "u", config.DefaultBaseURL,
		"CMS origin, without /api/v2 (overrides "+config.EnvBaseURL+")")
	cmd.Flags().String("page-type", config.DefaultPageType,
		"Wagtail content type of the home page")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each CMS request")
	cmd.Flags().StringToString("header", nil,
		"Extra HTTP header sent to the CMS, e.g. --header Authorization='Bearer x' (repeatable)")
}

// addReportFlags registers the output format flags.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
}

// addDBFlag registers the history database directory flag.
func addDBFlag(cmd *cobra.Command) {
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from defaults, the configuration file, the
// environment and the command flags, in increasing precedence. Only flags
// the user set override earlier sources.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.DBDir = config.XDGDataDir()

	if err := overrideString(cmd, "config", &cfg.ConfigFilePath); err != nil {
		return nil, err
	}

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use defaults if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(file)
	case explicitConfigPath:
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	cfg.ApplyEnv(os.Getenv)

	for name, dst := range map[string]*string{
		"base-url":  &cfg.BaseURL,
		"page-type": &cfg.PageType,
		"output":    &cfg.ReportFile,
		"db-dir":    &cfg.DBDir,
		"listen":    &cfg.ListenAddr,
	} {
		if err := overrideString(cmd, name, dst); err != nil {
			return nil, err
		}
	}
	for name, dst := range map[string]*bool{
		"json":       &cfg.JSONReport,
		"markdown":   &cfg.MarkdownReport,
		"save-to-db": &cfg.SaveToDB,
	} {
		if err := overrideBool(cmd, name, dst); err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("timeout") {
		timeout, err := cmd.Flags().GetDuration("timeout")
		if err != nil {
			return nil, err
		}
		cfg.Timeout = timeout
	}
	if cmd.Flags().Changed("concurrency") {
		n, err := cmd.Flags().GetInt("concurrency")
		if err != nil {
			return nil, err
		}
		cfg.Concurrency = n
	}
	if cmd.Flags().Changed("header") {
		headers, err := cmd.Flags().GetStringToString("header")
		if err != nil {
			return nil, err
		}
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			cfg.Headers[k] = v
		}
	}

	return cfg, nil
}

func overrideString(cmd *cobra.Command, name string, dst *string) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func overrideBool(cmd *cobra.Command, name string, dst *bool) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// loadConfig builds and validates the configuration.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// setupLogger creates a structured logger that redacts secrets.
func setupLogger(verbose bool) *slog.Logger {
	return applog.NewSecureLogger(os.Stderr, verbose)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// newClient creates a CMS client from the configuration.
func newClient(cfg *config.Config, logger *slog.Logger) (*wagtail.Client, error) {
	return wagtail.NewClient(cfg.BaseURL,
		wagtail.WithTimeout(cfg.Timeout),
		wagtail.WithPageType(cfg.PageType),
		wagtail.WithHeaders(cfg.Headers),
		wagtail.WithUserAgent(cfg.UserAgent),
		wagtail.WithMaxBodySize(cfg.MaxBodySize),
		wagtail.WithHealthTimeouts(cfg.HealthTimeout, cfg.APICheckTimeout),
		wagtail.WithLogger(logger),
	)
}

// newPageCache puts a cache in front of client so sections share fetches.
func newPageCache(client *wagtail.Client, cfg *config.Config, logger *slog.Logger) *cache.PageCache {
	return cache.New(client,
		cache.WithTTL(cfg.CacheTTL),
		cache.WithFetchTimeout(cfg.Timeout),
		cache.WithLogger(logger),
	)
}

// sectionOptions returns the options sections are built with.
func sectionOptions(client *wagtail.Client, cfg *config.Config) section.Options {
	return section.Options{
		BaseURL:         client.BaseURL(),
		SponsorsPerPage: cfg.SponsorsPerPage,
	}
}

// newReportWriter opens the report destination and returns a writer in the
// configured format. The returned close function must be called.
func newReportWriter(cmd *cobra.Command, cfg *config.Config, textOpts ...report.SimpleWriterOption) (report.Writer, func() error, error) {
	format := report.FormatFor(cfg.JSONReport, cfg.MarkdownReport)
	textOpts = append([]report.SimpleWriterOption{report.WithVerbose(cfg.Verbose)}, textOpts...)

	if cfg.ReportFile == "" {
		return report.NewWriter(cmd.OutOrStdout(), format, getVersion(), textOpts...), func() error { return nil }, nil
	}

	// Create directories if they don't exist
	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports may carry preview content, so only the owner can read them.
	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return report.NewWriter(f, format, getVersion(), textOpts...), f.Close, nil
}

// writeReport writes with the configured writer and closes the destination.
func writeReport(cmd *cobra.Command, cfg *config.Config, write func(report.Writer) error, textOpts ...report.SimpleWriterOption) (err error) {
	w, closeFn, err := newReportWriter(cmd, cfg, textOpts...)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closeFn())
	}()

	if err := write(w); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if cfg.ReportFile != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", cfg.ReportFile)
	}
	return nil
}

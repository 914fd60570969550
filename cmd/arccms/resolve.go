package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arclebanon/arccms/internal/config"
	"github.com/arclebanon/arccms/internal/database"
	"github.com/arclebanon/arccms/internal/model"
	"github.com/arclebanon/arccms/internal/report"
	"github.com/arclebanon/arccms/internal/resolver"
	"github.com/arclebanon/arccms/internal/section"
)

// ErrDegraded is returned by "resolve --strict" when a section fell back
// because the CMS could not be read.
var ErrDegraded = errors.New("one or more sections could not be read from the CMS")

// NewResolveCmd creates the resolve command.
func NewResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [section...]",
		Short: "Resolve site sections from the CMS",
		Long: `Resolve fetches the home page and site settings once and resolves every
section of the site from them.

A section whose blocks are missing shows its built-in defaults and is
reported as "no_content". A section whose CMS request failed is reported
with the failure kind (transport, http_status, malformed, not_found).

Available sections: ` + joinNames() + `

Examples:
  # Resolve every section
  arccms resolve

  # Resolve the hero and footer only
  arccms resolve hero footer

  # Output JSON and record the run in the history database
  arccms resolve --json --save-to-db

  # Resolve against a local CMS and fail if it cannot be read
  arccms resolve -u http://localhost:8001 --strict`,
		Args: cobra.ArbitraryArgs,
		RunE: runResolveCmd,
	}

	addCMSFlags(cmd)
	addReportFlags(cmd)
	addDBFlag(cmd)

	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Number of sections resolved in parallel")
	cmd.Flags().BoolP("save-to-db", "s", false,
		"Record outcomes and a page snapshot in the history database")
	cmd.Flags().Bool("strict", false,
		"Exit with an error if any section could not be read from the CMS")

	return cmd
}

// runResolveCmd executes the resolve command.
func runResolveCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Sections = args

	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	run, err := resolveRun(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if err := writeReport(cmd, cfg, func(w report.Writer) error {
		_, err := w.Write(run)
		return err
	}); err != nil {
		return err
	}

	if strict && run.Degraded() {
		return ErrDegraded
	}
	return nil
}

// resolveRun resolves the configured sections and records the run when
// SaveToDB is set.
func resolveRun(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*report.RunReport, error) {
	client, err := newClient(cfg, logger)
	if err != nil {
		return nil, err
	}

	sections, err := section.Select(cfg.Sections, sectionOptions(client, cfg))
	if err != nil {
		return nil, err
	}

	pages := resolver.RecordPage(newPageCache(client, cfg, logger))

	logger.Info("resolving sections",
		"cms", client.BaseURL(),
		"sections", len(sections),
		"concurrency", cfg.Concurrency,
	)

	outcomes := resolver.ResolveAll(ctx, pages, sections,
		resolver.WithLogger(logger),
		resolver.WithConcurrency(cfg.Concurrency),
	)

	page := pages.Page()
	if cfg.SaveToDB {
		if err := saveRun(ctx, cfg.DBDir, outcomes, page, logger); err != nil {
			// A failed save does not fail the run.
			logger.Error("failed to save run", "error", err)
		}
	}

	return report.NewRunReport(client.BaseURL(), page, outcomes), nil
}

// saveRun stores outcomes and, when the page was read, a page snapshot.
func saveRun(ctx context.Context, dbDir string, outcomes []resolver.Outcome, page *model.Page, logger *slog.Logger) error {
	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.SaveOutcomes(ctx, outcomes); err != nil {
		return err
	}
	if snap := database.NewPageSnapshot(page); snap != nil {
		if _, err := db.SavePageSnapshot(ctx, snap); err != nil {
			return err
		}
	}

	logger.Info("run saved to database", "path", db.Path(), "sections", len(outcomes))
	return nil
}

// joinNames lists the section names for help texts.
func joinNames() string {
	return strings.Join(section.Names(), ", ")
}

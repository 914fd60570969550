package main

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/arclebanon/arccms/internal/database"
	"github.com/arclebanon/arccms/internal/report"
	"github.com/arclebanon/arccms/internal/section"
)

// defaultHistoryLimit is the number of entries shown for one section.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [section]",
		Short: "Show recorded resolution outcomes",
		Long: `History shows outcomes recorded by "arccms resolve --save-to-db" and by the
preview server.

Without a section, the latest outcome of every section is shown. With a
section, its outcomes are listed newest first.

Examples:
  # Latest outcome per section
  arccms history

  # The last 5 hero resolutions
  arccms history hero -n 5

  # Export the footer history as JSON
  arccms history footer --json -o footer.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	addReportFlags(cmd)
	addDBFlag(cmd)

	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of entries shown for a section (0 for all)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	// Validate arguments before opening database
	var name string
	if len(args) == 1 {
		name = args[0]
		if !slices.Contains(section.Names(), name) {
			return fmt.Errorf("%w: %q", section.ErrUnknownSection, name)
		}
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	db, err := openExistingDB(cfg.DBDir)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()

	var entries []database.Resolution
	if name == "" {
		entries, err = db.LatestResolutions(ctx)
	} else {
		entries, err = db.SectionHistory(ctx, name, limit)
	}
	if err != nil {
		return err
	}

	history := report.NewHistory(name, entries)
	return writeReport(cmd, cfg, func(w report.Writer) error {
		_, err := w.WriteHistory(history)
		return err
	})
}

// openExistingDB opens the history database without creating it.
func openExistingDB(dir string) (*database.HistoryDB, error) {
	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false

	db, err := database.Open(dir, opts)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w (run 'arccms resolve --save-to-db' first)", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

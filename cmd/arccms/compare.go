package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arclebanon/arccms/internal/database"
	"github.com/arclebanon/arccms/internal/report"
)

// ErrNotEnoughSnapshots is returned when fewer than two page snapshots exist.
var ErrNotEnoughSnapshots = errors.New("at least two page snapshots are required (run 'arccms resolve --save-to-db' after each content change)")

// NewCompareCmd creates the compare command.
// This command compares home page snapshots stored in the database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the two latest home page snapshots",
		Long: `Compare shows what changed on the home page between the two most recent
snapshots recorded by "arccms resolve --save-to-db":

- Whether the title or the body changed
- Which block types were added, removed or changed in number

Examples:
  # Compare the latest two snapshots
  arccms compare

  # List recorded snapshots
  arccms compare --list

  # Output the comparison as Markdown
  arccms compare --markdown`,
		Args: cobra.NoArgs,
		RunE: runCompareCmd,
	}

	addReportFlags(cmd)
	addDBFlag(cmd)

	cmd.Flags().BoolP("list", "l", false,
		"List recorded snapshots instead of comparing")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	list, err := cmd.Flags().GetBool("list")
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

	if list {
		snapshots, err := db.LatestSnapshots(ctx, 0)
		if err != nil {
			return err
		}
		printSnapshots(cmd, snapshots)
		return nil
	}

	snapshots, err := db.LatestSnapshots(ctx, 2)
	if err != nil {
		return err
	}
	if len(snapshots) < 2 {
		return ErrNotEnoughSnapshots
	}

	// Snapshots are newest first.
	comparison := report.Compare(snapshots[1], snapshots[0])
	return writeReport(cmd, cfg, func(w report.Writer) error {
		_, err := w.WriteComparison(comparison)
		return err
	})
}

// printSnapshots writes one line per snapshot.
func printSnapshots(cmd *cobra.Command, snapshots []database.PageSnapshot) {
	out := cmd.OutOrStdout()
	if len(snapshots) == 0 {
		fmt.Fprintln(out, "No snapshots recorded.")
		return
	}

	fmt.Fprintf(out, "%-6s %-20s %-14s %-7s %s\n", "ID", "TAKEN", "HASH", "BLOCKS", "TITLE")
	fmt.Fprintln(out, strings.Repeat("-", 70))
	for _, s := range snapshots {
		hash := s.BodyHash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		blocks := 0
		for _, n := range s.BlockCounts {
			blocks += n
		}
		fmt.Fprintf(out, "%-6d %-20s %-14s %-7d %s\n",
			s.ID, s.Timestamp.Local().Format("2006-01-02 15:04:05"), hash, blocks, s.Title)
	}
}

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/arclebanon/arccms/internal/report"
)

// NewInspectCmd creates the inspect command.
func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the raw blocks of the home page",
		Long: `Inspect fetches the home page and prints every StreamField block with its
fields. Rich text is shown as Markdown and images as their URL, which makes
it easy to see what editors entered and why a section fell back.

Examples:
  # Show every block
  arccms inspect

  # Show only hero slides and events
  arccms inspect --type hero_slide --type event

  # Share the page content as Markdown
  arccms inspect --markdown -o page.md`,
		Args: cobra.NoArgs,
		RunE: runInspectCmd,
	}

	addCMSFlags(cmd)
	addReportFlags(cmd)

	cmd.Flags().StringSlice("type", nil,
		"Only show blocks of this type (repeatable)")
	cmd.Flags().Bool("show-empty", false,
		"Show blocks without fields in text output")

	return cmd
}

// runInspectCmd executes the inspect command.
func runInspectCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	types, err := cmd.Flags().GetStringSlice("type")
	if err != nil {
		return err
	}
	showEmpty, err := cmd.Flags().GetBool("show-empty")
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	page, err := client.HomePage(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch home page: %w", err)
	}

	ins := report.Inspect(client.BaseURL(), page, types...)

	return writeReport(cmd, cfg, func(w report.Writer) error {
		_, err := w.WriteInspection(ins)
		return err
	}, report.WithShowEmpty(showEmpty))
}

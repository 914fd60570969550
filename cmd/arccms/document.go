package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arclebanon/arccms/internal/media"
)

// NewDocumentCmd creates the document command.
func NewDocumentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "document <id>",
		Short: "Resolve the download URL of a CMS document",
		Long: `Document fetches the metadata of a CMS document (for example a rulebook PDF)
and prints its download URL, type and size.

With --probe every candidate location is checked with a HEAD request and the
first one that answers is printed. Candidates are the URL the CMS reports,
then the documents and rules media folders of the CMS, then the production
and local media hosts.

Examples:
  # Show document 12
  arccms document 12

  # Find a URL that actually serves the file
  arccms document 12 --probe`,
		Args: cobra.ExactArgs(1),
		RunE: runDocumentCmd,
	}

	addCMSFlags(cmd)

	cmd.Flags().BoolP("probe", "p", false,
		"Check candidate URLs and print the first that answers")

	return cmd
}

// runDocumentCmd executes the document command.
func runDocumentCmd(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid document id %q: must be a positive integer", args[0])
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	probe, err := cmd.Flags().GetBool("probe")
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

	doc, err := client.Document(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch document %d: %w", id, err)
	}

	base := client.BaseURL()
	docURL := media.DocumentURL(base, *doc, "")

	if probe {
		candidates := []string{}
		if docURL != "" {
			candidates = append(candidates, docURL)
		}
		if doc.Title != "" {
			candidates = append(candidates, media.FallbackURLs(base, media.CleanFilename(doc.Title))...)
		}

		found, err := media.FindWorkingURL(ctx, client.HTTPClient(), candidates, logger)
		switch {
		case errors.Is(err, media.ErrNoWorkingURL):
			return fmt.Errorf("document %d: %w (tried %d URLs)", id, err, len(candidates))
		case err != nil:
			return err
		}
		docURL = found
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Document: #%d %s\n", doc.ID, doc.Title)
	fmt.Fprintf(out, "URL:      %s\n", dashIfEmpty(docURL))
	fmt.Fprintf(out, "Type:     %s\n", strings.ToUpper(doc.FileExtension))
	fmt.Fprintf(out, "Size:     %s\n", media.FormatFileSize(doc.FileSize))
	return nil
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

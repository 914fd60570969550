package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/arclebanon/arccms/internal/config"
	"github.com/arclebanon/arccms/internal/wagtail"
)

// ErrNotReady is returned when the CMS did not pass its health check.
var ErrNotReady = errors.New("cms is not ready")

// NewHealthCmd creates the health command.
func NewHealthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check whether the CMS is ready",
		Long: `Health probes the CMS health endpoint and then the page listing. The CMS is
ready only when both answer.

With --wait the check is repeated until the CMS is ready or the attempts
run out, which is useful while a freshly deployed backend migrates.

Examples:
  # Check once
  arccms health

  # Wait up to 15 attempts, 2 seconds apart
  arccms health --wait

  # Machine-readable status
  arccms health --json`,
		Args: cobra.NoArgs,
		RunE: runHealthCmd,
	}

	addCMSFlags(cmd)

	cmd.Flags().BoolP("wait", "w", false,
		"Retry until the CMS is ready")
	cmd.Flags().Int("attempts", config.DefaultHealthAttempts,
		"Number of checks made with --wait")
	cmd.Flags().Duration("delay", config.DefaultHealthDelay,
		"Pause between checks made with --wait")
	cmd.Flags().BoolP("json", "j", false,
		"Output the status as JSON")

	return cmd
}

// runHealthCmd executes the health command.
func runHealthCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	wait, err := cmd.Flags().GetBool("wait")
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("attempts") {
		if cfg.HealthAttempts, err = cmd.Flags().GetInt("attempts"); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("delay") {
		if cfg.HealthDelay, err = cmd.Flags().GetDuration("delay"); err != nil {
			return err
		}
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	var status wagtail.HealthStatus
	if wait {
		status = client.WaitForReady(ctx, cfg.HealthAttempts, cfg.HealthDelay)
	} else {
		status = client.CheckHealth(ctx)
	}

	out := cmd.OutOrStdout()
	if cfg.JSONReport {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		body := struct {
			wagtail.HealthStatus
			CMS    string `json:"cms"`
			Status string `json:"status"`
		}{HealthStatus: status, CMS: client.APIBase(), Status: status.String()}
		if err := enc.Encode(body); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "%s: %s\n", client.APIBase(), status)
	}

	if !status.OK() {
		return ErrNotReady
	}
	return nil
}

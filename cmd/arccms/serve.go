package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arclebanon/arccms/internal/config"
	"github.com/arclebanon/arccms/internal/database"
	applog "github.com/arclebanon/arccms/internal/log"
	"github.com/arclebanon/arccms/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the content preview server",
		Long: `Serve starts an HTTP server that resolves sections on request, so editors
can preview what the site will show.

Endpoints:
  GET  /healthz                  liveness
  GET  /healthz/cms              CMS readiness (503 while the CMS is down)
  GET  /api/sections[?only=a,b]  resolve all or some sections
  GET  /api/sections/{name}      resolve one section
  GET  /api/page[?type=t]        inspect the home page blocks
  GET  /api/cache                page cache counters
  POST /api/refresh              drop cached documents after publishing

Logs are written to stderr as JSON. Request logs need --verbose.

Examples:
  # Serve on the default address
  arccms serve

  # Serve on all interfaces and record every resolution
  arccms serve -l :8080 --save-to-db`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	addCMSFlags(cmd)
	addDBFlag(cmd)

	cmd.Flags().StringP("listen", "l", config.DefaultListenAddr,
		"Listen address")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Number of sections resolved in parallel per request")
	cmd.Flags().BoolP("save-to-db", "s", false,
		"Record every resolution in the history database")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := applog.NewSecureJSONLogger(os.Stderr, cfg.Verbose)

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	opts := []server.Option{
		server.WithAddr(cfg.ListenAddr),
		server.WithHealthChecker(client),
		server.WithSectionOptions(sectionOptions(client, cfg)),
		server.WithConcurrency(cfg.Concurrency),
		server.WithLogger(logger),
	}

	if cfg.SaveToDB {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		opts = append(opts, server.WithRecorder(db))
		logger.Info("recording resolutions", "path", db.Path())
	}

	srv := server.New(client.BaseURL(), newPageCache(client, cfg, logger), opts...)
	return srv.ListenAndServe(ctx)
}

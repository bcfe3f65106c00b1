// ABOUTME: CLI command for the live ingestion HTTP server.
// ABOUTME: Accepts Health Auto Export payloads and reports storage status.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/glucolog/glucolog/internal/ingest"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the ingestion HTTP server",
	Long: `Start the HTTP server that receives live readings.

ENDPOINTS:

  POST /health-data   Accepts a Health Auto Export JSON payload and stores
                      glucose, sleep, and workout items. Duplicates are
                      skipped, so replayed exports are safe.
  GET  /status        Storage health, per-domain counts, CGM freshness.
  GET  /healthz       Liveness probe.

EXAMPLES:

  glucolog serve                  # Listen on :8080
  glucolog serve --addr :9000     # Custom port`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = cfg.GetListenAddr()
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		server := ingest.NewServer(repo, analyzer, addr, logger)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			logger.Info("shutting down")
			cancel()
		}()

		return server.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default :8080 or config listen_addr)")
	rootCmd.AddCommand(serveCmd)
}

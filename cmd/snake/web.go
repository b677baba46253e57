package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/poopy-snake/internal/platform/web"
	"github.com/vovakirdan/poopy-snake/internal/storage"
)

var flagHTTPAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the leaderboard as JSON over HTTP",
	Long: `Start a read-only HTTP API over the scores database.

Endpoints:
  GET /healthz
  GET /games
  GET /games/{id}/scores?limit=N
  GET /games/{id}/stats
  GET /runs?limit=N

Examples:
  snake web
  snake web --addr 127.0.0.1:9000 --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) error {
	logger, err := newLogger("snake-web")
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return web.NewServer(store, logger).ListenAndServe(ctx, flagHTTPAddr)
}

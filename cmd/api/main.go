package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"crossbank/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load config and the bank table.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Start the audit consumer and the HTTP server.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.BuildAPI()
	if err != nil {
		slog.Error("api bootstrap failed", "event", "bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			slog.Error("api shutdown error", "event", "shutdown_error", "error", err)
		}
	}()

	if err := app.Run(ctx); err != nil {
		slog.Error("api server exited", "event", "server_exited", "error", err)
		os.Exit(1)
	}
}

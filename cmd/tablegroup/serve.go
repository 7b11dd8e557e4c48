package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ukaji3/tablegroup-go/internal/config"
	"github.com/ukaji3/tablegroup-go/pkg/tablegroup"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve table extraction over HTTP",
		Long: `serve accepts document uploads on POST /extract and answers with the
grouped workbook.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, flags, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")
	return cmd
}

func runServe(cmd *cobra.Command, flags *rootFlags, addr string) error {
	cfg, logger, err := loadConfig(flags)
	if err != nil {
		return report(cmd, err)
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      newServer(cfg, logger),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return report(cmd, err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	logger.Info("server stopped")
	return nil
}

// newServer wires routes and the middleware chain.
func newServer(cfg config.Config, logger *slog.Logger) http.Handler {
	h := &handler{
		opts: tablegroup.Options{
			Detection:  cfg.Detection,
			ScratchDir: cfg.ScratchDir,
			Logger:     logger,
		},
		maxUpload: cfg.Server.MaxUploadMB << 20,
		logger:    logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /extract", h.handleExtract)
	mux.HandleFunc("GET /health", h.handleHealth)

	// Middleware chain: recovery -> request id -> auth -> logging -> mux
	var handler http.Handler = mux
	handler = logMiddleware(logger, handler)
	handler = authMiddleware(cfg.Server.APIKey, handler)
	handler = requestIDMiddleware(handler)
	handler = recoveryMiddleware(logger, handler)
	return handler
}

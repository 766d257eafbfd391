package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"filmwatch/internal/server"
)

var (
	flagListen         string
	flagAllowDirectory bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve watch options over HTTP",
	Long: `Serve watch options over HTTP.

  GET /watch?title=&url=      HTML page for embedding
  GET /api/watch?title=&url=  JSON presentation
  GET /health

Requests may add &directory= only when --allow-directory is set.`,
	Args: cobra.NoArgs,
	RunE: serveRun,
}

func init() {
	serveCmd.Flags().StringVarP(&flagListen, "listen", "l", "", "Listen address (default 127.0.0.1:8080)")
	serveCmd.Flags().BoolVar(&flagAllowDirectory, "allow-directory", false, "Let requests choose the directory with ?directory=")
}

func serveRun(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := server.New(newResolver(), newHTML(), cfg.DirectoryURL, logger,
		server.WithDirectoryOverride(cfg.AllowDirectoryOverride || flagAllowDirectory))
	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Timeout() + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Listen, "directory", cfg.DirectoryURL)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

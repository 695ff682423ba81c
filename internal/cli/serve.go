package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/volleyball-stats/internal/app"
	"github.com/riskibarqy/volleyball-stats/internal/observability"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(s *session) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve read-only queries over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := commandContext(cmd)
			logger := s.logger
			if addr != "" {
				s.runtime.Config.HTTPAddr = addr
			}

			stopProfiler, err := observability.InitPyroscope(s.cfg, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := stopProfiler(); err != nil {
					logger.Warn("stop pyroscope", "error", err)
				}
			}()

			shutdownTracing, err := observability.InitUptrace(s.cfg, logger)
			if err != nil {
				return err
			}
			defer func() {
				flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := shutdownTracing(flushCtx); err != nil {
					logger.Warn("flush traces", "error", err)
				}
			}()

			srv, err := app.NewHTTPServer(s.runtime)
			if err != nil {
				return err
			}

			serveErr := make(chan error, 1)
			go func() {
				logger.Info("http server starting", "addr", srv.Addr, "db_path", s.runtime.Store.Path())
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
				close(serveErr)
			}()

			sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			select {
			case <-sigCtx.Done():
			case err := <-serveErr:
				if err != nil {
					logger.Error("http server failed", "error", err)
					return err
				}
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown failed", "error", err)
				return err
			}

			logger.Info("http server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from APP_HTTP_ADDR)")
	return cmd
}

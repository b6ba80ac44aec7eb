package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjoart/paises/cmd/routes"
	"github.com/zjoart/paises/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// NewServeCommand runs the HTTP server until SIGINT or SIGTERM
func NewServeCommand(root *RootOptions) *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, backend, err := bootstrap(ctx, root)
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer backend.Close()

			if !skipMigrate {
				if err := backend.EnsureTables(ctx); err != nil {
					return err
				}
			}

			srv := &http.Server{
				Addr:              cfg.Addr(),
				Handler:           routes.SetUpRoutes(backend, cfg),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("server: listening", logger.Fields{"addr": srv.Addr, "env": cfg.AppEnv})
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server: stopped", logger.WithError(err))
					return err
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("server: shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not create tables on startup")
	return cmd
}

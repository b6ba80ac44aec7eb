package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/zjoart/paises/internal/config"
	"github.com/zjoart/paises/internal/database"
	"github.com/zjoart/paises/pkg/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFile string
}

// NewRootCommand creates the root command for the paises CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "paises",
		Short:         "Country records service",
		Long:          "HTTP CRUD service for country records (nombre, capital, continente, idioma, codigo).",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "path to a dotenv file")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewDropCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}

// bootstrap loads configuration, initializes logging and opens the backend
func bootstrap(ctx context.Context, opts *RootOptions) (*config.Config, database.Backend, error) {
	cfg, err := config.Load(opts.EnvFile)
	if err != nil {
		return nil, nil, err
	}
	if err := logger.Init(cfg.LogLevel, cfg.AppEnv); err != nil {
		return nil, nil, err
	}
	backend, err := database.Open(ctx, cfg.DB)
	if err != nil {
		logger.Error("cli: database connection failed", logger.WithError(err))
		return nil, nil, err
	}
	return cfg, backend, nil
}

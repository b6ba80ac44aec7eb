package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjoart/paises/pkg/logger"
)

// NewMigrateCommand creates the paises table and its indexes
func NewMigrateCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the paises table",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, backend, err := bootstrap(cmd.Context(), root)
			if err != nil {
				return err
			}
			defer backend.Close()
			defer logger.Sync()

			if err := backend.EnsureTables(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migration complete")
			return nil
		},
	}
}

// NewDropCommand drops the paises table
func NewDropCommand(root *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop the paises table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to drop tables without --yes")
			}
			_, backend, err := bootstrap(cmd.Context(), root)
			if err != nil {
				return err
			}
			defer backend.Close()
			defer logger.Sync()

			if err := backend.DropTables(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "tables dropped")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm dropping all data")
	return cmd
}

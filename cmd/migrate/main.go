package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"hotel_api/internal/adapters/observability"
	"hotel_api/internal/shared"
)

func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	if err := rootCmd(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd(cfg shared.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "hotel-migrate",
		Short:         "Schema migrations for the hotel API database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("driver", cfg.DBDriver, "database driver: mysql, postgres or sqlite")
	root.PersistentFlags().String("dsn", cfg.DatabaseDSN, "data source name")

	root.AddCommand(upCmd(), downCmd(), statusCmd())
	return root
}

package main

import (
	"os"

	"github.com/spf13/cobra"

	"storefront/cmd/migrate"
	"storefront/cmd/seed"
	"storefront/cmd/serve"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "storefront",
		Short: "Ethnic wear storefront: product catalog and review API",
		Long: `Ethnic wear storefront: product catalog and review API.

Configuration is read from environment variables (APP_PORT, DATABASE_DRIVER,
DATABASE_DSN, RABBITMQ_URL, AUTH_REQUIRED, JWT_SECRET, ...) and optionally
from a file passed with --config.`,
		SilenceUsage: true,
	}
	root.AddCommand(serve.NewServeCommand())
	root.AddCommand(migrate.NewMigrateCommand())
	root.AddCommand(seed.NewSeedCommand())
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

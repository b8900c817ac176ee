package migrate

import (
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"storefront/internal/config"
	"storefront/internal/database"
)

const configFlag = "config"

var migrateFlags = map[string]cobraflags.Flag{
	configFlag: &cobraflags.StringFlag{
		Name:  configFlag,
		Value: "",
		Usage: "Optional config file; environment variables take precedence",
	},
}

func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the products, reviews and users tables",
		RunE:  migrateCommand,
	}
	cobraflags.RegisterMap(cmd, migrateFlags)
	return cmd
}

func migrateCommand(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(migrateFlags[configFlag].GetString())
	if err != nil {
		return err
	}
	logger := cfg.NewLogger(os.Stdout)

	db, err := database.Open(cfg.Database())
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}
	logger.Info("schema migrated", "driver", cfg.DatabaseDriver)
	return nil
}

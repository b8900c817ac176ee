package seed

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

const configFlag = "config"

var seedFlags = map[string]cobraflags.Flag{
	configFlag: &cobraflags.StringFlag{
		Name:  configFlag,
		Value: "",
		Usage: "Optional config file; environment variables take precedence",
	},
}

func NewSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo catalog and the admin account",
		Long: `Insert the demo catalog and the admin account.

Products are only inserted into an empty catalog, so running seed twice is
harmless. The admin account is taken from ADMIN_EMAIL and ADMIN_PASSWORD.`,
		RunE: seedCommand,
	}
	cobraflags.RegisterMap(cmd, seedFlags)
	return cmd
}

func seedCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(seedFlags[configFlag].GetString())
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

	return Run(cmd.Context(), db, cfg, logger)
}

// Run seeds db with the demo catalog and the admin account.
func Run(ctx context.Context, db *gorm.DB, cfg *config.Config, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		logger.Info("catalog already has products, skipping", "count", count)
	} else {
		repo := repositories.NewGORMProductRepository(db)
		for _, p := range DemoProducts() {
			if err := repo.Create(ctx, &p); err != nil {
				return err
			}
			logger.Info("seeded product", "id", p.ID, "name", p.Name)
		}
	}

	auth := services.NewAuthService(repositories.NewGORMUserRepository(db), cfg.JWTSecret, cfg.TokenTTL)
	created, err := auth.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}
	if created {
		logger.Info("created admin account", "email", cfg.AdminEmail)
	}
	return nil
}

// DemoProducts is the storefront's trending collection.
func DemoProducts() []models.Product {
	description := func(s string) *string { return &s }
	return []models.Product{
		{
			Name:          "Silk Banarasi Saree",
			Description:   description("Handwoven Banarasi silk with zari border"),
			Price:         12999,
			Category:      models.CategoryWomen,
			Subcategory:   "sarees",
			Fabric:        "silk",
			Sizes:         []string{"Free Size"},
			Colors:        []string{"maroon", "gold"},
			Images:        []string{"/images/silk-banarasi-saree.jpg"},
			StockQuantity: 15,
			Featured:      true,
		},
		{
			Name:          "Designer Lehenga Set",
			Description:   description("Embellished georgette lehenga with dupatta"),
			Price:         25999,
			Category:      models.CategoryWomen,
			Subcategory:   "lehengas",
			Fabric:        "georgette",
			Sizes:         []string{"S", "M", "L"},
			Colors:        []string{"pink", "peach"},
			Images:        []string{"/images/designer-lehenga-set.jpg"},
			StockQuantity: 8,
			Featured:      true,
		},
		{
			Name:          "Embroidered Kurta Set",
			Description:   description("Cotton kurta with churidar and thread embroidery"),
			Price:         4999,
			Category:      models.CategoryMen,
			Subcategory:   "kurtas",
			Fabric:        "cotton",
			Sizes:         []string{"M", "L", "XL"},
			Colors:        []string{"white", "navy"},
			Images:        []string{"/images/embroidered-kurta-set.jpg"},
			StockQuantity: 25,
			Featured:      true,
		},
		{
			Name:          "Kids Festive Dress",
			Description:   description("Silk blend festive wear for children"),
			Price:         2999,
			Category:      models.CategoryKids,
			Subcategory:   "dresses",
			Fabric:        "silk blend",
			Sizes:         []string{"2-3Y", "4-5Y", "6-7Y"},
			Colors:        []string{"yellow", "green"},
			Images:        []string{"/images/kids-festive-dress.jpg"},
			StockQuantity: 30,
			Featured:      true,
		},
	}
}

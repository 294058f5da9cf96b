package migrate

import (
	"context"

	"github.com/davidreyero/comboforge-backend/pkg/config"
	"github.com/davidreyero/comboforge-backend/pkg/db"
	"github.com/davidreyero/comboforge-backend/pkg/db/models"
	"github.com/davidreyero/comboforge-backend/pkg/logger"
)

// MaybeAutoRun applies pending schema changes on boot when the deploy opts in.
// SQLite deployments (dev, tests) use GORM auto-migration; Postgres runs the
// goose SQL files so the schema stays hand-authored.
func MaybeAutoRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if cfg == nil || !cfg.DB.AutoMigrate {
		return nil
	}

	if cfg.DB.UseSQLite {
		if logg != nil {
			logg.Info(ctx, "auto-migrating sqlite schema")
		}
		return client.DB().AutoMigrate(&models.Product{}, &models.FixedCombo{})
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return err
	}
	if logg != nil {
		logg.Info(ctx, "running goose migrations")
	}
	return Up(ctx, sqlDB, DefaultDir)
}

package migration

import (
	addressdomain "github.com/hearthshare/inquiry/internal/address/domain"
	"github.com/hearthshare/inquiry/internal/analytics"
	clientdomain "github.com/hearthshare/inquiry/internal/client/domain"
	"github.com/hearthshare/inquiry/internal/config"
	forecastdomain "github.com/hearthshare/inquiry/internal/forecast/domain"
	inquirydomain "github.com/hearthshare/inquiry/internal/inquiry/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType != "postgres" {
			// Versioned SQL is written for postgres; other dialects are for
			// development and get the schema straight from the models.
			return AutoMigrate(conn)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)

// AutoMigrate builds the schema from the gorm models.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&clientdomain.User{},
		&clientdomain.Client{},
		&clientdomain.SMSConsent{},
		&clientdomain.Session{},
		&addressdomain.Address{},
		&inquirydomain.Inquiry{},
		&forecastdomain.ZipForecast{},
		&analytics.Event{},
	)
}

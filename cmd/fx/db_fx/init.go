package db_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"huddle/internal/infra"
	"huddle/internal/models/db_models"
)

var Module = fx.Provide(
	provideDB)

func provideDB(lc fx.Lifecycle, cfg *infra.Config) (*gorm.DB, error) {
	db, err := infra.InitPostgresql(cfg)
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&db_models.Member{},
		&db_models.CheckIn{},
		&db_models.Alert{},
	); err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return infra.ClosePostgresql(db)
		},
	})

	return db, nil
}

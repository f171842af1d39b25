package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"huddle/internal/infra"
)

var Module = fx.Provide(
	provideConfig, provideLogger)

func provideConfig() (*infra.Config, error) {
	return infra.LoadConfig()
}

func provideLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}

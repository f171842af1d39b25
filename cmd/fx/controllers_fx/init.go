package controllers_fx

import (
	"go.uber.org/fx"

	"huddle/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewCheckInController),
	fx.Provide(controllers.NewAlertController),
	fx.Provide(controllers.NewSlackController),
	fx.Provide(controllers.NewJobsController),
	fx.Provide(controllers.NewAdminController),
	fx.Provide(controllers.NewMembersController))

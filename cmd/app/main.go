package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"huddle/cmd/fx/config_fx"
	"huddle/cmd/fx/controllers_fx"
	"huddle/cmd/fx/db_fx"
	"huddle/cmd/fx/mail_fx"
	"huddle/cmd/fx/member_fx"
	"huddle/cmd/fx/slack_fx"
	"huddle/internal/api/controllers"
	"huddle/internal/infra"
	"huddle/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		mail_fx.Module,
		slack_fx.Module,
		member_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *infra.Config, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("starting HTTP server", zap.String("port", cfg.Port))
				if err := engine.Run(":" + cfg.Port); err != nil {
					logger.Fatal("server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return logger.Sync()
		},
	})
}

func ProvideRouter(
	cfg *infra.Config,
	checkInController *controllers.CheckInController,
	alertController *controllers.AlertController,
	slackController *controllers.SlackController,
	jobsController *controllers.JobsController,
	adminController *controllers.AdminController,
	membersController *controllers.MembersController) *gin.Engine {

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, cfg,
		checkInController, alertController, slackController,
		jobsController, adminController, membersController)

	return r
}

func RegisterRoutes(r *gin.Engine, cfg *infra.Config,
	checkInController *controllers.CheckInController,
	alertController *controllers.AlertController,
	slackController *controllers.SlackController,
	jobsController *controllers.JobsController,
	adminController *controllers.AdminController,
	membersController *controllers.MembersController) {

	api := r.Group("/api")

	api.POST("/check-in", checkInController.Submit)
	api.POST("/alert", alertController.Submit)

	slackGroup := api.Group("/slack")
	slackGroup.POST("/action", slackController.HandleAction)
	slackGroup.POST("/command", slackController.HandleCommand)
	slackGroup.POST("/alert-command", slackController.HandleAlertCommand)

	jobsGroup := api.Group("/jobs")
	jobsGroup.GET("/initialize", jobsController.Initialize)
	jobsGroup.GET("/request", jobsController.Request)
	jobsGroup.GET("/remind", jobsController.Remind)
	jobsGroup.GET("/notify", jobsController.Notify)
	jobsGroup.GET("/alert", jobsController.Alert)

	session := api.Group("")
	session.Use(middleware.SessionMiddleware([]byte(cfg.SessionSecret)))
	session.POST("/update-pm-email", adminController.UpdateProjectManagerEmail)
	session.GET("/members", membersController.List)
}

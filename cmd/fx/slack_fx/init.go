package slack_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"huddle/internal/infra"
	"huddle/internal/services"
	"huddle/pkg/slackapi"
)

var Module = fx.Provide(
	provideGateway,
	provideMessageService,
	provideModalService,
	provideRosterProvider,
	provideLocationResolver,
	provideSlackRequestService)

func provideGateway(cfg *infra.Config) services.SlackGateway {
	return slackapi.New(cfg.SlackBotToken)
}

func provideMessageService(gateway services.SlackGateway, cfg *infra.Config, logger *zap.Logger) services.MessageServiceInterface {
	return services.NewMessageService(services.MessageServiceParams{
		Gateway:             gateway,
		OrganizationChannel: cfg.SlackOrganizationChannel,
		MonitoringChannel:   cfg.SlackMonitoringChannel,
		Host:                cfg.Host,
		Concurrency:         cfg.FanoutConcurrency,
		Logger:              logger,
	})
}

func provideModalService(gateway services.SlackGateway, cfg *infra.Config) services.ModalServiceInterface {
	return services.NewModalService(gateway, cfg.Host)
}

func provideRosterProvider(gateway services.SlackGateway) services.RosterProvider {
	return services.NewSlackMemberService(gateway)
}

func provideLocationResolver(cfg *infra.Config) services.LocationResolver {
	return services.NewGoogleLocationService(cfg.GoogleGeocodingAPIToken)
}

func provideSlackRequestService(memberService services.MemberServiceInterface, modals services.ModalServiceInterface, cfg *infra.Config, logger *zap.Logger) services.SlackRequestServiceInterface {
	return services.NewSlackRequestService(memberService, modals, cfg.SlackSigningSecret, logger)
}

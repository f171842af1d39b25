package mail_fx

import (
	"go.uber.org/fx"

	"huddle/internal/infra"
	"huddle/internal/services"
)

var Module = fx.Provide(
	provideMailService)

// SMTP is optional; without a host the at-risk email escalation is a no-op
// and only the channel notification fires.
func provideMailService(cfg *infra.Config) services.MailServiceInterface {
	if cfg.SMTP.Host == "" {
		return services.NewNoopMailService()
	}
	return services.NewSMTPMailService(cfg.SMTP)
}

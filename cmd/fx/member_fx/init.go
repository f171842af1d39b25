package member_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"huddle/internal/infra"
	"huddle/internal/repositories"
	"huddle/internal/services"
	"huddle/pkg/utils"
)

var Module = fx.Provide(
	provideMemberRepo,
	provideCheckInRepo,
	provideAlertRepo,
	provideTokenGenerator,
	provideTokenAuthority,
	provideRiskRules,
	provideSyncService,
	provideMemberService)

func provideMemberRepo(db *gorm.DB, cfg *infra.Config) repositories.MemberRepository {
	return repositories.NewMemberRepository(db, cfg.FilterRestricted, cfg.FilterUltraRestricted)
}

func provideCheckInRepo(db *gorm.DB) repositories.CheckInRepository {
	return repositories.NewCheckInRepository(db)
}

func provideAlertRepo(db *gorm.DB) repositories.AlertRepository {
	return repositories.NewAlertRepository(db)
}

func provideTokenGenerator() utils.UniqueStringGenerator {
	return utils.NewUUIDGenerator()
}

func provideTokenAuthority(members repositories.MemberRepository, generator utils.UniqueStringGenerator) services.TokenAuthority {
	return services.NewTokenAuthority(members, generator)
}

func provideRiskRules(cfg *infra.Config) services.RiskRules {
	return services.ResolveRiskRules(cfg.RiskRule, cfg.ShortWindow)
}

func provideSyncService(members repositories.MemberRepository, roster services.RosterProvider, logger *zap.Logger) services.SyncServiceInterface {
	return services.NewSyncService(members, roster, logger)
}

func provideMemberService(
	members repositories.MemberRepository,
	checkIns repositories.CheckInRepository,
	alerts repositories.AlertRepository,
	tokens services.TokenAuthority,
	rules services.RiskRules,
	sync services.SyncServiceInterface,
	messages services.MessageServiceInterface,
	mail services.MailServiceInterface,
	cfg *infra.Config,
	logger *zap.Logger,
) services.MemberServiceInterface {
	return services.NewMemberService(services.MemberServiceParams{
		Members:  members,
		CheckIns: checkIns,
		Alerts:   alerts,
		Tokens:   tokens,
		Rules:    rules,
		Sync:     sync,
		Messages: messages,
		Mail:     mail,
		Config:   cfg,
		Logger:   logger,
	})
}

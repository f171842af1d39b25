package services

import (
	"context"

	"go.uber.org/zap"

	"huddle/internal/models/db_models"
	"huddle/internal/repositories"
)

// SyncServiceInterface reconciles the local roster against the external
// directory. Re-running with an identical snapshot is a no-op; members are
// never deleted, only flagged.
type SyncServiceInterface interface {
	SyncAll(ctx context.Context) error
}

type SyncService struct {
	members repositories.MemberRepository
	roster  RosterProvider
	logger  *zap.Logger
}

func NewSyncService(members repositories.MemberRepository, roster RosterProvider, logger *zap.Logger) SyncServiceInterface {
	return &SyncService{
		members: members,
		roster:  roster,
		logger:  logger,
	}
}

func (s *SyncService) SyncAll(ctx context.Context) error {
	entries, err := s.roster.GetAll(ctx)
	if err != nil {
		return err
	}

	// Each entry is an independent unit of work; one failure must not
	// abort the batch.
	for _, entry := range entries {
		if err := s.syncOne(ctx, entry); err != nil {
			s.logger.Error("directory sync failed for entry",
				zap.String("slack_id", entry.ID),
				zap.Error(err))
		}
	}

	return nil
}

func (s *SyncService) syncOne(ctx context.Context, entry RosterEntry) error {
	existing, err := s.members.FindAnyBySlackID(ctx, entry.ID)
	if err != nil {
		return err
	}

	if existing != nil {
		existing.Name = entry.Name
		existing.Email = entry.Email
		existing.IsDeleted = entry.IsDeleted
		existing.IsRestricted = entry.IsRestricted
		existing.IsUltraRestricted = entry.IsUltraRestricted

		_, err = s.members.Update(ctx, existing)
		return err
	}

	_, err = s.members.Create(ctx, &db_models.Member{
		SlackID:             entry.ID,
		Name:                entry.Name,
		Email:               entry.Email,
		ProjectManagerEmail: "",
		IsDeleted:           entry.IsDeleted,
		IsRestricted:        entry.IsRestricted,
		IsUltraRestricted:   entry.IsUltraRestricted,
		IsAdmin:             false,
		IsMobilized:         false,
		IsExemptFromCheckIn: true,
		IsOptedOutOfMap:     false,
		CheckInToken:        nil,
		AlertToken:          nil,
	})
	return err
}

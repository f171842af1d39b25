package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"huddle/internal/infra"
	"huddle/internal/models/db_models"
	"huddle/internal/repositories"
	"huddle/pkg/utils"
)

// MemberServiceInterface is the core of the system: member lookups, the
// check-in and alert submission flows, attribute mutation, directory sync
// and the scheduled request/remind/notify batches.
type MemberServiceInterface interface {
	GetByID(ctx context.Context, id string) (*db_models.Member, error)
	GetByEmail(ctx context.Context, email string) (*db_models.Member, error)
	FindBySlackID(ctx context.Context, slackID string) (*db_models.Member, error)
	GetAll(ctx context.Context) ([]*db_models.Member, error)

	CheckIn(ctx context.Context, member *db_models.Member, record *db_models.CheckIn) error
	Alert(ctx context.Context, member *db_models.Member, record *db_models.Alert) error
	RepeatCheckIn(ctx context.Context, memberID string) error
	SetIsAttribute(ctx context.Context, memberID string, attribute db_models.MemberIsAttribute, value bool) (*db_models.Member, error)
	UpdateProjectManagerEmail(ctx context.Context, memberID, email string) (*db_models.Member, error)

	IssueCheckInToken(ctx context.Context, member *db_models.Member) (*db_models.Member, error)
	IssueAlertToken(ctx context.Context, member *db_models.Member) (*db_models.Member, error)

	SyncAllWithSlack(ctx context.Context) error
	RequestCheckIns(ctx context.Context) error
	RequestAlert(ctx context.Context) error
	RemindMembersOfLateCheckIn(ctx context.Context) error
	NotifyOfLateCheckIns(ctx context.Context) error
}

type MemberService struct {
	members  repositories.MemberRepository
	checkIns repositories.CheckInRepository
	alerts   repositories.AlertRepository
	tokens   TokenAuthority
	rules    RiskRules
	sync     SyncServiceInterface
	messages MessageServiceInterface
	mail     MailServiceInterface
	cfg      *infra.Config
	logger   *zap.Logger
}

type MemberServiceParams struct {
	Members  repositories.MemberRepository
	CheckIns repositories.CheckInRepository
	Alerts   repositories.AlertRepository
	Tokens   TokenAuthority
	Rules    RiskRules
	Sync     SyncServiceInterface
	Messages MessageServiceInterface
	Mail     MailServiceInterface
	Config   *infra.Config
	Logger   *zap.Logger
}

func NewMemberService(params MemberServiceParams) MemberServiceInterface {
	return &MemberService{
		members:  params.Members,
		checkIns: params.CheckIns,
		alerts:   params.Alerts,
		tokens:   params.Tokens,
		rules:    params.Rules,
		sync:     params.Sync,
		messages: params.Messages,
		mail:     params.Mail,
		cfg:      params.Config,
		logger:   params.Logger,
	}
}

func (s *MemberService) GetByID(ctx context.Context, id string) (*db_models.Member, error) {
	member, err := s.members.GetByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if member == nil {
		return nil, utils.ErrMemberNotFound
	}
	return member, nil
}

func (s *MemberService) GetByEmail(ctx context.Context, email string) (*db_models.Member, error) {
	member, err := s.members.GetByEmail(ctx, email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if member == nil {
		return nil, utils.ErrMemberNotFound
	}
	return member, nil
}

// FindBySlackID returns nil, nil when no visible member matches; callers in
// the webhook path turn that into a user-facing view rather than an error.
func (s *MemberService) FindBySlackID(ctx context.Context, slackID string) (*db_models.Member, error) {
	member, err := s.members.FindBySlackID(ctx, slackID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return member, nil
}

func (s *MemberService) GetAll(ctx context.Context) ([]*db_models.Member, error) {
	members, err := s.members.GetAll(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return members, nil
}

// CheckIn records a submission, invalidates the link that authorized it and
// evaluates risk. The token is cleared only after the record is durably
// stored, so a failed write leaves the link usable for a retry.
func (s *MemberService) CheckIn(ctx context.Context, member *db_models.Member, record *db_models.CheckIn) error {
	record.MemberID = member.ID
	if err := s.checkIns.Create(ctx, record); err != nil {
		return utils.ErrDatabaseError
	}

	member.CheckInToken = nil
	updated, err := s.members.Update(ctx, member)
	if err != nil {
		return utils.ErrDatabaseError
	}

	s.evaluateCheckInRisk(ctx, updated)
	return nil
}

// Alert mirrors CheckIn for the alert workflow.
func (s *MemberService) Alert(ctx context.Context, member *db_models.Member, record *db_models.Alert) error {
	record.MemberID = member.ID
	if err := s.alerts.Create(ctx, record); err != nil {
		return utils.ErrDatabaseError
	}

	member.AlertToken = nil
	updated, err := s.members.Update(ctx, member)
	if err != nil {
		return utils.ErrDatabaseError
	}

	s.evaluateAlertRisk(ctx, updated)
	return nil
}

// RepeatCheckIn replays the member's previous answers through the regular
// submission path, so any pending link is invalidated just like a fresh
// check-in would invalidate it.
func (s *MemberService) RepeatCheckIn(ctx context.Context, memberID string) error {
	member, err := s.GetByID(ctx, memberID)
	if err != nil {
		return err
	}
	if member.CheckIn == nil {
		return utils.ErrCannotRepeatCheckIn
	}

	previous := member.CheckIn
	record := &db_models.CheckIn{
		IsSafe:                   previous.IsSafe,
		IsAbleToWork:             previous.IsAbleToWork,
		Support:                  previous.Support,
		OtherSupport:             previous.OtherSupport,
		ElectricityCondition:     previous.ElectricityCondition,
		NumberOfPeopleToRelocate: previous.NumberOfPeopleToRelocate,
		Comment:                  previous.Comment,
		PlaceID:                  previous.PlaceID,
		City:                     previous.City,
		State:                    previous.State,
		Country:                  previous.Country,
		Latitude:                 previous.Latitude,
		Longitude:                previous.Longitude,
	}

	return s.CheckIn(ctx, member, record)
}

// SetIsAttribute mutates one of the allow-listed member flags. Flipping
// isMobilized changes the outcome of the risk rule, so the current check-in
// is re-evaluated afterwards.
func (s *MemberService) SetIsAttribute(ctx context.Context, memberID string, attribute db_models.MemberIsAttribute, value bool) (*db_models.Member, error) {
	member, err := s.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	switch attribute {
	case db_models.IsAttributeAdmin:
		member.IsAdmin = value
	case db_models.IsAttributeMobilized:
		member.IsMobilized = value
	case db_models.IsAttributeExemptFromCheckIn:
		member.IsExemptFromCheckIn = value
	case db_models.IsAttributeOptedOutOfMap:
		member.IsOptedOutOfMap = value
	default:
		return nil, utils.ErrInvalidIsAttribute
	}

	updated, err := s.members.Update(ctx, member)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	if attribute == db_models.IsAttributeMobilized {
		s.evaluateCheckInRisk(ctx, updated)
	}

	return updated, nil
}

func (s *MemberService) UpdateProjectManagerEmail(ctx context.Context, memberID, email string) (*db_models.Member, error) {
	member, err := s.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	member.ProjectManagerEmail = email
	updated, err := s.members.Update(ctx, member)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return updated, nil
}

func (s *MemberService) IssueCheckInToken(ctx context.Context, member *db_models.Member) (*db_models.Member, error) {
	return s.tokens.IssueCheckInToken(ctx, member)
}

func (s *MemberService) IssueAlertToken(ctx context.Context, member *db_models.Member) (*db_models.Member, error) {
	return s.tokens.IssueAlertToken(ctx, member)
}

func (s *MemberService) SyncAllWithSlack(ctx context.Context) error {
	return s.sync.SyncAll(ctx)
}

// RequestCheckIns broadcasts the check-in call to the configured surfaces:
// the organization channel, direct messages to non-exempt members, or both.
func (s *MemberService) RequestCheckIns(ctx context.Context) error {
	if s.cfg.RequestCheckInOrganizationChannel {
		if err := s.messages.SendCheckInRequestToChannel(ctx); err != nil {
			return err
		}
	}

	if s.cfg.RequestCheckInDirectMessage {
		members, err := s.GetAll(ctx)
		if err != nil {
			return err
		}
		s.messages.SendCheckInRequestToMembers(ctx, notExempt(members))
	}

	return nil
}

// RequestAlert starts a new alert cycle. Each member's stale alert state is
// purged first, unless their latest alert carries the null-safety sentinel,
// which pins the record across cycles. Purge failures are isolated per
// member so one bad row never blocks the broadcast.
func (s *MemberService) RequestAlert(ctx context.Context) error {
	members, err := s.GetAll(ctx)
	if err != nil {
		return err
	}

	for _, member := range members {
		if member.Alert != nil && member.Alert.IsSafe == nil {
			continue
		}
		if err := s.alerts.DeleteAllByMember(ctx, member.ID); err != nil {
			s.logger.Error("alert purge failed",
				zap.String("member_id", member.ID.String()),
				zap.Error(err))
		}
	}

	if s.cfg.RequestAlertOrganizationChannel {
		if err := s.messages.SendAlertRequestToChannel(ctx); err != nil {
			return err
		}
	}

	if s.cfg.RequestAlertDirectMessage {
		s.messages.SendAlertRequestToMembers(ctx, notExempt(members))
	}

	return nil
}

func (s *MemberService) RemindMembersOfLateCheckIn(ctx context.Context) error {
	members, err := s.GetAll(ctx)
	if err != nil {
		return err
	}

	late := lateCheckIns(members, s.cfg.RemindWindow)
	if len(late) == 0 {
		return nil
	}

	s.messages.SendCheckInReminderToMembers(ctx, late)
	return nil
}

func (s *MemberService) NotifyOfLateCheckIns(ctx context.Context) error {
	members, err := s.GetAll(ctx)
	if err != nil {
		return err
	}

	late := lateCheckIns(members, s.cfg.NotifyWindow)
	if len(late) == 0 {
		return nil
	}

	return s.messages.SendNotificationOfMembersWithLateCheckIn(ctx, late)
}

// evaluateCheckInRisk runs the check-in rule and escalates. Notification
// failures are logged, never propagated: the submission has already been
// recorded and must not look failed to the member.
func (s *MemberService) evaluateCheckInRisk(ctx context.Context, member *db_models.Member) {
	if !s.rules.CheckIn(member) {
		return
	}

	if err := s.messages.SendMemberAtRiskNotification(ctx, member); err != nil {
		s.logger.Error("at-risk notification failed",
			zap.String("member_id", member.ID.String()),
			zap.Error(err))
	}
	if err := s.mail.SendMemberAtRiskEmail(member); err != nil {
		s.logger.Error("at-risk email failed",
			zap.String("member_id", member.ID.String()),
			zap.Error(err))
	}
}

func (s *MemberService) evaluateAlertRisk(ctx context.Context, member *db_models.Member) {
	if !s.rules.Alert(member) {
		return
	}

	if err := s.messages.SendMemberAtRiskNotificationForAlert(ctx, member); err != nil {
		s.logger.Error("at-risk notification failed",
			zap.String("member_id", member.ID.String()),
			zap.Error(err))
	}
	if err := s.mail.SendMemberAtRiskEmail(member); err != nil {
		s.logger.Error("at-risk email failed",
			zap.String("member_id", member.ID.String()),
			zap.Error(err))
	}
}

func notExempt(members []*db_models.Member) []*db_models.Member {
	out := make([]*db_models.Member, 0, len(members))
	for _, member := range members {
		if !member.IsExemptFromCheckIn {
			out = append(out, member)
		}
	}
	return out
}

func lateCheckIns(members []*db_models.Member, window time.Duration) []*db_models.Member {
	out := make([]*db_models.Member, 0, len(members))
	for _, member := range members {
		if member.IsExemptFromCheckIn {
			continue
		}
		at := member.LastCheckInAt()
		if at == nil || !utils.IsWithin(*at, window) {
			out = append(out, member)
		}
	}
	return out
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"huddle/internal/infra"
	"huddle/internal/models/db_models"
	"huddle/pkg/utils"
)

type memberServiceFixture struct {
	service  MemberServiceInterface
	members  *fakeMemberRepo
	checkIns *fakeCheckInRepo
	alerts   *fakeAlertRepo
	messages *fakeMessages
	mail     *fakeMail
}

func newMemberServiceFixture(cfg *infra.Config, rules RiskRules, members ...*db_models.Member) *memberServiceFixture {
	f := &memberServiceFixture{
		members:  newFakeMemberRepo(members...),
		checkIns: &fakeCheckInRepo{},
		alerts:   &fakeAlertRepo{},
		messages: &fakeMessages{},
		mail:     &fakeMail{},
	}

	f.service = NewMemberService(MemberServiceParams{
		Members:  f.members,
		CheckIns: f.checkIns,
		Alerts:   f.alerts,
		Tokens:   NewTokenAuthority(f.members, &sequenceGenerator{}),
		Rules:    rules,
		Messages: f.messages,
		Mail:     f.mail,
		Config:   cfg,
		Logger:   zap.NewNop(),
	})

	return f
}

func alwaysAtRisk() RiskRules {
	rule := func(*db_models.Member) bool { return true }
	return RiskRules{CheckIn: rule, Alert: rule}
}

func neverAtRisk() RiskRules {
	rule := func(*db_models.Member) bool { return false }
	return RiskRules{CheckIn: rule, Alert: rule}
}

func strptr(s string) *string { return &s }

func TestCheckInClearsTokenAndEvaluatesRisk(t *testing.T) {
	token := "pending-token"
	member := &db_models.Member{SlackID: "U1", Name: "Ann", CheckInToken: &token}
	f := newMemberServiceFixture(&infra.Config{}, alwaysAtRisk(), member)

	err := f.service.CheckIn(context.Background(), member, &db_models.CheckIn{IsSafe: true})

	require.NoError(t, err)
	require.Len(t, f.checkIns.created, 1)
	assert.Equal(t, member.ID, f.checkIns.created[0].MemberID)
	require.Len(t, f.members.updated, 1)
	assert.Nil(t, f.members.updated[0].CheckInToken)
	require.Len(t, f.messages.atRiskCheckIn, 1)
	require.Len(t, f.mail.sent, 1)
}

func TestCheckInCreateFailureKeepsToken(t *testing.T) {
	token := "pending-token"
	member := &db_models.Member{SlackID: "U1", CheckInToken: &token}
	f := newMemberServiceFixture(&infra.Config{}, alwaysAtRisk(), member)
	f.checkIns.createErr = assert.AnError

	err := f.service.CheckIn(context.Background(), member, &db_models.CheckIn{})

	assert.ErrorIs(t, err, utils.ErrDatabaseError)
	assert.Empty(t, f.members.updated)
	require.NotNil(t, member.CheckInToken)
	assert.Equal(t, "pending-token", *member.CheckInToken)
	assert.Empty(t, f.messages.atRiskCheckIn)
}

func TestCheckInNotAtRiskSendsNothing(t *testing.T) {
	member := &db_models.Member{SlackID: "U1"}
	f := newMemberServiceFixture(&infra.Config{}, neverAtRisk(), member)

	err := f.service.CheckIn(context.Background(), member, &db_models.CheckIn{IsSafe: true})

	require.NoError(t, err)
	assert.Empty(t, f.messages.atRiskCheckIn)
	assert.Empty(t, f.mail.sent)
}

func TestAlertClearsTokenAndEvaluatesRisk(t *testing.T) {
	token := "alert-token"
	member := &db_models.Member{SlackID: "U1", AlertToken: &token}
	f := newMemberServiceFixture(&infra.Config{}, alwaysAtRisk(), member)

	safe := false
	err := f.service.Alert(context.Background(), member, &db_models.Alert{IsSafe: &safe})

	require.NoError(t, err)
	require.Len(t, f.alerts.created, 1)
	assert.Equal(t, member.ID, f.alerts.created[0].MemberID)
	require.Len(t, f.members.updated, 1)
	assert.Nil(t, f.members.updated[0].AlertToken)
	require.Len(t, f.messages.atRiskAlert, 1)
}

func TestRepeatCheckInWithoutPrevious(t *testing.T) {
	member := &db_models.Member{SlackID: "U1"}
	f := newMemberServiceFixture(&infra.Config{}, neverAtRisk(), member)

	err := f.service.RepeatCheckIn(context.Background(), member.ID.String())

	assert.ErrorIs(t, err, utils.ErrCannotRepeatCheckIn)
	assert.Empty(t, f.checkIns.created)
}

func TestRepeatCheckInCopiesPreviousAnswers(t *testing.T) {
	member := &db_models.Member{SlackID: "U1"}
	member.CheckIn = &db_models.CheckIn{
		IsSafe:               true,
		IsAbleToWork:         true,
		Support:              "2",
		ElectricityCondition: "1",
		Comment:              strptr("still in Lviv"),
		City:                 strptr("Lviv"),
	}
	f := newMemberServiceFixture(&infra.Config{}, neverAtRisk(), member)

	err := f.service.RepeatCheckIn(context.Background(), member.ID.String())

	require.NoError(t, err)
	require.Len(t, f.checkIns.created, 1)
	repeated := f.checkIns.created[0]
	assert.Equal(t, member.ID, repeated.MemberID)
	assert.True(t, repeated.IsSafe)
	assert.Equal(t, "2", repeated.Support)
	assert.Equal(t, "1", repeated.ElectricityCondition)
	assert.Equal(t, "still in Lviv", *repeated.Comment)
	assert.Equal(t, "Lviv", *repeated.City)
}

func TestRepeatCheckInClearsPendingToken(t *testing.T) {
	token := "pending-token"
	member := &db_models.Member{SlackID: "U1", CheckInToken: &token}
	member.CheckIn = &db_models.CheckIn{IsSafe: true, Support: "1", ElectricityCondition: "1"}
	f := newMemberServiceFixture(&infra.Config{}, neverAtRisk(), member)

	err := f.service.RepeatCheckIn(context.Background(), member.ID.String())

	require.NoError(t, err)
	require.Len(t, f.checkIns.created, 1)
	require.Len(t, f.members.updated, 1)
	assert.Nil(t, f.members.updated[0].CheckInToken)
	assert.Nil(t, member.CheckInToken)
}

func TestSetIsAttributeRejectsUnknownAttribute(t *testing.T) {
	member := &db_models.Member{SlackID: "U1"}
	f := newMemberServiceFixture(&infra.Config{}, neverAtRisk(), member)

	_, err := f.service.SetIsAttribute(context.Background(), member.ID.String(), "isSuperUser", true)

	assert.ErrorIs(t, err, utils.ErrInvalidIsAttribute)
	assert.Empty(t, f.members.updated)
}

func TestSetIsAttributeMobilizedReEvaluatesRisk(t *testing.T) {
	member := &db_models.Member{SlackID: "U1"}
	f := newMemberServiceFixture(&infra.Config{}, alwaysAtRisk(), member)

	updated, err := f.service.SetIsAttribute(context.Background(), member.ID.String(), db_models.IsAttributeMobilized, true)

	require.NoError(t, err)
	assert.True(t, updated.IsMobilized)
	require.Len(t, f.messages.atRiskCheckIn, 1)
}

func TestSetIsAttributeAdminDoesNotReEvaluate(t *testing.T) {
	member := &db_models.Member{SlackID: "U1"}
	f := newMemberServiceFixture(&infra.Config{}, alwaysAtRisk(), member)

	updated, err := f.service.SetIsAttribute(context.Background(), member.ID.String(), db_models.IsAttributeAdmin, true)

	require.NoError(t, err)
	assert.True(t, updated.IsAdmin)
	assert.Empty(t, f.messages.atRiskCheckIn)
}

func TestRequestAlertPurgesUnlessSentinel(t *testing.T) {
	safe := true
	sentinel := &db_models.Member{SlackID: "U1"}
	sentinel.Alert = &db_models.Alert{IsSafe: nil}
	answered := &db_models.Member{SlackID: "U2"}
	answered.Alert = &db_models.Alert{IsSafe: &safe}
	blank := &db_models.Member{SlackID: "U3"}

	f := newMemberServiceFixture(&infra.Config{}, neverAtRisk(), sentinel, answered, blank)

	err := f.service.RequestAlert(context.Background())

	require.NoError(t, err)
	assert.NotContains(t, f.alerts.deletedFor, sentinel.ID)
	assert.Contains(t, f.alerts.deletedFor, answered.ID)
	assert.Contains(t, f.alerts.deletedFor, blank.ID)
}

func TestRequestAlertPurgeFailureIsIsolated(t *testing.T) {
	safe := true
	first := &db_models.Member{SlackID: "U1"}
	first.Alert = &db_models.Alert{IsSafe: &safe}
	second := &db_models.Member{SlackID: "U2"}

	f := newMemberServiceFixture(&infra.Config{RequestAlertOrganizationChannel: true}, neverAtRisk(), first, second)
	f.alerts.deleteErrFor = map[uuid.UUID]error{first.ID: assert.AnError}

	err := f.service.RequestAlert(context.Background())

	require.NoError(t, err)
	assert.Contains(t, f.alerts.deletedFor, second.ID)
	assert.Equal(t, 1, f.messages.channelAlert)
}

func TestRequestAlertSkipsExemptMembersInDirectMessages(t *testing.T) {
	regular := &db_models.Member{SlackID: "U1"}
	exempt := &db_models.Member{SlackID: "U2", IsExemptFromCheckIn: true}
	cfg := &infra.Config{
		RequestAlertOrganizationChannel: true,
		RequestAlertDirectMessage:       true,
	}
	f := newMemberServiceFixture(cfg, neverAtRisk(), regular, exempt)

	err := f.service.RequestAlert(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, f.messages.channelAlert)
	require.Len(t, f.messages.dmAlert, 1)
	require.Len(t, f.messages.dmAlert[0], 1)
	assert.Equal(t, "U1", f.messages.dmAlert[0][0].SlackID)
}

func TestRequestCheckInsRespectsChannelModes(t *testing.T) {
	regular := &db_models.Member{SlackID: "U1"}
	exempt := &db_models.Member{SlackID: "U2", IsExemptFromCheckIn: true}
	cfg := &infra.Config{
		RequestCheckInOrganizationChannel: true,
		RequestCheckInDirectMessage:       true,
	}
	f := newMemberServiceFixture(cfg, neverAtRisk(), regular, exempt)

	err := f.service.RequestCheckIns(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, f.messages.channelCheckIn)
	require.Len(t, f.messages.dmCheckIn, 1)
	require.Len(t, f.messages.dmCheckIn[0], 1)
	assert.Equal(t, "U1", f.messages.dmCheckIn[0][0].SlackID)
}

func TestRemindMembersOfLateCheckIn(t *testing.T) {
	never := &db_models.Member{SlackID: "U1"}
	recent := &db_models.Member{SlackID: "U2"}
	recent.CheckIn = &db_models.CheckIn{BaseModel: db_models.BaseModel{CreatedAt: time.Now().Unix()}}
	stale := &db_models.Member{SlackID: "U3"}
	stale.CheckIn = &db_models.CheckIn{BaseModel: db_models.BaseModel{CreatedAt: time.Now().Add(-72 * time.Hour).Unix()}}
	exempt := &db_models.Member{SlackID: "U4", IsExemptFromCheckIn: true}

	cfg := &infra.Config{RemindWindow: 24 * time.Hour}
	f := newMemberServiceFixture(cfg, neverAtRisk(), never, recent, stale, exempt)

	err := f.service.RemindMembersOfLateCheckIn(context.Background())

	require.NoError(t, err)
	require.Len(t, f.messages.reminders, 1)
	ids := make([]string, 0, len(f.messages.reminders[0]))
	for _, m := range f.messages.reminders[0] {
		ids = append(ids, m.SlackID)
	}
	assert.ElementsMatch(t, []string{"U1", "U3"}, ids)
}

func TestNotifySkipsWhenNobodyIsLate(t *testing.T) {
	recent := &db_models.Member{SlackID: "U1"}
	recent.CheckIn = &db_models.CheckIn{BaseModel: db_models.BaseModel{CreatedAt: time.Now().Unix()}}

	cfg := &infra.Config{NotifyWindow: 24 * time.Hour}
	f := newMemberServiceFixture(cfg, neverAtRisk(), recent)

	err := f.service.NotifyOfLateCheckIns(context.Background())

	require.NoError(t, err)
	assert.Empty(t, f.messages.lateOverviews)
}

package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"huddle/internal/models/db_models"
	"huddle/pkg/utils"
)

type fakeMemberService struct {
	MemberServiceInterface

	member    *db_models.Member
	lookupErr error
	issueErr  error

	issuedCheckIn int
	issuedAlert   int
	repeated      []string
	repeatErr     error
}

func (f *fakeMemberService) FindBySlackID(ctx context.Context, slackID string) (*db_models.Member, error) {
	return f.member, f.lookupErr
}

func (f *fakeMemberService) IssueCheckInToken(ctx context.Context, member *db_models.Member) (*db_models.Member, error) {
	if f.issueErr != nil {
		return nil, f.issueErr
	}
	f.issuedCheckIn++
	token := "issued-token"
	member.CheckInToken = &token
	return member, nil
}

func (f *fakeMemberService) IssueAlertToken(ctx context.Context, member *db_models.Member) (*db_models.Member, error) {
	if f.issueErr != nil {
		return nil, f.issueErr
	}
	f.issuedAlert++
	token := "issued-token"
	member.AlertToken = &token
	return member, nil
}

func (f *fakeMemberService) RepeatCheckIn(ctx context.Context, memberID string) error {
	f.repeated = append(f.repeated, memberID)
	return f.repeatErr
}

func newSlackFixture(members *fakeMemberService) (SlackRequestServiceInterface, *fakeModals) {
	modals := &fakeModals{}
	service := NewSlackRequestService(members, modals, "signing-secret", zap.NewNop())
	return service, modals
}

func sign(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "v0:%s:", timestamp)
	mac.Write(body)
	return "v0=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	service, _ := newSlackFixture(&fakeMemberService{})
	body := []byte("payload=%7B%7D")
	timestamp := fmt.Sprint(time.Now().Unix())

	valid := sign("signing-secret", timestamp, body)
	assert.NoError(t, service.VerifySignature(timestamp, valid, body))

	wrongSecret := sign("other-secret", timestamp, body)
	assert.ErrorIs(t,
		service.VerifySignature(timestamp, wrongSecret, body),
		utils.ErrInvalidSlackSignature)

	tampered := append([]byte{}, body...)
	tampered[0] = 'q'
	assert.ErrorIs(t,
		service.VerifySignature(timestamp, valid, tampered),
		utils.ErrInvalidSlackSignature)

	stale := fmt.Sprint(time.Now().Add(-10 * time.Minute).Unix())
	assert.ErrorIs(t,
		service.VerifySignature(stale, sign("signing-secret", stale, body), body),
		utils.ErrInvalidSlackSignature)

	assert.ErrorIs(t,
		service.VerifySignature("not-a-number", valid, body),
		utils.ErrInvalidSlackSignature)
}

func TestParseSlackAction(t *testing.T) {
	assert.Equal(t, ActionRenderMainMenu, ParseSlackAction("renderMainMenu"))
	assert.Equal(t, ActionClickConfirmAndRepeat, ParseSlackAction("clickConfirmAndRepeat"))
	assert.Equal(t, ActionUnknown, ParseSlackAction("somethingElse"))
	assert.Equal(t, ActionUnknown, ParseSlackAction(""))
}

func TestHandleActionUnknownMember(t *testing.T) {
	service, modals := newSlackFixture(&fakeMemberService{member: nil})

	service.HandleAction(context.Background(), ActionEvent{
		Action:  ActionRenderMainMenu,
		SlackID: "U404",
		Modal:   ModalParams{TriggerID: "trigger"},
	})

	last := modals.last()
	assert.Equal(t, "error", last.Kind)
	assert.Contains(t, last.Message, "couldn't find you")
}

func TestHandleActionLookupFailureRendersGenericError(t *testing.T) {
	service, modals := newSlackFixture(&fakeMemberService{lookupErr: utils.ErrDatabaseError})

	service.HandleAction(context.Background(), ActionEvent{
		Action:  ActionRenderMainMenu,
		SlackID: "U1",
	})

	last := modals.last()
	assert.Equal(t, "error", last.Kind)
	assert.Equal(t, genericErrorMessage, last.Message)
}

func TestHandleActionUnknownActionRendersGenericError(t *testing.T) {
	member := &db_models.Member{SlackID: "U1"}
	service, modals := newSlackFixture(&fakeMemberService{member: member})

	service.HandleAction(context.Background(), ActionEvent{
		Action:  ParseSlackAction("droppedFromTheEnum"),
		SlackID: "U1",
	})

	last := modals.last()
	assert.Equal(t, "error", last.Kind)
	assert.Equal(t, genericErrorMessage, last.Message)
}

func TestHandleActionIssuesCheckInToken(t *testing.T) {
	member := &db_models.Member{SlackID: "U1"}
	members := &fakeMemberService{member: member}
	service, modals := newSlackFixture(members)

	service.HandleAction(context.Background(), ActionEvent{
		Action:  ActionRenderCheckInSelfConfirmation,
		SlackID: "U1",
		Modal:   ModalParams{ViewID: "V1"},
	})

	assert.Equal(t, 1, members.issuedCheckIn)
	assert.Equal(t, "checkInConfirmation", modals.last().Kind)
}

func TestHandleActionIssuesAlertToken(t *testing.T) {
	member := &db_models.Member{SlackID: "U1"}
	members := &fakeMemberService{member: member}
	service, modals := newSlackFixture(members)

	service.HandleAction(context.Background(), ActionEvent{
		Action:  ActionRenderAlertConfirmation,
		SlackID: "U1",
	})

	assert.Equal(t, 1, members.issuedAlert)
	assert.Equal(t, "alertConfirmation", modals.last().Kind)
}

func TestHandleActionRepeatWithoutPreviousCheckIn(t *testing.T) {
	member := &db_models.Member{SlackID: "U1"}
	service, modals := newSlackFixture(&fakeMemberService{member: member})

	service.HandleAction(context.Background(), ActionEvent{
		Action:  ActionRenderRepeatCheckInConfirmation,
		SlackID: "U1",
	})

	last := modals.last()
	assert.Equal(t, "error", last.Kind)
	assert.Contains(t, last.Message, "nothing to repeat")
}

func TestHandleActionConfirmAndRepeat(t *testing.T) {
	member := &db_models.Member{SlackID: "U1"}
	member.CheckIn = &db_models.CheckIn{IsSafe: true}
	members := &fakeMemberService{member: member}
	service, modals := newSlackFixture(members)

	service.HandleAction(context.Background(), ActionEvent{
		Action:  ActionClickConfirmAndRepeat,
		SlackID: "U1",
	})

	require.Len(t, members.repeated, 1)
	assert.Equal(t, member.ID.String(), members.repeated[0])
	assert.Equal(t, "success", modals.last().Kind)
}

func TestHandleActionDoNothingRendersNothing(t *testing.T) {
	member := &db_models.Member{SlackID: "U1"}
	service, modals := newSlackFixture(&fakeMemberService{member: member})

	service.HandleAction(context.Background(), ActionEvent{
		Action:  ActionDoNothing,
		SlackID: "U1",
	})

	assert.Empty(t, modals.rendered)
}

func TestHandleCommand(t *testing.T) {
	member := &db_models.Member{SlackID: "U1"}
	service, modals := newSlackFixture(&fakeMemberService{member: member})

	require.NoError(t, service.HandleCommand(context.Background(), "U1", "trigger"))
	assert.Equal(t, "checkInMainMenu", modals.last().Kind)

	require.NoError(t, service.HandleAlertCommand(context.Background(), "U1", "trigger"))
	assert.Equal(t, "alertMainMenu", modals.last().Kind)
}

func TestHandleCommandUnknownMember(t *testing.T) {
	service, modals := newSlackFixture(&fakeMemberService{member: nil})

	err := service.HandleCommand(context.Background(), "U404", "trigger")

	assert.ErrorIs(t, err, utils.ErrMemberNotFound)
	assert.Empty(t, modals.rendered)
}

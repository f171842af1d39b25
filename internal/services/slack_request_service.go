package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"huddle/internal/models/db_models"
	"huddle/pkg/utils"
)

// SlackAction is the closed set of interactive action identifiers the bot
// understands. Anything else parses to ActionUnknown.
type SlackAction string

const (
	ActionRenderMainMenu                       SlackAction = "renderMainMenu"
	ActionRenderAlertMainMenu                  SlackAction = "renderAlertMainMenu"
	ActionRenderCheckInSelfConfirmation        SlackAction = "renderCheckInSelfConfirmation"
	ActionRenderCheckInOtherMemberConfirmation SlackAction = "renderCheckInOtherMemberConfirmation"
	ActionRenderRepeatCheckInConfirmation      SlackAction = "renderRepeatCheckInConfirmation"
	ActionRenderAlertConfirmation              SlackAction = "renderAlertConfirmation"
	ActionRenderSuccess                        SlackAction = "renderSuccess"
	ActionClickViewCheckIns                    SlackAction = "clickViewCheckIns"
	ActionClickViewOrganizationMap             SlackAction = "clickViewOrganizationMap"
	ActionClickConfirmAndRepeat                SlackAction = "clickConfirmAndRepeat"
	ActionDoNothing                            SlackAction = "doNothing"
	ActionUnknown                              SlackAction = ""
)

func ParseSlackAction(raw string) SlackAction {
	switch action := SlackAction(raw); action {
	case ActionRenderMainMenu,
		ActionRenderAlertMainMenu,
		ActionRenderCheckInSelfConfirmation,
		ActionRenderCheckInOtherMemberConfirmation,
		ActionRenderRepeatCheckInConfirmation,
		ActionRenderAlertConfirmation,
		ActionRenderSuccess,
		ActionClickViewCheckIns,
		ActionClickViewOrganizationMap,
		ActionClickConfirmAndRepeat,
		ActionDoNothing:
		return action
	default:
		return ActionUnknown
	}
}

// ActionEvent is a verified, decoded interaction: who clicked what, and
// where the response view should go.
type ActionEvent struct {
	Action  SlackAction
	SlackID string
	Modal   ModalParams
}

// SlackRequestServiceInterface verifies inbound webhook deliveries and
// drives the interaction state machine. HandleAction never returns an
// error: by the time it runs, the transport has already acknowledged the
// delivery, so failures surface to the user as an error view and to the
// operator as a log line.
type SlackRequestServiceInterface interface {
	VerifySignature(timestamp, signature string, body []byte) error
	HandleAction(ctx context.Context, event ActionEvent)
	HandleCommand(ctx context.Context, slackID, triggerID string) error
	HandleAlertCommand(ctx context.Context, slackID, triggerID string) error
}

// signatureFreshnessWindow bounds replay of captured deliveries.
const signatureFreshnessWindow = 5 * time.Minute

const (
	memberNotFoundMessage = "We couldn't find you in the member directory. Please contact your administrator."
	genericErrorMessage   = "Something went wrong on our end. Please try again in a little while."
)

type SlackRequestService struct {
	members       MemberServiceInterface
	modals        ModalServiceInterface
	signingSecret []byte
	logger        *zap.Logger
	now           func() time.Time
}

func NewSlackRequestService(members MemberServiceInterface, modals ModalServiceInterface, signingSecret string, logger *zap.Logger) SlackRequestServiceInterface {
	return &SlackRequestService{
		members:       members,
		modals:        modals,
		signingSecret: []byte(signingSecret),
		logger:        logger,
		now:           time.Now,
	}
}

// VerifySignature checks the v0 request signature: HMAC-SHA256 over
// "v0:{timestamp}:{body}" compared in constant time, with a freshness
// window on the timestamp.
func (s *SlackRequestService) VerifySignature(timestamp, signature string, body []byte) error {
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return utils.ErrInvalidSlackSignature
	}

	age := s.now().Sub(time.Unix(ts, 0))
	if age > signatureFreshnessWindow || age < -signatureFreshnessWindow {
		return utils.ErrInvalidSlackSignature
	}

	mac := hmac.New(sha256.New, s.signingSecret)
	fmt.Fprintf(mac, "v0:%s:", timestamp)
	mac.Write(body)
	expected := "v0=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return utils.ErrInvalidSlackSignature
	}

	return nil
}

func (s *SlackRequestService) HandleAction(ctx context.Context, event ActionEvent) {
	member, err := s.members.FindBySlackID(ctx, event.SlackID)
	if err != nil {
		s.fail(ctx, event, "member lookup failed", err)
		return
	}
	if member == nil {
		s.renderError(ctx, event.Modal, memberNotFoundMessage)
		return
	}

	switch event.Action {
	case ActionRenderMainMenu:
		err = s.modals.RenderCheckInMainMenu(ctx, event.Modal)

	case ActionRenderAlertMainMenu:
		err = s.modals.RenderAlertMainMenu(ctx, event.Modal)

	case ActionRenderCheckInSelfConfirmation, ActionRenderCheckInOtherMemberConfirmation:
		err = s.issueAndConfirmCheckIn(ctx, event.Modal, member)

	case ActionRenderAlertConfirmation:
		err = s.issueAndConfirmAlert(ctx, event.Modal, member)

	case ActionRenderRepeatCheckInConfirmation:
		if member.CheckIn == nil {
			s.renderError(ctx, event.Modal, "You have no check ins on record yet, so there is nothing to repeat. Please fill out a new check in instead.")
			return
		}
		err = s.modals.RenderRepeatCheckInConfirmation(ctx, event.Modal, member)

	case ActionClickConfirmAndRepeat:
		if err = s.members.RepeatCheckIn(ctx, member.ID.String()); err == nil {
			err = s.modals.RenderSuccess(ctx, event.Modal)
		}

	case ActionRenderSuccess:
		err = s.modals.RenderSuccess(ctx, event.Modal)

	case ActionClickViewCheckIns, ActionClickViewOrganizationMap, ActionDoNothing:
		// Link buttons and dismissals need no server-side reaction.
		return

	case ActionUnknown:
		s.renderError(ctx, event.Modal, genericErrorMessage)
		return

	default:
		s.renderError(ctx, event.Modal, genericErrorMessage)
		return
	}

	if err != nil {
		s.fail(ctx, event, "action handling failed", err)
	}
}

// HandleCommand opens the check-in main menu for a slash command. An
// unknown invoker is reported as ErrMemberNotFound so the transport can
// answer with Slack's plain-text command response instead of a modal.
func (s *SlackRequestService) HandleCommand(ctx context.Context, slackID, triggerID string) error {
	member, err := s.members.FindBySlackID(ctx, slackID)
	if err != nil {
		return err
	}
	if member == nil {
		return utils.ErrMemberNotFound
	}

	return s.modals.RenderCheckInMainMenu(ctx, ModalParams{TriggerID: triggerID})
}

func (s *SlackRequestService) HandleAlertCommand(ctx context.Context, slackID, triggerID string) error {
	member, err := s.members.FindBySlackID(ctx, slackID)
	if err != nil {
		return err
	}
	if member == nil {
		return utils.ErrMemberNotFound
	}

	return s.modals.RenderAlertMainMenu(ctx, ModalParams{TriggerID: triggerID})
}

func (s *SlackRequestService) issueAndConfirmCheckIn(ctx context.Context, params ModalParams, member *db_models.Member) error {
	updated, err := s.members.IssueCheckInToken(ctx, member)
	if err != nil {
		return err
	}
	return s.modals.RenderCheckInConfirmation(ctx, params, updated)
}

func (s *SlackRequestService) issueAndConfirmAlert(ctx context.Context, params ModalParams, member *db_models.Member) error {
	updated, err := s.members.IssueAlertToken(ctx, member)
	if err != nil {
		return err
	}
	return s.modals.RenderAlertConfirmation(ctx, params, updated)
}

func (s *SlackRequestService) fail(ctx context.Context, event ActionEvent, msg string, err error) {
	s.logger.Error(msg,
		zap.String("action", string(event.Action)),
		zap.String("slack_id", event.SlackID),
		zap.Error(err))
	s.renderError(ctx, event.Modal, genericErrorMessage)
}

func (s *SlackRequestService) renderError(ctx context.Context, params ModalParams, message string) {
	if err := s.modals.RenderError(ctx, params, message); err != nil {
		s.logger.Error("error view render failed", zap.Error(err))
	}
}

package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"huddle/internal/models/request_models"
	"huddle/internal/services"
	"huddle/pkg/utils"
)

const memberNotFoundReply = "We couldn't find you in the member directory. Please contact your administrator."

// SlackController terminates signed webhook deliveries. Every handler
// verifies the v0 signature over the raw body before touching the payload,
// acknowledges within Slack's deadline and hands the real work to a
// goroutine.
type SlackController struct {
	slackService services.SlackRequestServiceInterface
	logger       *zap.Logger
}

func NewSlackController(slackService services.SlackRequestServiceInterface, logger *zap.Logger) *SlackController {
	return &SlackController{
		slackService: slackService,
		logger:       logger,
	}
}

// HandleAction godoc
// @Summary Slack interactive action webhook
// @Description Verifies the request signature and dispatches the interaction
// @Tags Slack
// @Accept x-www-form-urlencoded
// @Success 200
// @Failure 400
// @Router /slack/action [post]
func (ctrl *SlackController) HandleAction(c *gin.Context) {
	values, ok := ctrl.verifiedForm(c)
	if !ok {
		return
	}

	payload := values.Get("payload")
	if payload == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	var action request_models.SlackActionBody
	if err := json.Unmarshal([]byte(payload), &action); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	event := services.ActionEvent{
		Action:  services.ParseSlackAction(action.ActionID()),
		SlackID: action.User.ID,
		Modal: services.ModalParams{
			TriggerID: action.TriggerID,
			ViewID:    action.ViewID(),
		},
	}

	// Acknowledge first; the interaction runs on its own context since the
	// request's is cancelled as soon as the response is written.
	c.Status(http.StatusOK)
	go ctrl.slackService.HandleAction(context.Background(), event)
}

// HandleCommand godoc
// @Summary Check-in slash command
// @Tags Slack
// @Accept x-www-form-urlencoded
// @Success 200
// @Failure 400
// @Router /slack/command [post]
func (ctrl *SlackController) HandleCommand(c *gin.Context) {
	ctrl.handleCommand(c, ctrl.slackService.HandleCommand)
}

// HandleAlertCommand godoc
// @Summary Alert slash command
// @Tags Slack
// @Accept x-www-form-urlencoded
// @Success 200
// @Failure 400
// @Router /slack/alert-command [post]
func (ctrl *SlackController) HandleAlertCommand(c *gin.Context) {
	ctrl.handleCommand(c, ctrl.slackService.HandleAlertCommand)
}

func (ctrl *SlackController) handleCommand(c *gin.Context, handle func(ctx context.Context, slackID, triggerID string) error) {
	values, ok := ctrl.verifiedForm(c)
	if !ok {
		return
	}

	slackID := values.Get("user_id")
	triggerID := values.Get("trigger_id")

	// Slash commands answer inside the HTTP response, so the not-found case
	// is a plain-text 200 rather than a modal.
	err := handle(c.Request.Context(), slackID, triggerID)
	switch {
	case err == nil:
		c.Status(http.StatusOK)
	case err == utils.ErrMemberNotFound:
		c.String(http.StatusOK, memberNotFoundReply)
	default:
		ctrl.logger.Error("slash command failed",
			zap.String("slack_id", slackID),
			zap.Error(err))
		c.String(http.StatusOK, "Something went wrong on our end. Please try again in a little while.")
	}
}

// verifiedForm reads the raw body, checks the request signature and parses
// the form encoding. A false return means the response is already written.
func (ctrl *SlackController) verifiedForm(c *gin.Context) (url.Values, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return nil, false
	}

	timestamp := c.GetHeader("X-Slack-Request-Timestamp")
	signature := c.GetHeader("X-Slack-Signature")
	if err := ctrl.slackService.VerifySignature(timestamp, signature, body); err != nil {
		ctrl.logger.Warn("rejected unsigned webhook delivery", zap.Error(err))
		c.Status(http.StatusBadRequest)
		return nil, false
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return nil, false
	}

	return values, true
}

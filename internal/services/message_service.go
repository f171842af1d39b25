package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"huddle/internal/models/db_models"
)

// MessageServiceInterface is the notification fan-out boundary. Batch sends
// isolate per-recipient failures: one unreachable recipient never aborts
// the rest of the batch.
type MessageServiceInterface interface {
	SendCheckInRequestToChannel(ctx context.Context) error
	SendAlertRequestToChannel(ctx context.Context) error
	SendCheckInRequestToMembers(ctx context.Context, members []*db_models.Member)
	SendAlertRequestToMembers(ctx context.Context, members []*db_models.Member)
	SendCheckInReminderToMembers(ctx context.Context, members []*db_models.Member)
	SendMemberAtRiskNotification(ctx context.Context, member *db_models.Member) error
	SendMemberAtRiskNotificationForAlert(ctx context.Context, member *db_models.Member) error
	SendNotificationOfMembersWithLateCheckIn(ctx context.Context, members []*db_models.Member) error
}

type MessageService struct {
	gateway             SlackGateway
	organizationChannel string
	monitoringChannel   string
	host                string
	concurrency         int
	logger              *zap.Logger
}

type MessageServiceParams struct {
	Gateway             SlackGateway
	OrganizationChannel string
	MonitoringChannel   string
	Host                string
	Concurrency         int
	Logger              *zap.Logger
}

func NewMessageService(params MessageServiceParams) MessageServiceInterface {
	return &MessageService{
		gateway:             params.Gateway,
		organizationChannel: params.OrganizationChannel,
		monitoringChannel:   params.MonitoringChannel,
		host:                params.Host,
		concurrency:         params.Concurrency,
		logger:              params.Logger,
	}
}

func (s *MessageService) SendCheckInRequestToChannel(ctx context.Context) error {
	text, blocks := s.checkInRequestMessage(nil)
	return s.gateway.PostMessage(ctx, s.organizationChannel, text, blocks)
}

func (s *MessageService) SendAlertRequestToChannel(ctx context.Context) error {
	text, blocks := s.alertRequestMessage(nil)
	return s.gateway.PostMessage(ctx, s.organizationChannel, text, blocks)
}

func (s *MessageService) SendCheckInRequestToMembers(ctx context.Context, members []*db_models.Member) {
	s.fanout(ctx, members, "check-in request", func(ctx context.Context, member *db_models.Member) error {
		text, blocks := s.checkInRequestMessage(member)
		return s.gateway.PostMessage(ctx, member.SlackID, text, blocks)
	})
}

func (s *MessageService) SendAlertRequestToMembers(ctx context.Context, members []*db_models.Member) {
	s.fanout(ctx, members, "alert request", func(ctx context.Context, member *db_models.Member) error {
		text, blocks := s.alertRequestMessage(member)
		return s.gateway.PostMessage(ctx, member.SlackID, text, blocks)
	})
}

func (s *MessageService) SendCheckInReminderToMembers(ctx context.Context, members []*db_models.Member) {
	s.fanout(ctx, members, "check-in reminder", func(ctx context.Context, member *db_models.Member) error {
		blocks := []map[string]any{
			sectionBlock(fmt.Sprintf("Hi, <@%s>, we noticed you haven't checked in with us in the past couple of days. We hope you're safe. If you are, please let us know by checking in.", member.SlackID)),
		}
		blocks = append(blocks, checkInActionBlocks()...)

		return s.gateway.PostMessage(ctx, member.SlackID, "A kind reminder – please check in with us.", blocks)
	})
}

func (s *MessageService) SendMemberAtRiskNotification(ctx context.Context, member *db_models.Member) error {
	blocks := []map[string]any{
		sectionBlock(":warning: A member of your organization may be at risk."),
		dividerBlock(),
	}
	blocks = append(blocks, checkInOverviewBlocks(member)...)

	return s.gateway.PostMessage(ctx, s.monitoringChannel, ":warning:  A member of your organization may be at risk.", blocks)
}

func (s *MessageService) SendMemberAtRiskNotificationForAlert(ctx context.Context, member *db_models.Member) error {
	blocks := []map[string]any{
		sectionBlock(":warning: A member of your organization may be at risk."),
		dividerBlock(),
	}
	blocks = append(blocks, alertOverviewBlocks(member)...)

	return s.gateway.PostMessage(ctx, s.monitoringChannel, ":warning:  A member of your organization may be at risk.", blocks)
}

func (s *MessageService) SendNotificationOfMembersWithLateCheckIn(ctx context.Context, members []*db_models.Member) error {
	blocks := []map[string]any{
		sectionBlock("Hi, here is an overview of your organization's members who have not checked in a while."),
		dividerBlock(),
	}

	// Small batches render per-member detail; larger ones collapse to a
	// count so the message stays within Slack's block limit.
	if len(members) <= 10 {
		for _, member := range members {
			blocks = append(blocks, checkInOverviewBlocks(member)...)
			blocks = append(blocks, sectionBlock(lastCheckInDisplay(member)), dividerBlock())
		}
	} else {
		blocks = append(blocks,
			dividerBlock(),
			sectionBlock(fmt.Sprintf("At the moment, there are *%d members* who have overdue check ins.", len(members))),
		)
	}

	blocks = append(blocks, sectionBlock(fmt.Sprintf("Visit the dashboard to review them all: %s/members", s.host)))

	return s.gateway.PostMessage(ctx, s.monitoringChannel, "A quick overview of members not checked in in a while.", blocks)
}

// fanout sends one message per member with bounded concurrency. Failures
// are logged and swallowed so the batch always completes.
func (s *MessageService) fanout(ctx context.Context, members []*db_models.Member, kind string, send func(context.Context, *db_models.Member) error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, member := range members {
		member := member
		g.Go(func() error {
			if err := send(ctx, member); err != nil {
				s.logger.Error("message send failed",
					zap.String("kind", kind),
					zap.String("slack_id", member.SlackID),
					zap.Error(err))
			}
			return nil
		})
	}

	_ = g.Wait()
}

func (s *MessageService) checkInRequestMessage(member *db_models.Member) (string, []map[string]any) {
	greeting := "everyone"
	if member != nil {
		greeting = fmt.Sprintf("<@%s>", member.SlackID)
	}

	blocks := []map[string]any{
		sectionBlock(fmt.Sprintf("Hi there, %s. We hope that you and your loved ones are as safe as possible.", greeting)),
		sectionBlock("Please check in with us – this is super important for us to be able to provide assistance and make critical decisions for our organization."),
	}
	blocks = append(blocks, checkInActionBlocks()...)

	return "Please check in with us.", blocks
}

func (s *MessageService) alertRequestMessage(member *db_models.Member) (string, []map[string]any) {
	greeting := "everyone"
	if member != nil {
		greeting = fmt.Sprintf("<@%s>", member.SlackID)
	}

	blocks := []map[string]any{
		sectionBlock(fmt.Sprintf("Hi there, %s. We hope that you and your loved ones are as safe as possible.", greeting)),
		sectionBlock("Please check in with us – this is super important for us to be able to provide assistance and make critical decisions for our organization."),
		dividerBlock(),
		actionsBlock(buttonElement("Check In", string(ActionRenderAlertConfirmation))),
	}

	return "Please check in with us.", blocks
}

func checkInActionBlocks() []map[string]any {
	return []map[string]any{
		dividerBlock(),
		actionsBlock(
			buttonElement("Check In", string(ActionRenderCheckInSelfConfirmation)),
			buttonElement("Repeat Last Check In", string(ActionRenderRepeatCheckInConfirmation)),
		),
	}
}

func checkInOverviewBlocks(member *db_models.Member) []map[string]any {
	isSafe := "Unknown"
	canWork := "Unknown"
	support := "Unknown"
	electricity := "Unknown"
	comment := "N/A"
	if member.CheckIn != nil {
		isSafe = yesNo(member.CheckIn.IsSafe)
		canWork = yesNo(member.CheckIn.IsAbleToWork)
		support = supportDisplay(member.CheckIn.Support)
		electricity = electricityDisplay(member.CheckIn.ElectricityCondition)
		if member.CheckIn.Comment != nil && *member.CheckIn.Comment != "" {
			comment = *member.CheckIn.Comment
		}
	}

	return []map[string]any{
		sectionBlock(fmt.Sprintf("*Member:* %s (<@%s>)", member.Name, member.SlackID)),
		fieldsBlock(
			fmt.Sprintf("*Location:* %s", locationDisplay(member)),
			fmt.Sprintf("*Is Safe:* %s", isSafe),
			fmt.Sprintf("*Can Work:* %s", canWork),
			fmt.Sprintf("*Support:* %s", support),
			fmt.Sprintf("*Electricity condition:* %s", electricity),
		),
		sectionBlock(fmt.Sprintf("*Comment:* %s", comment)),
	}
}

func alertOverviewBlocks(member *db_models.Member) []map[string]any {
	isSafe := "Unknown"
	comment := "N/A"
	if member.Alert != nil {
		if member.Alert.IsSafe != nil {
			isSafe = yesNo(*member.Alert.IsSafe)
		}
		if member.Alert.Comment != nil && *member.Alert.Comment != "" {
			comment = *member.Alert.Comment
		}
	}

	pmEmail := "N/A"
	if member.ProjectManagerEmail != "" {
		pmEmail = member.ProjectManagerEmail
	}

	return []map[string]any{
		sectionBlock(fmt.Sprintf("*Member:* %s (<@%s>)", member.Name, member.SlackID)),
		fieldsBlock(
			fmt.Sprintf("*Location:* %s", locationDisplay(member)),
			fmt.Sprintf("*Are you OK now:* %s", isSafe),
			fmt.Sprintf("*PM e-mail:* %s", pmEmail),
		),
		sectionBlock(fmt.Sprintf("*Comment:* %s", comment)),
	}
}

func lastCheckInDisplay(member *db_models.Member) string {
	at := member.LastCheckInAt()
	if at == nil {
		return "Never"
	}
	return at.Format("January 2, 2006")
}

func locationDisplay(member *db_models.Member) string {
	if member.CheckIn == nil {
		return "Unknown"
	}

	parts := make([]string, 0, 2)
	if member.CheckIn.City != nil {
		parts = append(parts, *member.CheckIn.City)
	}
	if member.CheckIn.Country != nil {
		parts = append(parts, *member.CheckIn.Country)
	}
	if len(parts) == 0 {
		return "Unknown"
	}

	out := parts[0]
	for _, p := range parts[1:] {
		out += ", " + p
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func supportDisplay(support string) string {
	switch support {
	case "1":
		return "I don't need any help"
	case "2":
		return "Help only with a request for accommodation at the time of temporary relocation"
	case "3":
		return "Organize temporary relocation (2-4 days), including transportation"
	case "4":
		return "Other (provide comment)"
	default:
		return "Unknown"
	}
}

func electricityDisplay(condition string) string {
	switch condition {
	case "1":
		return "I can work 40 hours a week from home"
	case "2":
		return "I can work 40 hours a week in a combined home & office regime"
	case "3":
		return "It is not possible to work 40 hours and visit the office - the reason in the comment"
	default:
		return "Unknown"
	}
}

// Block payload helpers. Blocks are carried as opaque maps; the markup DSL
// itself is out of scope.

func sectionBlock(text string) map[string]any {
	return map[string]any{
		"type": "section",
		"text": map[string]any{"type": "mrkdwn", "text": text},
	}
}

func fieldsBlock(fields ...string) map[string]any {
	rendered := make([]map[string]any, 0, len(fields))
	for _, f := range fields {
		rendered = append(rendered, map[string]any{"type": "mrkdwn", "text": f})
	}
	return map[string]any{
		"type":   "section",
		"fields": rendered,
	}
}

func dividerBlock() map[string]any {
	return map[string]any{"type": "divider"}
}

func actionsBlock(elements ...map[string]any) map[string]any {
	return map[string]any{
		"type":     "actions",
		"elements": elements,
	}
}

func buttonElement(text, actionID string) map[string]any {
	return map[string]any{
		"type":      "button",
		"action_id": actionID,
		"text":      map[string]any{"type": "plain_text", "text": text},
	}
}

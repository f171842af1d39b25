package services

import (
	"context"
	"fmt"

	"huddle/internal/models/db_models"
)

// ModalParams identifies where a view should be rendered. A fresh
// interaction carries a TriggerID and opens a new modal; a click inside an
// existing modal carries a ViewID and updates it in place.
type ModalParams struct {
	TriggerID string
	ViewID    string
}

type ModalServiceInterface interface {
	RenderCheckInMainMenu(ctx context.Context, params ModalParams) error
	RenderAlertMainMenu(ctx context.Context, params ModalParams) error
	RenderCheckInConfirmation(ctx context.Context, params ModalParams, member *db_models.Member) error
	RenderAlertConfirmation(ctx context.Context, params ModalParams, member *db_models.Member) error
	RenderRepeatCheckInConfirmation(ctx context.Context, params ModalParams, member *db_models.Member) error
	RenderSuccess(ctx context.Context, params ModalParams) error
	RenderError(ctx context.Context, params ModalParams, message string) error
}

type ModalService struct {
	gateway SlackGateway
	host    string
}

func NewModalService(gateway SlackGateway, host string) ModalServiceInterface {
	return &ModalService{
		gateway: gateway,
		host:    host,
	}
}

func (s *ModalService) RenderCheckInMainMenu(ctx context.Context, params ModalParams) error {
	view := modalView("Check In", []map[string]any{
		sectionBlock("Hi there! What would you like to do?"),
		dividerBlock(),
		actionsBlock(
			buttonElement("Check In", string(ActionRenderCheckInSelfConfirmation)),
			buttonElement("Repeat My Last Check In", string(ActionRenderRepeatCheckInConfirmation)),
			buttonElement("View Check Ins", string(ActionClickViewCheckIns)),
			buttonElement("View Organization Map", string(ActionClickViewOrganizationMap)),
		),
	})

	return s.render(ctx, params, view)
}

func (s *ModalService) RenderAlertMainMenu(ctx context.Context, params ModalParams) error {
	view := modalView("Check In", []map[string]any{
		sectionBlock("Hi there! What would you like to do?"),
		dividerBlock(),
		actionsBlock(
			buttonElement("Check In", string(ActionRenderAlertConfirmation)),
		),
	})

	return s.render(ctx, params, view)
}

func (s *ModalService) RenderCheckInConfirmation(ctx context.Context, params ModalParams, member *db_models.Member) error {
	if member.CheckInToken == nil {
		return s.RenderError(ctx, params, "Something went wrong while preparing your check-in link. Please try again.")
	}

	link := fmt.Sprintf("%s/check-in?memberId=%s&token=%s", s.host, member.ID, *member.CheckInToken)
	view := modalView("Check In", []map[string]any{
		sectionBlock("Great! Follow the link below to fill out the check-in form."),
		sectionBlock(fmt.Sprintf("<%s|Open the check-in form>", link)),
		sectionBlock("The link is valid for a single check-in. If you need to check in again later, request a new one."),
	})

	return s.render(ctx, params, view)
}

func (s *ModalService) RenderAlertConfirmation(ctx context.Context, params ModalParams, member *db_models.Member) error {
	if member.AlertToken == nil {
		return s.RenderError(ctx, params, "Something went wrong while preparing your check-in link. Please try again.")
	}

	link := fmt.Sprintf("%s/alert?memberId=%s&token=%s", s.host, member.ID, *member.AlertToken)
	view := modalView("Check In", []map[string]any{
		sectionBlock("Great! Follow the link below to let us know how you're doing."),
		sectionBlock(fmt.Sprintf("<%s|Open the form>", link)),
		sectionBlock("The link is valid for a single submission. If you need to check in again later, request a new one."),
	})

	return s.render(ctx, params, view)
}

func (s *ModalService) RenderRepeatCheckInConfirmation(ctx context.Context, params ModalParams, member *db_models.Member) error {
	blocks := []map[string]any{
		sectionBlock("You're about to repeat your last check in. Here is what we have on record:"),
		dividerBlock(),
	}
	blocks = append(blocks, checkInOverviewBlocks(member)...)
	blocks = append(blocks,
		dividerBlock(),
		sectionBlock("A new check in with the same answers will be recorded with today's date."),
		actionsBlock(buttonElement("Confirm And Repeat", string(ActionClickConfirmAndRepeat))),
	)

	return s.render(ctx, params, modalView("Check In", blocks))
}

func (s *ModalService) RenderSuccess(ctx context.Context, params ModalParams) error {
	view := modalView("Check In", []map[string]any{
		sectionBlock(":tada: All done! Thank you for checking in with us."),
	})

	return s.render(ctx, params, view)
}

func (s *ModalService) RenderError(ctx context.Context, params ModalParams, message string) error {
	view := modalView("Check In", []map[string]any{
		sectionBlock(fmt.Sprintf(":cry: %s", message)),
	})

	return s.render(ctx, params, view)
}

func (s *ModalService) render(ctx context.Context, params ModalParams, view map[string]any) error {
	if params.ViewID != "" {
		return s.gateway.UpdateView(ctx, params.ViewID, view)
	}
	return s.gateway.OpenView(ctx, params.TriggerID, view)
}

func modalView(title string, blocks []map[string]any) map[string]any {
	return map[string]any{
		"type":   "modal",
		"title":  map[string]any{"type": "plain_text", "text": title},
		"close":  map[string]any{"type": "plain_text", "text": "Close"},
		"blocks": blocks,
	}
}

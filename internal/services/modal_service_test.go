package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huddle/internal/models/db_models"
)

func TestRenderCheckInConfirmationCarriesOneTimeLink(t *testing.T) {
	gateway := &fakeGateway{}
	modals := NewModalService(gateway, "https://example.com")

	token := "one-time-token"
	member := &db_models.Member{SlackID: "U1", CheckInToken: &token}
	member.ID = uuid.New()

	err := modals.RenderCheckInConfirmation(context.Background(), ModalParams{TriggerID: "trigger"}, member)

	require.NoError(t, err)
	require.Len(t, gateway.opened, 1)
	rendered := fmt.Sprint(gateway.opened[0])
	assert.Contains(t, rendered, fmt.Sprintf("https://example.com/check-in?memberId=%s&token=one-time-token", member.ID))
}

func TestRenderRoutesToUpdateForExistingView(t *testing.T) {
	gateway := &fakeGateway{}
	modals := NewModalService(gateway, "https://example.com")

	require.NoError(t, modals.RenderSuccess(context.Background(), ModalParams{ViewID: "V1"}))
	assert.Empty(t, gateway.opened)
	assert.Len(t, gateway.updated, 1)

	require.NoError(t, modals.RenderSuccess(context.Background(), ModalParams{TriggerID: "trigger"}))
	assert.Len(t, gateway.opened, 1)
}

func TestRenderAlertConfirmationWithoutTokenFallsBackToError(t *testing.T) {
	gateway := &fakeGateway{}
	modals := NewModalService(gateway, "https://example.com")

	member := &db_models.Member{SlackID: "U1"}
	err := modals.RenderAlertConfirmation(context.Background(), ModalParams{TriggerID: "trigger"}, member)

	require.NoError(t, err)
	require.Len(t, gateway.opened, 1)
	assert.Contains(t, fmt.Sprint(gateway.opened[0]), "Something went wrong")
}

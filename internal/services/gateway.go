package services

import (
	"context"

	"huddle/pkg/slackapi"
)

// SlackGateway is the outbound messaging boundary. *slackapi.Client
// satisfies it; tests substitute fakes.
type SlackGateway interface {
	PostMessage(ctx context.Context, channel, text string, blocks []map[string]any) error
	OpenView(ctx context.Context, triggerID string, view map[string]any) error
	UpdateView(ctx context.Context, viewID string, view map[string]any) error
	ListUsers(ctx context.Context) ([]slackapi.User, error)
}

var _ SlackGateway = (*slackapi.Client)(nil)

// Package slackapi is a thin gateway over the Slack Web API. It carries
// opaque block payloads and does not model the block markup itself.
package slackapi

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://slack.com/api"

type Client struct {
	http *resty.Client
}

func New(botToken string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(defaultBaseURL).
			SetAuthToken(botToken).
			SetTimeout(10 * time.Second),
	}
}

// NewWithBaseURL exists for tests against a local stub server.
func NewWithBaseURL(botToken, baseURL string) *Client {
	c := New(botToken)
	c.http.SetBaseURL(baseURL)
	return c
}

// User is the directory view of a workspace member returned by users.list.
type User struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
	IsBot   bool   `json:"is_bot"`

	IsRestricted      bool `json:"is_restricted"`
	IsUltraRestricted bool `json:"is_ultra_restricted"`

	Profile struct {
		RealName string `json:"real_name"`
		Email    string `json:"email"`
	} `json:"profile"`
}

type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type usersListResponse struct {
	apiResponse
	Members          []User `json:"members"`
	ResponseMetadata struct {
		NextCursor string `json:"next_cursor"`
	} `json:"response_metadata"`
}

func (c *Client) PostMessage(ctx context.Context, channel, text string, blocks []map[string]any) error {
	body := map[string]any{
		"channel": channel,
		"text":    text,
	}
	if len(blocks) > 0 {
		body["blocks"] = blocks
	}

	return c.call(ctx, "chat.postMessage", body)
}

func (c *Client) OpenView(ctx context.Context, triggerID string, view map[string]any) error {
	return c.call(ctx, "views.open", map[string]any{
		"trigger_id": triggerID,
		"view":       view,
	})
}

func (c *Client) UpdateView(ctx context.Context, viewID string, view map[string]any) error {
	return c.call(ctx, "views.update", map[string]any{
		"view_id": viewID,
		"view":    view,
	})
}

// ListUsers pages through users.list and returns the full workspace roster.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	cursor := ""

	for {
		var out usersListResponse
		req := c.http.R().
			SetContext(ctx).
			SetQueryParam("limit", "200").
			SetResult(&out)
		if cursor != "" {
			req.SetQueryParam("cursor", cursor)
		}

		resp, err := req.Get("/users.list")
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("slack users.list: http %d", resp.StatusCode())
		}
		if !out.OK {
			return nil, fmt.Errorf("slack users.list: %s", out.Error)
		}

		users = append(users, out.Members...)

		cursor = out.ResponseMetadata.NextCursor
		if cursor == "" {
			return users, nil
		}
	}
}

func (c *Client) call(ctx context.Context, method string, body map[string]any) error {
	var out apiResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json; charset=utf-8").
		SetBody(body).
		SetResult(&out).
		Post("/" + method)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("slack %s: http %d", method, resp.StatusCode())
	}
	if !out.OK {
		return fmt.Errorf("slack %s: %s", method, out.Error)
	}

	return nil
}

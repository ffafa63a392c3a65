package webex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the public Webex REST endpoint.
const DefaultBaseURL = "https://webexapis.com/v1"

// APIError is a non-2xx response from the platform, decoded from the standard
// Webex error body where possible.
type APIError struct {
	StatusCode int
	Message    string
	TrackingID string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("webex api status %d", e.StatusCode)
	}
	return fmt.Sprintf("webex api status %d: %s", e.StatusCode, e.Message)
}

// Client is a minimal bearer-token client for the handful of Webex resources
// the bot touches. All calls are synchronous and single-attempt.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

func NewClient(token, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		token:   token,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 20 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(res.Body) //nolint:errcheck

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: res.StatusCode}
		var errBody struct {
			Message    string `json:"message"`
			TrackingID string `json:"trackingId"`
		}
		if json.Unmarshal(raw, &errBody) == nil {
			apiErr.Message = errBody.Message
			apiErr.TrackingID = errBody.TrackingID
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// Me fetches the authenticated account's own profile.
func (c *Client) Me(ctx context.Context) (*Person, error) {
	var p Person
	if err := c.do(ctx, http.MethodGet, "/people/me", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Person fetches a person by id.
func (c *Client) Person(ctx context.Context, id string) (*Person, error) {
	var p Person
	if err := c.do(ctx, http.MethodGet, "/people/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListRooms lists the rooms the bot is a member of, in platform order.
func (c *Client) ListRooms(ctx context.Context) ([]Room, error) {
	var page struct {
		Items []Room `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/rooms", nil, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

// ListWebhooks lists the webhook registrations owned by this bot.
func (c *Client) ListWebhooks(ctx context.Context) ([]Webhook, error) {
	var page struct {
		Items []Webhook `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/webhooks", nil, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (c *Client) CreateWebhook(ctx context.Context, req CreateWebhookRequest) (*Webhook, error) {
	var wh Webhook
	if err := c.do(ctx, http.MethodPost, "/webhooks", req, &wh); err != nil {
		return nil, err
	}
	return &wh, nil
}

func (c *Client) DeleteWebhook(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/webhooks/"+url.PathEscape(id), nil, nil)
}

// AttachmentAction fetches the full card interaction referenced by a
// notification's data.id.
func (c *Client) AttachmentAction(ctx context.Context, id string) (*AttachmentAction, error) {
	var a AttachmentAction
	if err := c.do(ctx, http.MethodGet, "/attachment/actions/"+url.PathEscape(id), nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) CreateMessage(ctx context.Context, req CreateMessageRequest) (*Message, error) {
	var m Message
	if err := c.do(ctx, http.MethodPost, "/messages", req, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

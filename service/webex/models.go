package webex

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Room types as reported by the rooms listing.
const (
	RoomTypeDirect = "direct"
	RoomTypeGroup  = "group"
)

// Webhook resource/event pairs the bot works with.
const (
	ResourceAttachmentActions = "attachmentActions"
	ResourceMessages          = "messages"
	EventCreated              = "created"
)

// ActionTypeSubmit is the only attachment action type that triggers a reply.
const ActionTypeSubmit = "submit"

type Person struct {
	ID          string   `json:"id"`
	Emails      []string `json:"emails"`
	DisplayName string   `json:"displayName"`
	NickName    string   `json:"nickName,omitempty"`
	Avatar      string   `json:"avatar,omitempty"`
}

// Email returns the primary address, or "" when none is known.
func (p *Person) Email() string {
	if p == nil || len(p.Emails) == 0 {
		return ""
	}
	return p.Emails[0]
}

type Room struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
	Type  string `json:"type"`
}

type Webhook struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TargetURL string `json:"targetUrl"`
	Resource  string `json:"resource"`
	Event     string `json:"event"`
	Secret    string `json:"secret,omitempty"`
	Status    string `json:"status,omitempty"`
	AppID     string `json:"appId,omitempty"`
	CreatedBy string `json:"createdBy,omitempty"`
}

type CreateWebhookRequest struct {
	Name      string `json:"name"`
	TargetURL string `json:"targetUrl"`
	Resource  string `json:"resource"`
	Event     string `json:"event"`
	Secret    string `json:"secret,omitempty"`
}

// AttachmentAction is a user interaction performed on a card, fetched in full
// by id after a webhook notification references it.
type AttachmentAction struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	MessageID string            `json:"messageId,omitempty"`
	Inputs    map[string]string `json:"inputs,omitempty"`
	PersonID  string            `json:"personId"`
	RoomID    string            `json:"roomId"`
}

type Attachment struct {
	ContentType string          `json:"contentType"`
	Content     json.RawMessage `json:"content"`
}

type CreateMessageRequest struct {
	RoomID      string       `json:"roomId"`
	Text        string       `json:"text,omitempty"`
	Markdown    string       `json:"markdown,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

type Message struct {
	ID       string `json:"id"`
	RoomID   string `json:"roomId"`
	Text     string `json:"text,omitempty"`
	Markdown string `json:"markdown,omitempty"`
}

// Notification is the envelope the platform POSTs to the webhook target URL.
type Notification struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Resource string           `json:"resource"`
	Event    string           `json:"event"`
	ActorID  string           `json:"actorId,omitempty"`
	Data     NotificationData `json:"data"`
}

// NotificationData carries the resource-specific part of a notification. Only
// the fields shared by the resources the bot handles are modelled; the full
// resource is always re-fetched by ID.
type NotificationData struct {
	ID          string `json:"id"`
	RoomID      string `json:"roomId,omitempty"`
	PersonID    string `json:"personId,omitempty"`
	PersonEmail string `json:"personEmail,omitempty"`
}

// ErrMalformedPayload marks webhook bodies that could not be decoded into a
// usable Notification. Callers log and drop these rather than failing the
// HTTP request.
var ErrMalformedPayload = errors.New("malformed webhook payload")

// ParseNotification decodes and validates an inbound webhook body. The
// required fields are resource, event and data.id; anything else is optional.
func ParseNotification(body []byte) (*Notification, error) {
	var n Notification
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if n.Resource == "" {
		return nil, fmt.Errorf("%w: missing resource", ErrMalformedPayload)
	}
	if n.Event == "" {
		return nil, fmt.Errorf("%w: missing event", ErrMalformedPayload)
	}
	if n.Data.ID == "" {
		return nil, fmt.Errorf("%w: missing data.id", ErrMalformedPayload)
	}
	return &n, nil
}

package bot

import (
	"context"
	"log/slog"

	"cardbot/service/webex"
)

// HandlerFunc processes one webhook notification for a registered
// resource/event pair.
type HandlerFunc func(ctx context.Context, n *webex.Notification)

type route struct {
	resource string
	event    string
}

// Dispatcher routes inbound webhook notifications to handlers by resource
// and event. Unregistered combinations are no-ops so new resources (e.g.
// messages/created) can be added without touching existing routes.
type Dispatcher struct {
	identity *Identity
	logger   *slog.Logger
	handlers map[route]HandlerFunc
}

func NewDispatcher(client *webex.Client, identity *Identity, interactions *Interactions, logger *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		identity: identity,
		logger:   logger,
		handlers: make(map[route]HandlerFunc),
	}

	d.Register(webex.ResourceAttachmentActions, webex.EventCreated, func(ctx context.Context, n *webex.Notification) {
		action, err := client.AttachmentAction(ctx, n.Data.ID)
		if err != nil {
			logger.Error("Failed to fetch attachment action", "id", n.Data.ID, "error", err)
			return
		}
		interactions.HandleAction(ctx, action)
	})

	return d
}

func (d *Dispatcher) Register(resource, event string, fn HandlerFunc) {
	d.handlers[route{resource: resource, event: event}] = fn
}

// Dispatch routes a single decoded notification. Self-authored notifications
// are still routed, they are only excluded from the echo log.
func (d *Dispatcher) Dispatch(ctx context.Context, n *webex.Notification) {
	if n.Data.PersonEmail == "" || n.Data.PersonEmail != d.identity.Email() {
		d.logger.Debug("Webhook notification received",
			"resource", n.Resource,
			"event", n.Event,
			"id", n.Data.ID,
			"personEmail", n.Data.PersonEmail)
	}

	fn, ok := d.handlers[route{resource: n.Resource, event: n.Event}]
	if !ok {
		return
	}
	fn(ctx, n)
}

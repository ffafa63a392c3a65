package bot

import (
	"context"
	"fmt"
	"log/slog"

	"cardbot/service/webex"
)

// Interactions reacts to card submissions by posting a plain-text reply into
// the originating room. Fire-and-forget: lookup or send failures are logged,
// never retried.
type Interactions struct {
	client *webex.Client
	logger *slog.Logger
}

func NewInteractions(client *webex.Client, logger *slog.Logger) *Interactions {
	return &Interactions{client: client, logger: logger}
}

func (h *Interactions) HandleAction(ctx context.Context, action *webex.AttachmentAction) {
	if action.Type != webex.ActionTypeSubmit {
		h.logger.Debug("Ignoring attachment action", "type", action.Type, "id", action.ID)
		return
	}

	button := action.Inputs["button"]
	if button == "" {
		button = "?"
	}

	name := "Someone"
	person, err := h.client.Person(ctx, action.PersonID)
	if err != nil {
		h.logger.Error("Failed to look up submitter", "personId", action.PersonID, "error", err)
	} else {
		name = person.DisplayName
	}

	reply := fmt.Sprintf("%s clicked on Button %s", name, button)
	if _, err := h.client.CreateMessage(ctx, webex.CreateMessageRequest{
		RoomID: action.RoomID,
		Text:   reply,
	}); err != nil {
		h.logger.Error("Failed to post reply", "roomId", action.RoomID, "error", err)
		return
	}

	h.logger.Debug("Posted button reply", "roomId", action.RoomID, "button", button)
}

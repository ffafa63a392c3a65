package bot

import (
	"context"
	"log/slog"

	"cardbot/service/cards"
	"cardbot/service/webex"
)

// BroadcastResult aggregates a card broadcast across all eligible rooms.
type BroadcastResult struct {
	Rooms     int `json:"rooms"`
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
}

// Broadcaster sends one card into every eligible room. Each send gets a
// fresh attachment envelope; per-room failures are logged and counted, not
// propagated.
type Broadcaster struct {
	client *webex.Client
	rooms  *Selector
	logger *slog.Logger
}

func NewBroadcaster(client *webex.Client, rooms *Selector, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{client: client, rooms: rooms, logger: logger}
}

func (b *Broadcaster) Broadcast(ctx context.Context, markdown string, card cards.Card) (BroadcastResult, error) {
	ids, err := b.rooms.EligibleRooms(ctx)
	if err != nil {
		return BroadcastResult{}, err
	}

	result := BroadcastResult{Rooms: len(ids)}
	for _, roomID := range ids {
		_, err := b.client.CreateMessage(ctx, webex.CreateMessageRequest{
			RoomID:      roomID,
			Markdown:    markdown,
			Attachments: []webex.Attachment{cards.Wrap(card)},
		})
		if err != nil {
			b.logger.Error("Failed to send card", "roomId", roomID, "error", err)
			result.Failed++
			continue
		}
		result.Delivered++
	}

	b.logger.Info("Card broadcast finished",
		"rooms", result.Rooms, "delivered", result.Delivered, "failed", result.Failed)
	return result, nil
}

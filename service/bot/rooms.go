package bot

import (
	"context"
	"log/slog"

	"cardbot/service/webex"
)

// DefaultRoomTypes is the broadcast filter used when callers pass none.
var DefaultRoomTypes = []string{webex.RoomTypeDirect, webex.RoomTypeGroup}

// Selector yields the rooms eligible for a broadcast. Membership is
// re-fetched on every call since it can change between requests; listing
// order is whatever the platform returns.
type Selector struct {
	client *webex.Client
	logger *slog.Logger
}

func NewSelector(client *webex.Client, logger *slog.Logger) *Selector {
	return &Selector{client: client, logger: logger}
}

func (s *Selector) EligibleRooms(ctx context.Context, types ...string) ([]string, error) {
	if len(types) == 0 {
		types = DefaultRoomTypes
	}
	wanted := make(map[string]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}

	rooms, err := s.client.ListRooms(ctx)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, room := range rooms {
		if wanted[room.Type] {
			ids = append(ids, room.ID)
		}
	}

	s.logger.Debug("Selected broadcast rooms", "eligible", len(ids), "total", len(rooms))
	return ids, nil
}

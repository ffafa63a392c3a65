package bot

import (
	"context"
	"testing"

	"cardbot/service/cards"
	"cardbot/service/webex"
)

func newTestBroadcaster(f *fakePlatform) *Broadcaster {
	client := f.client()
	return NewBroadcaster(client, NewSelector(client, discardLogger()), discardLogger())
}

func TestBroadcastHitsEveryEligibleRoom(t *testing.T) {
	f := newFakePlatform(t)
	f.rooms = []webex.Room{
		{ID: "r1", Type: "group"},
		{ID: "r2", Type: "direct"},
		{ID: "r3", Type: "unknown"},
	}
	b := newTestBroadcaster(f)

	result, err := b.Broadcast(context.Background(), "card", cards.Hello)
	if err != nil {
		t.Fatalf("Broadcast: %v", err)
	}
	if result.Rooms != 2 || result.Delivered != 2 || result.Failed != 0 {
		t.Fatalf("result = %+v, want 2 rooms delivered", result)
	}

	msgs := f.sentMessages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	targets := map[string]bool{}
	for _, m := range msgs {
		targets[m.RoomID] = true
		if len(m.Attachments) != 1 {
			t.Fatalf("message to %s has %d attachments", m.RoomID, len(m.Attachments))
		}
		if m.Attachments[0].ContentType != cards.ContentType {
			t.Errorf("contentType = %q", m.Attachments[0].ContentType)
		}
	}
	if !targets["r1"] || !targets["r2"] || targets["r3"] {
		t.Fatalf("messages went to %v, want exactly r1 and r2", targets)
	}
}

func TestBroadcastWithNoEligibleRooms(t *testing.T) {
	f := newFakePlatform(t)
	f.rooms = []webex.Room{{ID: "r1", Type: "unknown"}}
	b := newTestBroadcaster(f)

	result, err := b.Broadcast(context.Background(), "card", cards.Hello)
	if err != nil {
		t.Fatalf("Broadcast: %v", err)
	}
	if result.Rooms != 0 || result.Delivered != 0 || result.Failed != 0 {
		t.Fatalf("result = %+v, want all zero", result)
	}
	if msgs := f.sentMessages(); len(msgs) != 0 {
		t.Fatalf("expected no messages, got %d", len(msgs))
	}
}

func TestBroadcastCountsFailures(t *testing.T) {
	f := newFakePlatform(t)
	f.rooms = []webex.Room{{ID: "r1", Type: "group"}, {ID: "r2", Type: "group"}}
	f.failMessages = true
	b := newTestBroadcaster(f)

	result, err := b.Broadcast(context.Background(), "alert", cards.Alert)
	if err != nil {
		t.Fatalf("Broadcast: %v", err)
	}
	if result.Rooms != 2 || result.Delivered != 0 || result.Failed != 2 {
		t.Fatalf("result = %+v, want 2 failures", result)
	}
}

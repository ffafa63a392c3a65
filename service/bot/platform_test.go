package bot

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"cardbot/service/webex"
)

// fakePlatform is an in-memory stand-in for the Webex REST API. It records
// every call so tests can assert on ordering and call counts.
type fakePlatform struct {
	mu            sync.Mutex
	rooms         []webex.Room
	webhooks      map[string]webex.Webhook
	actions       map[string]webex.AttachmentAction
	people        map[string]webex.Person
	me            *webex.Person
	messages      []webex.CreateMessageRequest
	calls         []string
	failMessages  bool
	nextWebhookID int

	srv *httptest.Server
}

func newFakePlatform(t *testing.T) *fakePlatform {
	t.Helper()

	f := &fakePlatform{
		webhooks: make(map[string]webex.Webhook),
		actions:  make(map[string]webex.AttachmentAction),
		people:   make(map[string]webex.Person),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /rooms", func(w http.ResponseWriter, r *http.Request) {
		f.record("GET /rooms")
		f.mu.Lock()
		items := append([]webex.Room(nil), f.rooms...)
		f.mu.Unlock()
		f.writeItems(w, items)
	})

	mux.HandleFunc("GET /webhooks", func(w http.ResponseWriter, r *http.Request) {
		f.record("GET /webhooks")
		f.mu.Lock()
		items := make([]webex.Webhook, 0, len(f.webhooks))
		for _, wh := range f.webhooks {
			items = append(items, wh)
		}
		f.mu.Unlock()
		f.writeItems(w, items)
	})

	mux.HandleFunc("POST /webhooks", func(w http.ResponseWriter, r *http.Request) {
		f.record("POST /webhooks")
		var req webex.CreateWebhookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"message":"bad request"}`, http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.nextWebhookID++
		wh := webex.Webhook{
			ID:        fmt.Sprintf("wh-%d", f.nextWebhookID),
			Name:      req.Name,
			TargetURL: req.TargetURL,
			Resource:  req.Resource,
			Event:     req.Event,
		}
		f.webhooks[wh.ID] = wh
		f.mu.Unlock()
		writeJSON(w, wh)
	})

	mux.HandleFunc("DELETE /webhooks/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		f.record("DELETE /webhooks/" + id)
		f.mu.Lock()
		_, ok := f.webhooks[id]
		delete(f.webhooks, id)
		f.mu.Unlock()
		if !ok {
			http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /attachment/actions/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		f.record("GET /attachment/actions/" + id)
		f.mu.Lock()
		action, ok := f.actions[id]
		f.mu.Unlock()
		if !ok {
			http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
			return
		}
		writeJSON(w, action)
	})

	mux.HandleFunc("GET /people/me", func(w http.ResponseWriter, r *http.Request) {
		f.record("GET /people/me")
		f.mu.Lock()
		me := f.me
		f.mu.Unlock()
		if me == nil {
			http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		writeJSON(w, me)
	})

	mux.HandleFunc("GET /people/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		f.record("GET /people/" + id)
		f.mu.Lock()
		person, ok := f.people[id]
		f.mu.Unlock()
		if !ok {
			http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
			return
		}
		writeJSON(w, person)
	})

	mux.HandleFunc("POST /messages", func(w http.ResponseWriter, r *http.Request) {
		f.record("POST /messages")
		var req webex.CreateMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"message":"bad request"}`, http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		fail := f.failMessages
		if !fail {
			f.messages = append(f.messages, req)
		}
		n := len(f.messages)
		f.mu.Unlock()
		if fail {
			http.Error(w, `{"message":"service unavailable"}`, http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, webex.Message{ID: fmt.Sprintf("msg-%d", n), RoomID: req.RoomID, Text: req.Text})
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakePlatform) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakePlatform) writeItems(w http.ResponseWriter, items any) {
	writeJSON(w, map[string]any{"items": items})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func (f *fakePlatform) client() *webex.Client {
	return webex.NewClient("test-token", f.srv.URL)
}

func (f *fakePlatform) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakePlatform) sentMessages() []webex.CreateMessageRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]webex.CreateMessageRequest(nil), f.messages...)
}

func (f *fakePlatform) callsMatching(prefix string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

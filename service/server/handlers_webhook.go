package server

import (
	"io"
	"net/http"

	"cardbot/service/webex"
)

// handleWebhook accepts platform webhook deliveries. The response is always
// 200 "OK" no matter what happened inside, so the platform never sees an
// error code that would trigger its own retry storm. Malformed bodies are
// logged and dropped.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	defer func() {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("OK")) //nolint:errcheck
	}()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Warn("Failed to read webhook body", "error", err)
		return
	}

	n, err := webex.ParseNotification(body)
	if err != nil {
		s.logger.Warn("Dropping webhook", "error", err)
		return
	}

	s.dispatcher.Dispatch(r.Context(), n)
}

// handleStartup is the liveness probe.
func (s *Server) handleStartup(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("Hello World!")) //nolint:errcheck
}

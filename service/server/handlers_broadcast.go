package server

import (
	"encoding/json"
	"net/http"

	"cardbot/service/cards"
	"cardbot/service/util"
)

// Manual broadcast triggers. Each returns an aggregate JSON summary of the
// whole room loop rather than the last send result.

func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	s.broadcast(w, r, "card", cards.Hello)
}

func (s *Server) handleButtons(w http.ResponseWriter, r *http.Request) {
	s.broadcast(w, r, "buttons", cards.Buttons)
}

// handleAlert accepts any webhook-shaped body (content ignored) and fans the
// alert card out to every eligible room.
func (s *Server) handleAlert(w http.ResponseWriter, r *http.Request) {
	s.broadcast(w, r, "alert", cards.Alert)
}

func (s *Server) broadcast(w http.ResponseWriter, r *http.Request, markdown string, card cards.Card) {
	result, err := s.broadcaster.Broadcast(r.Context(), markdown, card)
	if err != nil {
		util.LogAndError(w, s.logger, "Failed to list broadcast rooms", http.StatusBadGateway, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.logger.Error("Failed to encode broadcast result", "error", err)
	}
}

package server

import (
	_ "embed"
	"html/template"
	"net/http"

	"cardbot/service/bot"
)

//go:embed index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

// handleIndex renders the status page and, as a side effect, points the
// platform's webhook registrations at the URL this page was reached on.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	target := s.publicURL(r)
	s.registrar.Ensure(r.Context(), target)

	data := struct {
		Name   string
		Avatar string
		URL    string
	}{
		Name:   "unknown bot",
		Avatar: bot.DefaultAvatarURL,
		URL:    target,
	}
	if me := s.identity.BotInfo(r.Context()); me != nil {
		data.Name = me.DisplayName
		data.Avatar = me.Avatar
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, data); err != nil {
		s.logger.Error("failed to execute index template", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"cardbot/service/bot"
	"cardbot/service/config"
	"cardbot/service/util"
	"cardbot/service/webex"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

type Server struct {
	cfg         *config.Config
	client      *webex.Client
	identity    *bot.Identity
	dispatcher  *bot.Dispatcher
	registrar   *bot.Registrar
	broadcaster *bot.Broadcaster
	logger      *slog.Logger
	router      *chi.Mux
	httpServer  *http.Server
}

func New(cfg *config.Config, logger *slog.Logger) *Server {
	client := webex.NewClient(cfg.AccessToken, cfg.APIBase)
	identity := bot.NewIdentity(client, cfg.BotID, logger)
	interactions := bot.NewInteractions(client, logger)
	dispatcher := bot.NewDispatcher(client, identity, interactions, logger)
	registrar := bot.NewRegistrar(client, cfg.DryRun, logger)
	selector := bot.NewSelector(client, logger)
	broadcaster := bot.NewBroadcaster(client, selector, logger)

	s := &Server{
		cfg:         cfg,
		client:      client,
		identity:    identity,
		dispatcher:  dispatcher,
		registrar:   registrar,
		broadcaster: broadcaster,
		logger:      logger,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(loggingMiddleware(s.logger))
	r.Use(securityHeadersMiddleware())
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Compress(5))

	r.Get("/", s.handleIndex)
	r.Post("/", s.handleWebhook)
	r.Get("/startup", s.handleStartup)

	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(s.cfg.RateLimit, time.Minute))
		r.Get("/card", s.handleCard)
		r.Get("/buttons", s.handleButtons)
		r.Get("/alert", s.handleAlert)
		r.Post("/alert", s.handleAlert)
	})

	s.router = r
}

// Start runs the one-time startup checks in-process and then serves until
// ctx is cancelled. No loopback polling is needed since initialization
// happens before the listener opens.
func (s *Server) Start(ctx context.Context) error {
	s.identity.CheckAccount(ctx)
	if me := s.identity.BotInfo(ctx); me != nil {
		s.logger.Info("Bot identity resolved", "name", me.DisplayName, "email", me.Email())
	}

	if s.cfg.PublicURL != "" {
		s.registrar.Ensure(ctx, s.cfg.PublicURL)
	}

	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	msg := fmt.Sprintf("cardbot running on:\n  Local: http://localhost:%d", s.cfg.Port)
	if lanIP := util.GetLANIP(); lanIP != "" {
		msg += fmt.Sprintf("\n  Network: http://%s:%d", lanIP, s.cfg.Port)
	}
	s.logger.Info(msg)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown()
	case err := <-errCh:
		return err
	}
}

func (s *Server) Shutdown() error {
	s.logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown http server: %w", err)
	}
	return nil
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// publicURL prefers the configured external URL and falls back to the URL
// the current request arrived on.
func (s *Server) publicURL(r *http.Request) string {
	if s.cfg.PublicURL != "" {
		return s.cfg.PublicURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// Package web wires the HTTP transport over the matching and voting core.
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/kozaktomas/securevote/internal/auth"
	"github.com/kozaktomas/securevote/internal/biometric"
	"github.com/kozaktomas/securevote/internal/config"
	"github.com/kozaktomas/securevote/internal/database"
	"github.com/kozaktomas/securevote/internal/matcher"
	"github.com/kozaktomas/securevote/internal/voting"
	"github.com/kozaktomas/securevote/internal/web/middleware"
	log "github.com/sirupsen/logrus"
)

// Server represents the web server.
type Server struct {
	config     *config.Config
	router     *chi.Mux
	httpServer *http.Server

	store     database.TemplateStore
	audit     database.AuditLog
	extractor *biometric.Extractor
	matcher   *matcher.Matcher
	issuer    *auth.Issuer
	guard     *voting.BallotGuard
}

// NewServer creates a new web server over the given storage backend.
func NewServer(cfg *config.Config, port int, host string, store database.TemplateStore, audit database.AuditLog) *Server {
	r := chi.NewRouter()

	s := &Server{
		config:    cfg,
		router:    r,
		store:     store,
		audit:     audit,
		extractor: biometric.NewExtractor(cfg.Extractor.URL, cfg.Extractor.Timeout),
		matcher:   matcher.New(store, cfg.Matcher.Threshold),
		issuer:    auth.NewIssuer([]byte(cfg.Auth.Secret), cfg.Auth.TokenTTL),
		guard:     voting.NewBallotGuard(store, audit),
	}

	// Set up middleware stack
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(time.Minute))
	r.Use(middleware.CORS())

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	log.WithField("addr", s.httpServer.Addr).Info("starting web server")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("shutting down web server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// Router returns the chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

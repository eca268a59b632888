package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/securevote/internal/web/handlers"
	"github.com/kozaktomas/securevote/internal/web/middleware"
)

func (s *Server) setupRoutes() {
	enrollHandler := handlers.NewEnrollHandler(s.config, s.store, s.extractor)
	loginHandler := handlers.NewLoginHandler(s.config, s.extractor, s.matcher, s.issuer)
	voteHandler := handlers.NewVoteHandler(s.config, s.guard)
	electionHandler := handlers.NewElectionHandler(s.config)

	// Health check (no auth required)
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/register", enrollHandler.Register)
		r.Post("/login", loginHandler.Login)
		r.Get("/candidates", electionHandler.Candidates)

		// Routes bound to a verified session credential
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireVoter(s.issuer))

			r.Post("/vote", voteHandler.Cast)
			r.Get("/status", voteHandler.Status)
		})
	})
}

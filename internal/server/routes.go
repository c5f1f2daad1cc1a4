package server

import (
	"github.com/nfrund/profilepage/internal/handlers"
	"github.com/nfrund/profilepage/internal/middleware"
	"github.com/nfrund/profilepage/internal/modules/profile"
	"github.com/nfrund/profilepage/internal/registry"
)

// RegisterRoutes sets up the core, non-module routes. Services are resolved
// from the registry, so New must populate it first.
func (s *Server) RegisterRoutes() {
	repo := registry.MustGet(s.Registry, registry.KeyProfileRepository)
	publisher, _ := registry.Get(s.Registry, registry.KeyPublisher)
	profileAPI := handlers.NewProfileAPIHandler(repo, publisher)

	s.E.GET("/health", handlers.Health)
	s.E.GET(profile.ProfilePath, profileAPI.Get)

	// Writes are only exposed when an admin token is configured.
	if token := s.Cfg.GetAdminToken(); token != "" {
		s.E.PUT(profile.ProfilePath, profileAPI.Put, middleware.RateLimiter(), middleware.AdminToken(token))
	}
}

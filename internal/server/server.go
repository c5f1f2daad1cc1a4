package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/profilepage/internal/config"
	"github.com/nfrund/profilepage/internal/domain"
	"github.com/nfrund/profilepage/internal/middleware"
	"github.com/nfrund/profilepage/internal/module"
	"github.com/nfrund/profilepage/internal/modules/profile"
	"github.com/nfrund/profilepage/internal/pubsub"
	"github.com/nfrund/profilepage/internal/registry"
	"github.com/nfrund/profilepage/internal/rendering"
)

// Dependencies holds everything the server needs. Fetcher and Logger are optional.
type Dependencies struct {
	Config    config.Provider
	Profiles  domain.ProfileRepository
	Publisher pubsub.Publisher
	Modules   []module.Module

	// Fetcher is used by page loaders. When nil, loaders fetch in-process
	// through the server's own handler.
	Fetcher profile.Fetcher
	Logger  *slog.Logger
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	E        *echo.Echo
	Cfg      config.Provider
	Registry *registry.Registry
	Modules  []module.Module

	logger *slog.Logger
}

// New builds the echo instance, registers core routes and boots all modules.
func New(deps Dependencies) (*Server, error) {
	if deps.Config == nil {
		return nil, errors.New("server: config is required")
	}
	if deps.Profiles == nil {
		return nil, errors.New("server: profile repository is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Renderer = rendering.NewUniversalRenderer()

	s := &Server{
		E:        e,
		Cfg:      deps.Config,
		Registry: registry.New(),
		Modules:  deps.Modules,
		logger:   logger,
	}

	fetcher := deps.Fetcher
	if fetcher == nil {
		fetcher = profile.NewHandlerFetcher(e)
	}
	registry.Set(s.Registry, registry.KeyProfileRepository, deps.Profiles)
	registry.Set(s.Registry, profile.KeyFetcher, fetcher)
	if deps.Publisher != nil {
		registry.Set(s.Registry, registry.KeyPublisher, deps.Publisher)
	}

	s.RegisterRoutes()
	if err := s.InitModules(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// InitModules runs Register on every module, then Boot on every module.
func (s *Server) InitModules(ctx context.Context) error {
	for _, m := range s.Modules {
		if err := m.Register(s.Registry); err != nil {
			return fmt.Errorf("register module %s: %w", m.Name(), err)
		}
	}
	root := s.E.Group("")
	for _, m := range s.Modules {
		if err := m.Boot(ctx, root, s.Registry); err != nil {
			return fmt.Errorf("boot module %s: %w", m.Name(), err)
		}
		s.logger.Debug("module booted", "module", m.Name())
	}
	return nil
}

// PrerenderPaths lists the paths modules want rendered at build time.
func (s *Server) PrerenderPaths() []string {
	return module.PrerenderPaths(s.Modules)
}

// InProcessFetcher fetches from this server without a network round trip.
func (s *Server) InProcessFetcher() *profile.HandlerFetcher {
	return profile.NewHandlerFetcher(s.E)
}

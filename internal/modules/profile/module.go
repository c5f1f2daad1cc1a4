package profile

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/profilepage/internal/module"
	"github.com/nfrund/profilepage/internal/modules/profile/view"
	"github.com/nfrund/profilepage/internal/registry"
)

// Module mounts the profile page at the root of the site.
type Module struct {
	module.BaseModule
	handler *Handler
}

// New creates the profile module. Its Fetcher is resolved from the registry at boot.
func New() *Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "profile"
}

func (m *Module) Boot(ctx context.Context, group *echo.Group, reg *registry.Registry) error {
	m.handler = NewHandler(registry.MustGet(reg, KeyFetcher))
	group.GET("/", m.handler.Page)
	group.GET(DataPath, m.handler.Data)
	group.GET(view.CardPath, m.handler.Card)
	return nil
}

// PrerenderPaths implements module.Prerenderer.
func (m *Module) PrerenderPaths() []string {
	if !Prerender {
		return nil
	}
	return []string{"/"}
}

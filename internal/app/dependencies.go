package app

import (
	"github.com/nfrund/profilepage/internal/config"
	"github.com/nfrund/profilepage/internal/database"
	"github.com/nfrund/profilepage/internal/pubsub"
	"github.com/nfrund/profilepage/internal/storage"
)

// Dependencies holds the core services shared by the serve and prerender commands.
type Dependencies struct {
	Profiles *database.ProfileStore
	Bus      *pubsub.WatermillBridge
	Output   *storage.AferoStore
}

// NewDependencies wires the on-disk stores and the event bus from configuration.
func NewDependencies(cfg config.Provider) *Dependencies {
	return &Dependencies{
		Profiles: database.NewProfileStore(storage.NewDirStore(cfg.GetDataDir()), cfg.GetProfileFile()),
		Bus:      pubsub.NewWatermillBridge(),
		Output:   storage.NewDirStore(cfg.GetBuildDir()),
	}
}

// Close releases the event bus.
func (d *Dependencies) Close() error {
	return d.Bus.Close()
}

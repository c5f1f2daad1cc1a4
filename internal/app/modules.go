package app

import (
	"github.com/nfrund/profilepage/internal/module"
	"github.com/nfrund/profilepage/internal/modules/profile"
)

// NewModules creates and returns the list of all active modules for the application.
// This is the single source of truth for which features are enabled.
func NewModules() []module.Module {
	return []module.Module{
		profile.New(),
	}
}

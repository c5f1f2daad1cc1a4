package registry

import (
	"github.com/nfrund/profilepage/internal/domain"
	"github.com/nfrund/profilepage/internal/pubsub"
)

// Core service keys. Modules define keys for their own services next to the service.
var (
	KeyProfileRepository = Key[domain.ProfileRepository]("core.ProfileRepository")
	KeyPublisher         = Key[pubsub.Publisher]("core.Publisher")
)

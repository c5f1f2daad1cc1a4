package domain

import (
	"context"
	"encoding/json"
)

// ProfileRepository stores the single profile document served by the API.
// The document is opaque JSON; the only structural rule is that it is an object.
type ProfileRepository interface {
	// Get returns the stored document or ErrNotFound.
	Get(ctx context.Context) (json.RawMessage, error)

	// Put replaces the stored document. Non-object documents yield ErrInvalidProfile.
	Put(ctx context.Context, doc json.RawMessage) error
}

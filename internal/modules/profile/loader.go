package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/nfrund/profilepage/internal/middleware"
)

// ProfilePath is the API endpoint the page loader reads.
const ProfilePath = "/api/profile"

// Prerender marks the profile page for build-time rendering.
const Prerender = true

// PageData is what the loader hands to the page view.
// A nil Profile means no profile is available and is omitted from JSON.
type PageData struct {
	Profile any `json:"profile,omitempty"`
}

// Load fetches ProfilePath once. A 200 response is decoded into Profile; every
// other status yields an empty PageData and no error. Transport failures and
// undecodable 200 bodies are returned to the caller.
func Load(ctx context.Context, fetch Fetcher) (PageData, error) {
	logger := middleware.FromContext(ctx)

	res, err := fetch.Fetch(ctx, ProfilePath)
	if err != nil {
		return PageData{}, fmt.Errorf("fetch %s: %w", ProfilePath, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, res.Body)
		logger.DebugContext(ctx, "no profile", "path", ProfilePath, "status", res.StatusCode)
		return PageData{}, nil
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return PageData{}, fmt.Errorf("read %s: %w", ProfilePath, err)
	}
	// The whole body must be a single JSON value.
	var profile any
	if err := json.Unmarshal(body, &profile); err != nil {
		return PageData{}, fmt.Errorf("decode %s: %w", ProfilePath, err)
	}
	return PageData{Profile: profile}, nil
}

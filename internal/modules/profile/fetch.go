package profile

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"

	"github.com/nfrund/profilepage/internal/registry"
)

// KeyFetcher is the registry key for the Fetcher used by the page loader.
var KeyFetcher = registry.Key[Fetcher]("profile.Fetcher")

// Fetcher issues a GET for a path relative to the current origin.
// Callers own the returned body.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (*http.Response, error)
}

// FetchFunc adapts a function to the Fetcher interface.
type FetchFunc func(ctx context.Context, path string) (*http.Response, error)

// Fetch calls f.
func (f FetchFunc) Fetch(ctx context.Context, path string) (*http.Response, error) {
	return f(ctx, path)
}

// HTTPFetcher resolves paths against a fixed origin and fetches them over the network.
type HTTPFetcher struct {
	origin *url.URL
	client *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher for origin. A nil client uses http.DefaultClient.
func NewHTTPFetcher(origin string, client *http.Client) (*HTTPFetcher, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parse origin %q: %w", origin, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("origin %q must be an absolute URL", origin)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{origin: u, client: client}, nil
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, path string) (*http.Response, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parse path %q: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.origin.ResolveReference(ref).String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return f.client.Do(req)
}

// HandlerFetcher serves requests in-process through an http.Handler, the way a
// same-origin fetch made during server-side rendering never leaves the process.
type HandlerFetcher struct {
	handler http.Handler
}

// NewHandlerFetcher creates a HandlerFetcher dispatching to h.
func NewHandlerFetcher(h http.Handler) *HandlerFetcher {
	return &HandlerFetcher{handler: h}
}

// Fetch implements Fetcher.
func (f *HandlerFetcher) Fetch(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.RequestURI = path
	req.Header.Set("Accept", "application/json")

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rec.Result(), nil
}

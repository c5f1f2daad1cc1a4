// Package prerender renders prerenderable routes at build time and writes the
// resulting HTML and page data to an output store.
package prerender

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/nfrund/profilepage/internal/storage"
	"golang.org/x/sync/errgroup"
)

const (
	// IndexFile is written for every prerendered path.
	IndexFile = "index.html"
	// DataFile holds the page's loader output, when the route serves one.
	DataFile = "__data.json"
)

// Fetcher performs a GET against the application, usually in-process.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (*http.Response, error)
}

// Builder renders paths through the application and stores the output.
type Builder struct {
	fetcher Fetcher
	out     storage.Store
	logger  *slog.Logger

	mu sync.Mutex // serializes builds triggered by change events
}

// NewBuilder creates a Builder. A nil logger uses slog.Default.
func NewBuilder(fetcher Fetcher, out storage.Store, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{fetcher: fetcher, out: out, logger: logger}
}

// Build prerenders every path and returns the written files, sorted.
// Any path whose page does not answer 200 fails the build.
func (b *Builder) Build(ctx context.Context, paths []string) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var (
		mu    sync.Mutex
		files []string
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, p := range paths {
		p := p
		g.Go(func() error {
			written, err := b.buildPath(ctx, p)
			if err != nil {
				return fmt.Errorf("prerender %s: %w", p, err)
			}
			mu.Lock()
			files = append(files, written...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(files)
	b.logger.InfoContext(ctx, "prerender complete", "paths", len(paths), "files", len(files))
	return files, nil
}

func (b *Builder) buildPath(ctx context.Context, urlPath string) ([]string, error) {
	dir := outputDir(urlPath)

	page, err := b.get(ctx, urlPath)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, fmt.Errorf("page not found")
	}
	indexFile := path.Join(dir, IndexFile)
	if err := b.save(ctx, indexFile, page); err != nil {
		return nil, err
	}
	written := []string{indexFile}

	data, err := b.get(ctx, dataURL(urlPath))
	if err != nil {
		return nil, err
	}
	if data != nil {
		dataFile := path.Join(dir, DataFile)
		if err := b.save(ctx, dataFile, data); err != nil {
			return nil, err
		}
		written = append(written, dataFile)
	}

	b.logger.DebugContext(ctx, "prerendered", "path", urlPath, "files", written)
	return written, nil
}

// get returns the body of a 200 response, nil for a 404 and an error otherwise.
func (b *Builder) get(ctx context.Context, urlPath string) ([]byte, error) {
	res, err := b.fetcher.Fetch(ctx, urlPath)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", urlPath, err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("fetch %s: unexpected status %d", urlPath, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", urlPath, err)
	}
	return body, nil
}

func (b *Builder) save(ctx context.Context, file string, body []byte) error {
	if _, err := b.out.Save(ctx, file, bytes.NewReader(body)); err != nil {
		return fmt.Errorf("write %s: %w", file, err)
	}
	return nil
}

// outputDir maps a URL path to its directory in the output tree ("/" is the root).
func outputDir(urlPath string) string {
	p := strings.Trim(path.Clean("/"+urlPath), "/")
	if p == "" {
		return "."
	}
	return p
}

func dataURL(urlPath string) string {
	return path.Join("/", urlPath, DataFile)
}

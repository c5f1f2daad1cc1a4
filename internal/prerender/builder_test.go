package prerender

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nfrund/profilepage/internal/pubsub"
	"github.com/nfrund/profilepage/internal/storage"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSite is an in-process fetcher over a fixed set of responses.
type fakeSite struct {
	mu     sync.Mutex
	pages  map[string]string
	status map[string]int
}

func (s *fakeSite) Fetch(ctx context.Context, p string) (*http.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code, ok := s.status[p]; ok {
		return &http.Response{StatusCode: code, Body: io.NopCloser(http.NoBody)}, nil
	}
	body, ok := s.pages[p]
	if !ok {
		return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(http.NoBody)}, nil
	}
	return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(body))}, nil
}

func (s *fakeSite) set(p, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[p] = body
}

func newSite() *fakeSite {
	return &fakeSite{
		pages: map[string]string{
			"/":            "<h1>Alice</h1>",
			"/__data.json": `{"profile":{"name":"Alice"}}`,
			"/about":       "<h1>About</h1>",
		},
		status: map[string]int{},
	}
}

func TestBuilder_Build(t *testing.T) {
	fs := afero.NewMemMapFs()
	b := NewBuilder(newSite(), storage.NewAferoStore(fs), nil)

	files, err := b.Build(context.Background(), []string{"/", "/about"})
	require.NoError(t, err)
	assert.Equal(t, []string{"__data.json", "about/index.html", "index.html"}, files)

	index, err := afero.ReadFile(fs, "index.html")
	require.NoError(t, err)
	assert.Equal(t, "<h1>Alice</h1>", string(index))

	data, err := afero.ReadFile(fs, "__data.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"profile":{"name":"Alice"}}`, string(data))

	exists, err := afero.Exists(fs, "about/__data.json")
	require.NoError(t, err)
	assert.False(t, exists, "routes without a data endpoint get no data file")
}

func TestBuilder_FailsOnBadPage(t *testing.T) {
	t.Run("missing page", func(t *testing.T) {
		b := NewBuilder(newSite(), storage.NewAferoStore(afero.NewMemMapFs()), nil)
		_, err := b.Build(context.Background(), []string{"/nowhere"})
		assert.ErrorContains(t, err, "prerender /nowhere")
	})

	t.Run("page error status", func(t *testing.T) {
		site := newSite()
		site.status["/"] = http.StatusBadGateway
		b := NewBuilder(site, storage.NewAferoStore(afero.NewMemMapFs()), nil)
		_, err := b.Build(context.Background(), []string{"/"})
		assert.ErrorContains(t, err, "unexpected status 502")
	})
}

func TestOutputPaths(t *testing.T) {
	assert.Equal(t, ".", outputDir("/"))
	assert.Equal(t, ".", outputDir(""))
	assert.Equal(t, "about", outputDir("/about/"))
	assert.Equal(t, "a/b", outputDir("/a/./b"))
	assert.Equal(t, "/__data.json", dataURL("/"))
	assert.Equal(t, "/about/__data.json", dataURL("/about"))
}

func TestWatcher_PublishesOnChange(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "profile.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"name":"Alice"}`), 0644))

	bridge := pubsub.NewWatermillBridge()
	defer bridge.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan pubsub.Message, 1)
	require.NoError(t, bridge.Subscribe(ctx, pubsub.TopicProfileChanged, func(ctx context.Context, msg pubsub.Message) error {
		select {
		case events <- msg:
		default:
		}
		return nil
	}))

	w := NewWatcher(file, bridge, nil)
	w.Debounce = 20 * time.Millisecond
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// The watch is registered asynchronously, so keep saving until an event arrives.
	// Writes to unrelated files in the same directory must not count.
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	timeout := time.After(3 * time.Second)
	var msg pubsub.Message
wait:
	for {
		select {
		case msg = <-events:
			break wait
		case <-ticker.C:
			require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644))
			require.NoError(t, os.WriteFile(file, []byte(`{"name":"Bob"}`), 0644))
		case <-timeout:
			t.Fatal("no change event published")
		}
	}
	assert.Equal(t, "file", msg.Metadata["source"])
	assert.Equal(t, file, msg.Metadata["file"])

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRebuildOnChange(t *testing.T) {
	fs := afero.NewMemMapFs()
	site := newSite()
	b := NewBuilder(site, storage.NewAferoStore(fs), nil)

	bridge := pubsub.NewWatermillBridge()
	defer bridge.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, RebuildOnChange(ctx, bridge, b, []string{"/"}))

	site.set("/", "<h1>Bob</h1>")
	require.NoError(t, bridge.Publish(ctx, pubsub.Message{Topic: pubsub.TopicProfileChanged}))

	assert.Eventually(t, func() bool {
		index, err := afero.ReadFile(fs, "index.html")
		return err == nil && string(index) == "<h1>Bob</h1>"
	}, 2*time.Second, 10*time.Millisecond)
}

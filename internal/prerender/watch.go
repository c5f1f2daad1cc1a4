package prerender

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nfrund/profilepage/internal/pubsub"
)

// DefaultDebounce collapses the burst of events editors emit for a single save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher publishes pubsub.TopicProfileChanged whenever a file on disk changes.
type Watcher struct {
	file     string
	pub      pubsub.Publisher
	logger   *slog.Logger
	Debounce time.Duration
}

// NewWatcher watches file. The parent directory is watched so that atomic
// replace-by-rename saves are seen too.
func NewWatcher(file string, pub pubsub.Publisher, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{file: filepath.Clean(file), pub: pub, logger: logger, Debounce: DefaultDebounce}
}

// Run blocks until ctx is cancelled or the watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.file)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.file), err)
	}
	w.logger.InfoContext(ctx, "watching profile", "file", w.file)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.file || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) {
				continue
			}
			w.logger.DebugContext(ctx, "profile file event", "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.Debounce)
			} else {
				timer.Reset(w.Debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			err := w.pub.Publish(ctx, pubsub.Message{
				Topic:    pubsub.TopicProfileChanged,
				Metadata: map[string]string{"source": "file", "file": w.file},
			})
			if err != nil {
				return fmt.Errorf("publish change: %w", err)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.ErrorContext(ctx, "watcher error", "error", err)
		}
	}
}

// RebuildOnChange subscribes b to profile changes, rebuilding paths on every event.
func RebuildOnChange(ctx context.Context, sub pubsub.Subscriber, b *Builder, paths []string) error {
	return sub.Subscribe(ctx, pubsub.TopicProfileChanged, func(ctx context.Context, msg pubsub.Message) error {
		b.logger.InfoContext(ctx, "profile changed, rebuilding", "source", msg.Metadata["source"])
		_, err := b.Build(ctx, paths)
		return err
	})
}

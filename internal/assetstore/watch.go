package assetstore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/gtgrass/internal/logger"
)

// Op describes what happened to an asset.
type Op int

// Asset change kinds.
const (
	OpWrite Op = iota
	OpRemove
)

func (o Op) String() string {
	if o == OpRemove {
		return "remove"
	}
	return "write"
}

// Event reports a change to the asset under Key.
type Event struct {
	Key string
	Op  Op
}

// Watcher reports asset changes below a FileStore root.
type Watcher struct {
	root   string
	fs     *fsnotify.Watcher
	events chan Event
	errors chan error
	log    *zap.Logger
}

// NewWatcher starts watching every directory below the store root. Call
// Run to deliver events.
func NewWatcher(store *FileStore) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		root:   store.Root(),
		fs:     fsw,
		events: make(chan Event, 64),
		errors: make(chan error, 1),
		log:    logger.Named("watcher"),
	}
	if err := w.watchRecursive(w.root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Events returns the change channel. It is closed when Run returns.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns watcher errors. It is closed when Run returns.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Run delivers events until ctx is cancelled, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		w.fs.Close()
		close(w.events)
		close(w.errors)
	}()

	for {
		select {
		case e, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, e)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))
			select {
			case w.errors <- err:
			default:
			}

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *Watcher) handle(ctx context.Context, e fsnotify.Event) {
	if info, err := os.Stat(e.Name); err == nil && info.IsDir() {
		if e.Has(fsnotify.Create) {
			if err := w.watchRecursive(e.Name); err != nil {
				w.log.Warn("cannot watch new directory", zap.String("path", e.Name), zap.Error(err))
			}
		}
		return
	}

	var op Op
	switch {
	case e.Has(fsnotify.Create), e.Has(fsnotify.Write):
		op = OpWrite
	case e.Has(fsnotify.Remove), e.Has(fsnotify.Rename):
		op = OpRemove
	default:
		return
	}

	rel, err := filepath.Rel(w.root, e.Name)
	if err != nil {
		return
	}
	ev := Event{Key: filepath.ToSlash(rel), Op: op}
	w.log.Debug("asset changed", zap.String("key", ev.Key), zap.Stringer("op", op))

	select {
	case w.events <- ev:
	case <-ctx.Done():
	}
}

func (w *Watcher) watchRecursive(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return w.fs.Add(p)
		}
		return nil
	})
}

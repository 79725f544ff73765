// Package watcher loads dictionary files from a directory and reloads them
// when they change. Files are named <language>.<ext>, e.g. en-us.dict.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/heartmarshall/miskai-core/internal/dictionary"
	"github.com/heartmarshall/miskai-core/internal/domain"
)

// Loader installs a dictionary source for a language.
type Loader interface {
	LoadDictionaryBytes(lang string, source []byte, format dictionary.Format) error
}

// Watcher feeds dictionary files from dir into a Loader.
type Watcher struct {
	dir      string
	loader   Loader
	log      *slog.Logger
	debounce time.Duration
	maxSize  int64

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.log = l }
}

// WithDebounce sets how long a file must stay quiet before it is reloaded.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithMaxSize caps the size of a dictionary file in bytes.
func WithMaxSize(n int64) Option {
	return func(w *Watcher) { w.maxSize = n }
}

// New creates a Watcher over dir.
func New(dir string, loader Loader, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		loader:   loader,
		log:      slog.New(slog.DiscardHandler),
		debounce: 250 * time.Millisecond,
		maxSize:  256 << 20,
		timers:   make(map[string]*time.Timer),
	}
	for _, o := range opts {
		o(w)
	}
	w.log = w.log.With(slog.String("component", "watcher"), slog.String("dir", dir))
	return w
}

// ParseName splits a dictionary file name into its language and format.
func ParseName(path string) (domain.Language, dictionary.Format, bool) {
	format, ok := dictionary.FormatFromPath(path)
	if !ok {
		return "", "", false
	}
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if strings.HasPrefix(stem, ".") {
		return "", "", false
	}
	lang, err := domain.ParseLanguage(stem)
	if err != nil {
		return "", "", false
	}
	return lang, format, true
}

// LoadAll loads every dictionary file in dir once. Files that fail are logged
// and skipped. It returns the number of dictionaries installed.
func (w *Watcher) LoadAll(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return 0, fmt.Errorf("read dictionary dir: %w", err)
	}

	loaded := 0
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return loaded, err
		}
		if e.IsDir() {
			continue
		}
		path := filepath.Join(w.dir, e.Name())
		if _, _, ok := ParseName(path); !ok {
			continue
		}
		if err := w.loadFile(path); err != nil {
			w.log.Warn("dictionary file rejected", slog.String("file", e.Name()), slog.String("error", err.Error()))
			continue
		}
		loaded++
	}
	return loaded, nil
}

// Watch reloads dictionary files on write or create until ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch dictionary dir: %w", err)
	}
	defer w.stopTimers()

	w.log.Info("watching dictionaries")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", slog.String("error", err.Error()))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
			if lang, _, ok := ParseName(event.Name); ok {
				w.log.Info("dictionary file removed, keeping loaded dictionary",
					slog.String("language", lang.String()))
			}
		}
		return
	}
	if _, _, ok := ParseName(event.Name); !ok {
		return
	}
	w.schedule(event.Name)
}

// schedule coalesces bursts of events for one path into a single reload.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		if err := w.loadFile(path); err != nil {
			w.log.Warn("dictionary reload failed, previous dictionary kept",
				slog.String("file", filepath.Base(path)), slog.String("error", err.Error()))
		}
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
}

var errTooLarge = errors.New("dictionary file too large")

func (w *Watcher) loadFile(path string) error {
	lang, format, ok := ParseName(path)
	if !ok {
		return fmt.Errorf("unrecognised dictionary file name %q", filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	src, err := io.ReadAll(io.LimitReader(f, w.maxSize+1))
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if int64(len(src)) > w.maxSize {
		return fmt.Errorf("%w: %s exceeds %d bytes", errTooLarge, filepath.Base(path), w.maxSize)
	}

	start := time.Now()
	if err := w.loader.LoadDictionaryBytes(lang.String(), src, format); err != nil {
		return err
	}
	w.log.Info("dictionary file loaded",
		slog.String("language", lang.String()),
		slog.String("format", format.String()),
		slog.Int("bytes", len(src)),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

// Package bridge is the foreign-function side of the engine: every result is
// a sentinel (a string handle, 0/1, a bool) and nothing returns an error or
// panics across it.
package bridge

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/heartmarshall/miskai-core/internal/dictionary"
	"github.com/heartmarshall/miskai-core/internal/domain"
	"github.com/heartmarshall/miskai-core/internal/pipeline"
)

var errNotInitialized = fmt.Errorf("bridge: %w", domain.ErrNotInitialized)

// Boundary owns the current engine and the handle table of returned strings.
type Boundary struct {
	mu        sync.RWMutex
	engine    *pipeline.Engine
	arena     *Arena
	newEngine func() *pipeline.Engine
	log       *slog.Logger
	version   string
}

// Option configures a Boundary.
type Option func(*Boundary)

// WithEngineFactory sets how Initialize builds engines.
func WithEngineFactory(f func() *pipeline.Engine) Option {
	return func(b *Boundary) { b.newEngine = f }
}

func WithLogger(l *slog.Logger) Option {
	return func(b *Boundary) { b.log = l }
}

// WithVersion sets the build version reported by GetPlatformVersion.
func WithVersion(v string) Option {
	return func(b *Boundary) { b.version = v }
}

// New creates an uninitialized boundary.
func New(opts ...Option) *Boundary {
	b := &Boundary{
		arena:     NewArena(),
		newEngine: func() *pipeline.Engine { return pipeline.New() },
		version:   "dev",
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		b.log = slog.New(slog.DiscardHandler)
	}
	b.log = b.log.With("component", "bridge")
	return b
}

// Initialize installs a fresh engine. A previous engine is closed and its
// dictionaries are discarded. Handles issued earlier stay valid.
func (b *Boundary) Initialize() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.engine != nil {
		b.engine.Close()
		b.log.Info("engine reset")
	}
	b.engine = b.newEngine()
}

// Shutdown closes the engine. Later calls behave as before Initialize.
// Handles issued earlier stay valid until freed.
func (b *Boundary) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.engine != nil {
		b.engine.Close()
		b.engine = nil
	}
}

// Initialized reports whether an engine is active.
func (b *Boundary) Initialized() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.engine != nil
}

// Engine returns the active engine, or nil.
func (b *Boundary) Engine() *pipeline.Engine {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.engine
}

// ProcessText transcribes text and returns a handle to the result. On any
// failure, including a missing engine, the handle refers to "".
func (b *Boundary) ProcessText(text, lang string) Handle {
	out, err := b.process(text, lang)
	if err != nil {
		b.log.Debug("process text failed", slog.String("language", lang), slog.String("error", err.Error()))
	}
	return b.arena.Put(out)
}

func (b *Boundary) process(text, lang string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("panic: %v", r)
		}
	}()

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.engine == nil {
		if text == "" {
			return "", nil
		}
		return "", errNotInitialized
	}
	return b.engine.Process(text, lang)
}

// LoadDictionary loads source for lang, sniffing the format. It returns 1 on
// success and 0 on failure.
func (b *Boundary) LoadDictionary(lang, source string) int {
	return b.LoadDictionaryFormat(lang, source, string(dictionary.FormatAuto))
}

// LoadDictionaryFormat is LoadDictionary with an explicit format name.
func (b *Boundary) LoadDictionaryFormat(lang, source, format string) int {
	if err := b.load(lang, []byte(source), format); err != nil {
		b.log.Debug("load dictionary failed", slog.String("language", lang), slog.String("error", err.Error()))
		return 0
	}
	return 1
}

// LoadDictionaryBytes loads raw bytes, as read from a file.
func (b *Boundary) LoadDictionaryBytes(lang string, source []byte, format dictionary.Format) error {
	return b.load(lang, source, string(format))
}

func (b *Boundary) load(lang string, source []byte, format string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	f, err := dictionary.ParseFormat(format)
	if err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.engine == nil {
		return errNotInitialized
	}
	_, err = b.engine.LoadDictionary(lang, source, f)
	return err
}

// Export stores s in the arena, for results produced outside ProcessText.
// The handle is released with FreeString like any other.
func (b *Boundary) Export(s string) Handle { return b.arena.Put(s) }

// Read returns the string behind h without releasing it.
func (b *Boundary) Read(h Handle) (string, bool) { return b.arena.Get(h) }

// FreeString releases h. It reports false for a handle that is unknown or was
// already released.
func (b *Boundary) FreeString(h Handle) bool {
	if err := b.arena.Release(h); err != nil {
		b.log.Warn("free string rejected", slog.Uint64("handle", uint64(h)), slog.String("error", err.Error()))
		return false
	}
	return true
}

// Live returns the number of handles not yet released.
func (b *Boundary) Live() int { return b.arena.Len() }

// PlatformVersion describes the build and the host platform.
func (b *Boundary) PlatformVersion() string {
	return fmt.Sprintf("miskai-core %s (%s/%s)", b.version, runtime.GOOS, runtime.GOARCH)
}

// Dispatch executes one call of the closed call set.
func (b *Boundary) Dispatch(c Call) Reply {
	r := Reply{Method: c.Method(), OK: true}
	switch c := c.(type) {
	case Initialize:
		b.Initialize()
	case Shutdown:
		b.Shutdown()
	case GetPlatformVersion:
		r.Text = b.PlatformVersion()
	case ProcessText:
		r.Handle = b.ProcessText(c.Text, c.Language)
		r.Text, _ = b.Read(r.Handle)
	case LoadDictionary:
		r.Code = b.LoadDictionaryFormat(c.Language, c.Source, c.Format)
		r.OK = r.Code == 1
	case ReadString:
		r.Text, r.OK = b.Read(c.Handle)
	case FreeString:
		r.OK = b.FreeString(c.Handle)
	}
	return r
}

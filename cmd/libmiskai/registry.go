package main

import (
	"sync"

	"github.com/heartmarshall/miskai-core/internal/app"
	"github.com/heartmarshall/miskai-core/internal/bridge"
)

type handle = bridge.Handle

// registry pairs the C pointers handed out with the arena handles behind
// them, so a pointer is released at most once.
type registry struct {
	boundary *bridge.Boundary

	mu   sync.Mutex
	live map[uintptr]handle
}

var lib = newRegistry(bridge.New(bridge.WithVersion(app.Version)))

func newRegistry(b *bridge.Boundary) *registry {
	return &registry{boundary: b, live: make(map[uintptr]handle)}
}

func (r *registry) track(ptr uintptr, h handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.live[ptr] = h
}

// release forgets ptr and frees its handle. It reports false for a pointer
// that was never handed out or was already released.
func (r *registry) release(ptr uintptr) bool {
	r.mu.Lock()
	h, ok := r.live[ptr]
	delete(r.live, ptr)
	r.mu.Unlock()
	if !ok {
		return false
	}
	return r.boundary.FreeString(h)
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

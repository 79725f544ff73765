package bridge

import (
	"errors"
	"sync"
)

var (
	ErrUnknownHandle = errors.New("unknown handle")
	ErrDoubleFree    = errors.New("handle already released")
)

// Handle refers to a string owned by the caller until released.
// The zero Handle is never issued.
type Handle uint64

// Arena is the handle table behind returned strings. Handles increase
// monotonically and are never reused, so a released handle stays
// recognisable.
type Arena struct {
	mu      sync.Mutex
	last    Handle
	strings map[Handle]string
}

func NewArena() *Arena {
	return &Arena{strings: make(map[Handle]string)}
}

// Put stores s and returns its handle.
func (a *Arena) Put(s string) Handle {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.last++
	a.strings[a.last] = s
	return a.last
}

// Get returns the string behind h.
func (a *Arena) Get(h Handle) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.strings[h]
	return s, ok
}

// Release drops h. It fails with ErrDoubleFree for a handle that was already
// released and ErrUnknownHandle for one that was never issued.
func (a *Arena) Release(h Handle) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.strings[h]; ok {
		delete(a.strings, h)
		return nil
	}
	if h == 0 || h > a.last {
		return ErrUnknownHandle
	}
	return ErrDoubleFree
}

// Len returns the number of live handles.
func (a *Arena) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.strings)
}

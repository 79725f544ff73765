package dictionary

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/heartmarshall/miskai-core/internal/domain"
)

// slot holds the active dictionary of one language. Readers load the pointer
// without locking; loadMu only orders writers of the same language.
type slot struct {
	dict   atomic.Pointer[Dictionary]
	loadMu sync.Mutex
}

// Store maps languages to their active dictionaries.
type Store struct {
	mu    sync.RWMutex // guards slots, never held while parsing
	slots map[domain.Language]*slot
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{slots: make(map[domain.Language]*slot)}
}

func (s *Store) slot(lang domain.Language, create bool) *slot {
	s.mu.RLock()
	sl := s.slots[lang]
	s.mu.RUnlock()
	if sl != nil || !create {
		return sl
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sl = s.slots[lang]; sl == nil {
		sl = &slot{}
		s.slots[lang] = sl
	}
	return sl
}

// Load parses src and installs the result for lang, replacing the previous
// dictionary in one step. On error nothing changes and the previous
// dictionary stays active.
func (s *Store) Load(lang domain.Language, src []byte, format Format) (Stats, error) {
	sl := s.slot(lang, true)
	sl.loadMu.Lock()
	defer sl.loadMu.Unlock()

	d, err := Parse(lang, src, format)
	if err != nil {
		return Stats{}, err
	}
	sl.dict.Store(d)
	return d.Stats(), nil
}

// Install makes an already built dictionary active for its language.
func (s *Store) Install(d *Dictionary) {
	sl := s.slot(d.Language(), true)
	sl.loadMu.Lock()
	defer sl.loadMu.Unlock()
	sl.dict.Store(d)
}

// Lookup finds word in the active dictionary of lang. A language without a
// dictionary behaves like a missing word.
func (s *Store) Lookup(lang domain.Language, word string) (domain.Entry, bool) {
	sl := s.slot(lang, false)
	if sl == nil {
		return domain.Entry{}, false
	}
	return sl.dict.Load().Lookup(word)
}

// Dictionary returns the active dictionary of lang.
func (s *Store) Dictionary(lang domain.Language) (*Dictionary, bool) {
	sl := s.slot(lang, false)
	if sl == nil {
		return nil, false
	}
	d := sl.dict.Load()
	return d, d != nil
}

// Unload drops the dictionary of lang. It reports whether one was active.
func (s *Store) Unload(lang domain.Language) bool {
	sl := s.slot(lang, false)
	if sl == nil {
		return false
	}
	sl.loadMu.Lock()
	defer sl.loadMu.Unlock()
	return sl.dict.Swap(nil) != nil
}

// Languages lists languages with an active dictionary, sorted.
func (s *Store) Languages() []domain.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Language, 0, len(s.slots))
	for lang, sl := range s.slots {
		if sl.dict.Load() != nil {
			out = append(out, lang)
		}
	}
	slices.Sort(out)
	return out
}

// Stats returns the load statistics of every active dictionary.
func (s *Store) Stats() map[domain.Language]Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[domain.Language]Stats, len(s.slots))
	for lang, sl := range s.slots {
		if d := sl.dict.Load(); d != nil {
			out[lang] = d.Stats()
		}
	}
	return out
}

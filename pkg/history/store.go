package history

import (
	"errors"
	"sync"

	"github.com/burphist/burphist/pkg/burpxml"
)

// ErrFrozen is returned by Insert after the load phase has been declared
// complete.
var ErrFrozen = errors.New("history: store is frozen")

// Store owns an append-only, insertion-ordered sequence of Entries plus
// secondary indices by host, status code, and mime type. It is mutable only
// during the load phase; after Freeze it is read-only and safe for unlimited
// concurrent readers.
type Store struct {
	mu      sync.RWMutex
	frozen  bool
	meta    burpxml.Meta
	entries []*Entry

	byHost   map[string][]int64
	byStatus map[int][]int64
	byMime   map[string][]int64

	// diags are stream-scoped diagnostics: truncation, cancellation.
	diags []Diagnostic
}

// NewStore returns an empty, unfrozen store.
func NewStore() *Store {
	return &Store{
		byHost:   make(map[string][]int64),
		byStatus: make(map[int][]int64),
		byMime:   make(map[string][]int64),
	}
}

// Insert assigns the next id to e, appends it, and updates the secondary
// indices. It fails once the store is frozen.
func (s *Store) Insert(e *Entry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return 0, ErrFrozen
	}

	e.ID = int64(len(s.entries)) + 1
	s.entries = append(s.entries, e)

	if e.Host != "" {
		s.byHost[e.Host] = append(s.byHost[e.Host], e.ID)
	}
	if e.Status != 0 {
		s.byStatus[e.Status] = append(s.byStatus[e.Status], e.ID)
	}
	if e.MimeType != "" {
		s.byMime[e.MimeType] = append(s.byMime[e.MimeType], e.ID)
	}
	return e.ID, nil
}

// Freeze ends the load phase. All mutation fails afterwards.
func (s *Store) Freeze() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frozen = true
}

// Frozen reports whether the load phase has completed.
func (s *Store) Frozen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frozen
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Get returns the entry with the given id, or nil if no such entry exists.
func (s *Store) Get(id int64) *Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id < 1 || id > int64(len(s.entries)) {
		return nil
	}
	return s.entries[id-1]
}

// At returns the entry at position i in insertion order, or nil when out of
// range. Position order equals id order, which is capture order.
func (s *Store) At(i int) *Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.entries) {
		return nil
	}
	return s.entries[i]
}

// Entries returns a snapshot of all entries in insertion order.
func (s *Store) Entries() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// ByHost returns the ids of entries for the given host, in id order.
// No match yields an empty slice, never an error.
func (s *Store) ByHost(host string) []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyIDs(s.byHost[host])
}

// ByStatus returns the ids of entries with the given response status code.
func (s *Store) ByStatus(code int) []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyIDs(s.byStatus[code])
}

// ByMime returns the ids of entries with the given capture-tool mime type.
func (s *Store) ByMime(mime string) []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyIDs(s.byMime[mime])
}

// Meta returns the export document metadata.
func (s *Store) Meta() burpxml.Meta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meta
}

// Diagnostics returns stream-scoped diagnostics: issues such as trailing
// truncation or a canceled load that belong to the stream rather than to
// any single entry.
func (s *Store) Diagnostics() []Diagnostic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Diagnostic, len(s.diags))
	copy(out, s.diags)
	return out
}

func (s *Store) setMeta(m burpxml.Meta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta = m
}

func (s *Store) addDiagnostic(d Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diags = append(s.diags, d)
}

func copyIDs(ids []int64) []int64 {
	out := make([]int64, len(ids))
	copy(out, ids)
	return out
}

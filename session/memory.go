package session

import "sync"

// MemoryStore keeps sessions in memory only. Used by tests and by callers
// that do not want credentials written to disk.
type MemoryStore struct {
	mu   sync.Mutex
	recs map[Audience]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{recs: make(map[Audience]Record)}
}

func (m *MemoryStore) Set(aud Audience, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[aud] = rec
	return nil
}

func (m *MemoryStore) Get(aud Audience) (Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[aud]
	return rec, ok, nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = make(map[Audience]Record)
	return nil
}

package session

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/sunburst/pkg/errors"
)

// MemoryStore is an in-process [Store].
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	onRemove func(id string)
}

// NewMemoryStore returns an empty store. Sessions idle for longer than ttl
// are removed by Cleanup; a non-positive ttl keeps them forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// OnRemove registers fn to run, outside the store's lock, for every session
// removed by Delete or Cleanup.
func (m *MemoryStore) OnRemove(fn func(id string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onRemove = fn
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok || m.expired(s) {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "no chart with id %q", id)
	}
	return s, nil
}

func (m *MemoryStore) Put(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	fn := m.onRemove
	m.mu.Unlock()
	if ok && fn != nil {
		fn(id)
	}
	return nil
}

func (m *MemoryStore) Each(ctx context.Context, fn func(*Session)) {
	m.mu.RLock()
	all := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.mu.RUnlock()
	for _, s := range all {
		fn(s)
	}
}

func (m *MemoryStore) Cleanup(ctx context.Context) (int, error) {
	m.mu.Lock()
	var removed []string
	for id, s := range m.sessions {
		if m.expired(s) {
			delete(m.sessions, id)
			removed = append(removed, id)
		}
	}
	fn := m.onRemove
	m.mu.Unlock()
	if fn != nil {
		for _, id := range removed {
			fn(id)
		}
	}
	return len(removed), nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// RunCleanup calls Cleanup every interval until ctx is done.
func (m *MemoryStore) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = m.Cleanup(ctx)
		}
	}
}

func (m *MemoryStore) expired(s *Session) bool {
	return m.ttl > 0 && m.now().Sub(s.LastAccess()) > m.ttl
}

var _ Store = (*MemoryStore)(nil)

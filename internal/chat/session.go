package chat

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/infra/cache"
)

var ErrSessionNotFound = errors.New("chat session not found")

type Session struct {
	ID        string    `json:"id"`
	State     State     `json:"state"`
	Context   Context   `json:"context"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionStore keeps conversations between turns. Sessions idle for longer
// than the store's TTL disappear.
type SessionStore interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
}

// ======================================================
// MEMORY
// ======================================================

type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	ttl      time.Duration
	now      func() time.Time
}

func NewMemorySessionStore(ttl time.Duration, now func() time.Time) *MemorySessionStore {
	if now == nil {
		now = time.Now
	}
	return &MemorySessionStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
		now:      now,
	}
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok || m.expired(s) {
		delete(m.sessions, id)
		return nil, ErrSessionNotFound
	}
	return &s, nil
}

func (m *MemorySessionStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s.UpdatedAt = m.now()
	cp := *s
	cp.Context.Offered = append([]string(nil), s.Context.Offered...)
	m.sessions[s.ID] = cp
	return nil
}

func (m *MemorySessionStore) expired(s Session) bool {
	return m.ttl > 0 && m.now().Sub(s.UpdatedAt) > m.ttl
}

// Sweep drops expired sessions and returns how many were removed.
func (m *MemorySessionStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, s := range m.sessions {
		if m.expired(s) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// RunJanitor sweeps every interval until ctx is done.
func (m *MemorySessionStore) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Sweep()
		case <-ctx.Done():
			return
		}
	}
}

// ======================================================
// REDIS
// ======================================================

const sessionKeyPrefix = "chat:session:"

type RedisSessionStore struct {
	kv  cache.KV
	ttl time.Duration
	now func() time.Time
}

func NewRedisSessionStore(kv cache.KV, ttl time.Duration, now func() time.Time) *RedisSessionStore {
	if now == nil {
		now = time.Now
	}
	return &RedisSessionStore{kv: kv, ttl: ttl, now: now}
}

func (r *RedisSessionStore) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := r.kv.Get(ctx, sessionKeyPrefix+id)
	if errors.Is(err, cache.ErrMiss) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *RedisSessionStore) Save(ctx context.Context, s *Session) error {
	s.UpdatedAt = r.now()
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, sessionKeyPrefix+s.ID, raw, r.ttl)
}

var (
	_ SessionStore = (*MemorySessionStore)(nil)
	_ SessionStore = (*RedisSessionStore)(nil)
)

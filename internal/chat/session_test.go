package chat

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/infra/cache"
)

type mapKV struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMapKV() *mapKV {
	return &mapKV{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *mapKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return v, nil
}

func (m *mapKV) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *mapKV) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func TestMemorySessionStore_TTL(t *testing.T) {
	now := monday
	store := NewMemorySessionStore(30*time.Minute, func() time.Time { return now })
	ctx := context.Background()

	s := &Session{ID: "s1", State: StateSelectTime, Context: Context{Offered: []string{"09:00"}}}
	require.NoError(t, store.Save(ctx, s))

	// callers cannot mutate the stored copy
	s.Context.Offered[0] = "23:00"

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, StateSelectTime, got.State)
	assert.Equal(t, []string{"09:00"}, got.Context.Offered)

	now = now.Add(31 * time.Minute)
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, store.Save(ctx, &Session{ID: "s2"}))
	now = now.Add(time.Hour)
	assert.Equal(t, 1, store.Sweep())
}

func TestRedisSessionStore(t *testing.T) {
	kv := newMapKV()
	store := NewRedisSessionStore(kv, time.Hour, func() time.Time { return monday })
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, store.Save(ctx, &Session{
		ID:      "abc",
		State:   StateConfirm,
		Context: Context{BarberID: "1", Date: "2026-10-20", Time: "09:45"},
	}))
	assert.Equal(t, time.Hour, kv.ttls["chat:session:abc"])

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, StateConfirm, got.State)
	assert.Equal(t, "09:45", got.Context.Time)
	assert.True(t, monday.Equal(got.UpdatedAt))
}

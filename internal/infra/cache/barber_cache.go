package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// the list and single barbers live under different prefixes so no barber
// id can land on the list key
const (
	barberListKey   = "barbers:list"
	barberKeyPrefix = "barber:"
)

// BarberRegistry is a read-through cache in front of another registry.
// Every write goes to the inner registry first and then drops the cached
// copies, so slot generation never sees a schedule older than the TTL.
type BarberRegistry struct {
	inner domain.BarberRegistry
	kv    KV
	ttl   time.Duration
	log   *zap.Logger
}

func NewBarberRegistry(
	inner domain.BarberRegistry,
	kv KV,
	ttl time.Duration,
	log *zap.Logger,
) *BarberRegistry {
	return &BarberRegistry{inner: inner, kv: kv, ttl: ttl, log: log}
}

func (c *BarberRegistry) ListBarbers(ctx context.Context) ([]models.Barber, error) {
	var cached []models.Barber
	if c.load(ctx, barberListKey, &cached) {
		return cached, nil
	}

	barbers, err := c.inner.ListBarbers(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, barberListKey, barbers)
	return barbers, nil
}

func (c *BarberRegistry) GetBarber(ctx context.Context, id string) (*models.Barber, error) {
	var cached models.Barber
	if c.load(ctx, barberKeyPrefix+id, &cached) {
		return &cached, nil
	}

	b, err := c.inner.GetBarber(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, barberKeyPrefix+id, b)
	return b, nil
}

func (c *BarberRegistry) CreateBarber(ctx context.Context, b *models.Barber) error {
	if err := c.inner.CreateBarber(ctx, b); err != nil {
		return err
	}
	c.invalidate(ctx, b.ID)
	return nil
}

func (c *BarberRegistry) UpdateBarber(ctx context.Context, b *models.Barber) error {
	if err := c.inner.UpdateBarber(ctx, b); err != nil {
		return err
	}
	c.invalidate(ctx, b.ID)
	return nil
}

func (c *BarberRegistry) DeleteBarber(ctx context.Context, id string) error {
	if err := c.inner.DeleteBarber(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

// cache failures degrade to the inner registry, never to an error
func (c *BarberRegistry) load(ctx context.Context, key string, dst any) bool {
	raw, err := c.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			c.log.Warn("barber cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.log.Warn("barber cache decode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *BarberRegistry) store(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.kv.Set(ctx, key, raw, c.ttl); err != nil {
		c.log.Warn("barber cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *BarberRegistry) invalidate(ctx context.Context, id string) {
	if err := c.kv.Del(ctx, barberListKey, barberKeyPrefix+id); err != nil {
		c.log.Warn("barber cache invalidation failed", zap.String("barber_id", id), zap.Error(err))
	}
}

// Compile-time check
var _ domain.BarberRegistry = (*BarberRegistry)(nil)

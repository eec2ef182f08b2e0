package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"travel-persona/internal/domain"
)

// PersonaCache guarda la clasificacion mas reciente por usuario.
// Es solo un atajo de lectura: la fuente de verdad sigue siendo postgres.
type PersonaCache interface {
	Get(ctx context.Context, userID string) (domain.PersonaResult, bool, error)
	Set(ctx context.Context, result domain.PersonaResult) error
	Invalidate(ctx context.Context, userID string) error
}

type memoryPersonaCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]memoryCacheEntry
}

type memoryCacheEntry struct {
	result    domain.PersonaResult
	expiresAt time.Time
}

func NewMemoryPersonaCache(ttl time.Duration) PersonaCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &memoryPersonaCache{
		ttl:   ttl,
		items: make(map[string]memoryCacheEntry),
	}
}

func (c *memoryPersonaCache) Get(_ context.Context, userID string) (domain.PersonaResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.items[userID]
	if !ok {
		return domain.PersonaResult{}, false, nil
	}
	if time.Now().UTC().After(entry.expiresAt) {
		delete(c.items, userID)
		return domain.PersonaResult{}, false, nil
	}
	return entry.result, true, nil
}

func (c *memoryPersonaCache) Set(_ context.Context, result domain.PersonaResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[result.UserID] = memoryCacheEntry{
		result:    result,
		expiresAt: time.Now().UTC().Add(c.ttl),
	}
	return nil
}

func (c *memoryPersonaCache) Invalidate(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, userID)
	return nil
}

type redisPersonaCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisPersonaCache(client *redis.Client, ttl time.Duration) PersonaCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &redisPersonaCache{
		client: client,
		ttl:    ttl,
		prefix: "persona:latest:",
	}
}

func (c *redisPersonaCache) Get(ctx context.Context, userID string) (domain.PersonaResult, bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+userID).Bytes()
	if err == redis.Nil {
		return domain.PersonaResult{}, false, nil
	}
	if err != nil {
		return domain.PersonaResult{}, false, err
	}

	var result domain.PersonaResult
	if err := json.Unmarshal(raw, &result); err != nil {
		// Entrada corrupta: se descarta y se vuelve a la fuente de verdad.
		_ = c.client.Del(ctx, c.prefix+userID).Err()
		return domain.PersonaResult{}, false, nil
	}
	return result, true, nil
}

func (c *redisPersonaCache) Set(ctx context.Context, result domain.PersonaResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+result.UserID, raw, c.ttl).Err()
}

func (c *redisPersonaCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.prefix+userID).Err()
}

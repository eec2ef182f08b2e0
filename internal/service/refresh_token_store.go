package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKeyPrefix = "travel-persona"

// RefreshTokenStore guarda los jti de refresh tokens vigentes, asociados al
// usuario dueño. Revocar un jti invalida ese token; revocar por usuario cierra
// todas sus sesiones abiertas.
type RefreshTokenStore interface {
	Store(jti, userID string, ttl time.Duration) error
	Exists(jti string) (bool, error)
	Revoke(jti string) error
	RevokeAllForUser(userID string) error
}

type refreshEntry struct {
	userID    string
	expiresAt time.Time
}

type memoryRefreshTokenStore struct {
	mu    sync.Mutex
	items map[string]refreshEntry
}

func NewMemoryRefreshTokenStore() RefreshTokenStore {
	return &memoryRefreshTokenStore{
		items: make(map[string]refreshEntry),
	}
}

func (s *memoryRefreshTokenStore) Store(jti, userID string, ttl time.Duration) error {
	if strings.TrimSpace(jti) == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[jti] = refreshEntry{
		userID:    userID,
		expiresAt: time.Now().UTC().Add(ttl),
	}
	return nil
}

func (s *memoryRefreshTokenStore) Exists(jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.items[jti]
	if !ok {
		return false, nil
	}
	if time.Now().UTC().After(entry.expiresAt) {
		delete(s.items, jti)
		return false, nil
	}
	return true, nil
}

func (s *memoryRefreshTokenStore) Revoke(jti string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, jti)
	return nil
}

func (s *memoryRefreshTokenStore) RevokeAllForUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for jti, entry := range s.items {
		if entry.userID == userID {
			delete(s.items, jti)
		}
	}
	return nil
}

// redisTokenCommands es el subconjunto de *redis.Client que usa el store.
// Tenerlo como interfaz permite testear sin un redis real.
type redisTokenCommands interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

type redisRefreshTokenStore struct {
	client      redisTokenCommands
	tokenPrefix string
	userPrefix  string
}

// NewRedisRefreshTokenStore arma un store con prefijo de claves configurable,
// para poder compartir el redis con otros servicios sin colisiones.
func NewRedisRefreshTokenStore(client *redis.Client, keyPrefix string) RefreshTokenStore {
	if client == nil {
		return nil
	}
	keyPrefix = strings.TrimSpace(keyPrefix)
	if keyPrefix == "" {
		keyPrefix = defaultRedisKeyPrefix
	}
	return &redisRefreshTokenStore{
		client:      client,
		tokenPrefix: keyPrefix + ":auth:refresh:",
		userPrefix:  keyPrefix + ":auth:sessions:",
	}
}

func (s *redisRefreshTokenStore) Store(jti, userID string, ttl time.Duration) error {
	if strings.TrimSpace(jti) == "" {
		return nil
	}
	ctx, cancel := storeContext()
	defer cancel()
	if err := s.client.Set(ctx, s.tokenPrefix+jti, userID, ttl).Err(); err != nil {
		return err
	}
	if strings.TrimSpace(userID) == "" {
		return nil
	}
	// El set por usuario permite cerrar todas sus sesiones sin escanear claves.
	// Los miembros pueden sobrevivir al token: Exists consulta la clave del jti.
	if err := s.client.SAdd(ctx, s.userPrefix+userID, jti).Err(); err != nil {
		return err
	}
	return s.client.Expire(ctx, s.userPrefix+userID, ttl).Err()
}

func (s *redisRefreshTokenStore) Exists(jti string) (bool, error) {
	if strings.TrimSpace(jti) == "" {
		return false, nil
	}
	ctx, cancel := storeContext()
	defer cancel()
	n, err := s.client.Exists(ctx, s.tokenPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisRefreshTokenStore) Revoke(jti string) error {
	if strings.TrimSpace(jti) == "" {
		return nil
	}
	ctx, cancel := storeContext()
	defer cancel()
	return s.client.Del(ctx, s.tokenPrefix+jti).Err()
}

func (s *redisRefreshTokenStore) RevokeAllForUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return nil
	}
	ctx, cancel := storeContext()
	defer cancel()
	jtis, err := s.client.SMembers(ctx, s.userPrefix+userID).Result()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(jtis)+1)
	for _, jti := range jtis {
		keys = append(keys, s.tokenPrefix+jti)
	}
	keys = append(keys, s.userPrefix+userID)
	return s.client.Del(ctx, keys...).Err()
}

func storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 500*time.Millisecond)
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockRedisTokenClient struct {
	lastSetKey  string
	lastSetVal  interface{}
	lastSetTTL  time.Duration
	lastSAddKey string
	lastExists  []string
	lastDel     []string
	members     []string

	setErr    error
	existsErr error
	delErr    error
	existsN   int64
}

func (m *mockRedisTokenClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.lastSetKey = key
	m.lastSetVal = value
	m.lastSetTTL = expiration
	cmd := redis.NewStatusCmd(ctx)
	if m.setErr != nil {
		cmd.SetErr(m.setErr)
		return cmd
	}
	cmd.SetVal("OK")
	return cmd
}

func (m *mockRedisTokenClient) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	m.lastExists = keys
	cmd := redis.NewIntCmd(ctx)
	if m.existsErr != nil {
		cmd.SetErr(m.existsErr)
		return cmd
	}
	cmd.SetVal(m.existsN)
	return cmd
}

func (m *mockRedisTokenClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.lastDel = keys
	cmd := redis.NewIntCmd(ctx)
	if m.delErr != nil {
		cmd.SetErr(m.delErr)
		return cmd
	}
	cmd.SetVal(int64(len(keys)))
	return cmd
}

func (m *mockRedisTokenClient) SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd {
	m.lastSAddKey = key
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(int64(len(members)))
	return cmd
}

func (m *mockRedisTokenClient) SMembers(ctx context.Context, key string) *redis.StringSliceCmd {
	cmd := redis.NewStringSliceCmd(ctx)
	cmd.SetVal(m.members)
	return cmd
}

func (m *mockRedisTokenClient) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx)
	cmd.SetVal(true)
	return cmd
}

func TestMemoryRefreshTokenStore_Basics(t *testing.T) {
	store := NewMemoryRefreshTokenStore()

	ok, err := store.Exists("missing")
	if err != nil || ok {
		t.Fatalf("expected missing token false,nil; got %v,%v", ok, err)
	}

	if err := store.Store("jti-1", "u1", 50*time.Millisecond); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	ok, err = store.Exists("jti-1")
	if err != nil || !ok {
		t.Fatalf("expected token exists, got %v,%v", ok, err)
	}

	time.Sleep(70 * time.Millisecond)
	ok, err = store.Exists("jti-1")
	if err != nil || ok {
		t.Fatalf("expected token expired, got %v,%v", ok, err)
	}
}

func TestMemoryRefreshTokenStore_RevokeAndEmptyJTI(t *testing.T) {
	store := NewMemoryRefreshTokenStore()
	if err := store.Store("", "u1", time.Minute); err != nil {
		t.Fatalf("empty jti store should be no-op, got %v", err)
	}
	if err := store.Store("jti-2", "u1", time.Minute); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if err := store.Revoke("jti-2"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	ok, err := store.Exists("jti-2")
	if err != nil || ok {
		t.Fatalf("expected revoked token absent, got %v,%v", ok, err)
	}
}

func TestMemoryRefreshTokenStore_RevokeAllOnlyTouchesThatUser(t *testing.T) {
	store := NewMemoryRefreshTokenStore()
	for _, jti := range []string{"u1-a", "u1-b"} {
		if err := store.Store(jti, "u1", time.Minute); err != nil {
			t.Fatalf("store failed: %v", err)
		}
	}
	if err := store.Store("u2-a", "u2", time.Minute); err != nil {
		t.Fatalf("store failed: %v", err)
	}

	if err := store.RevokeAllForUser("u1"); err != nil {
		t.Fatalf("revoke all failed: %v", err)
	}
	for _, jti := range []string{"u1-a", "u1-b"} {
		if ok, _ := store.Exists(jti); ok {
			t.Fatalf("expected %q revoked", jti)
		}
	}
	if ok, _ := store.Exists("u2-a"); !ok {
		t.Fatalf("expected other user's session to survive")
	}
}

func TestRedisRefreshTokenStore_KeysCarryConfiguredPrefix(t *testing.T) {
	mock := &mockRedisTokenClient{existsN: 1}
	store := &redisRefreshTokenStore{
		client:      mock,
		tokenPrefix: "staging:auth:refresh:",
		userPrefix:  "staging:auth:sessions:",
	}

	if err := store.Store("j1", "u1", time.Minute); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if mock.lastSetKey != "staging:auth:refresh:j1" {
		t.Fatalf("unexpected token key, got %q", mock.lastSetKey)
	}
	if mock.lastSetVal != "u1" {
		t.Fatalf("expected owner stored as value, got %v", mock.lastSetVal)
	}
	if mock.lastSAddKey != "staging:auth:sessions:u1" {
		t.Fatalf("unexpected session set key, got %q", mock.lastSAddKey)
	}

	ok, err := store.Exists("j1")
	if err != nil || !ok {
		t.Fatalf("expected exists true,nil; got %v,%v", ok, err)
	}
	if len(mock.lastExists) != 1 || mock.lastExists[0] != "staging:auth:refresh:j1" {
		t.Fatalf("unexpected exists key: %+v", mock.lastExists)
	}

	if err := store.Revoke("j1"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if len(mock.lastDel) != 1 || mock.lastDel[0] != "staging:auth:refresh:j1" {
		t.Fatalf("unexpected del key: %+v", mock.lastDel)
	}
}

func TestRedisRefreshTokenStore_RevokeAllDeletesEverySessionKey(t *testing.T) {
	mock := &mockRedisTokenClient{members: []string{"j1", "j2"}}
	store := &redisRefreshTokenStore{
		client:      mock,
		tokenPrefix: "tp:auth:refresh:",
		userPrefix:  "tp:auth:sessions:",
	}

	if err := store.RevokeAllForUser("u1"); err != nil {
		t.Fatalf("revoke all failed: %v", err)
	}
	want := []string{"tp:auth:refresh:j1", "tp:auth:refresh:j2", "tp:auth:sessions:u1"}
	if len(mock.lastDel) != len(want) {
		t.Fatalf("expected %d deleted keys, got %+v", len(want), mock.lastDel)
	}
	for i, key := range want {
		if mock.lastDel[i] != key {
			t.Fatalf("expected deleted key %q at %d, got %q", key, i, mock.lastDel[i])
		}
	}
}

func TestRedisRefreshTokenStore_ErrorPathsAndEmptyJTI(t *testing.T) {
	mock := &mockRedisTokenClient{
		setErr:    errors.New("set failed"),
		existsErr: errors.New("exists failed"),
		delErr:    errors.New("del failed"),
	}
	store := &redisRefreshTokenStore{
		client:      mock,
		tokenPrefix: "tp:auth:refresh:",
		userPrefix:  "tp:auth:sessions:",
	}

	if err := store.Store("", "u1", time.Minute); err != nil {
		t.Fatalf("empty jti store should be no-op, got %v", err)
	}
	ok, err := store.Exists("")
	if err != nil || ok {
		t.Fatalf("empty jti exists should be false,nil; got %v,%v", ok, err)
	}
	if err := store.Revoke(""); err != nil {
		t.Fatalf("empty jti revoke should be no-op, got %v", err)
	}
	if err := store.RevokeAllForUser(""); err != nil {
		t.Fatalf("empty user revoke-all should be no-op, got %v", err)
	}

	if err := store.Store("j2", "u1", time.Minute); err == nil {
		t.Fatalf("expected store error")
	}
	if _, err := store.Exists("j2"); err == nil {
		t.Fatalf("expected exists error")
	}
	if err := store.Revoke("j2"); err == nil {
		t.Fatalf("expected revoke error")
	}
}

func TestNewRedisRefreshTokenStore_DefaultsPrefixAndNilClient(t *testing.T) {
	if store := NewRedisRefreshTokenStore(nil, "whatever"); store != nil {
		t.Fatalf("expected nil store without client")
	}

	store, ok := NewRedisRefreshTokenStore(redis.NewClient(&redis.Options{}), "  ").(*redisRefreshTokenStore)
	if !ok {
		t.Fatalf("expected redis-backed store")
	}
	if store.tokenPrefix != "travel-persona:auth:refresh:" {
		t.Fatalf("unexpected default token prefix %q", store.tokenPrefix)
	}
	if store.userPrefix != "travel-persona:auth:sessions:" {
		t.Fatalf("unexpected default session prefix %q", store.userPrefix)
	}
}

// internal/pkg/session/redis_storage.go
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage persists session pairs in Redis so sessions survive portal
// restarts. Both keys are written and deleted in a single pipeline so the
// pairing invariant holds even if the portal dies mid-operation.
type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStorage(client *redis.Client, ttl time.Duration) *RedisStorage {
	return &RedisStorage{client: client, ttl: ttl}
}

func (s *RedisStorage) SetPair(ctx context.Context, sid, token, role string) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(sid, TokenKey), token, s.ttl)
	pipe.Set(ctx, s.key(sid, RoleKey), role, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store session pair: %w", err)
	}
	return nil
}

func (s *RedisStorage) GetPair(ctx context.Context, sid string) (string, string, error) {
	values, err := s.client.MGet(ctx, s.key(sid, TokenKey), s.key(sid, RoleKey)).Result()
	if err != nil {
		return "", "", fmt.Errorf("failed to read session pair: %w", err)
	}

	token := stringValue(values[0])
	role := stringValue(values[1])
	return token, role, nil
}

func (s *RedisStorage) DeletePair(ctx context.Context, sid string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(sid, TokenKey))
	pipe.Del(ctx, s.key(sid, RoleKey))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session pair: %w", err)
	}
	return nil
}

func (s *RedisStorage) key(sid, name string) string {
	return fmt.Sprintf("portal:session:%s:%s", sid, name)
}

func stringValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

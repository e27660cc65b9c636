package token

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const refreshKeyPrefix = "auth:refresh:"

// RedisRefreshTokenStore keeps refresh records in Redis with a TTL matching
// the token lifetime. GETDEL gives the atomic single-use consume.
type RedisRefreshTokenStore struct {
	rdb *redis.Client
}

func NewRedisRefreshTokenStore(rdb *redis.Client) *RedisRefreshTokenStore {
	return &RedisRefreshTokenStore{rdb: rdb}
}

func (s *RedisRefreshTokenStore) Save(ctx context.Context, key string, rec RefreshRecord, ttl time.Duration) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, refreshKeyPrefix+key, b, ttl).Err()
}

func (s *RedisRefreshTokenStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.rdb.Exists(ctx, refreshKeyPrefix+key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisRefreshTokenStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, refreshKeyPrefix+key).Err()
}

func (s *RedisRefreshTokenStore) Consume(ctx context.Context, key string) (bool, error) {
	_, err := s.rdb.GetDel(ctx, refreshKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

var _ RefreshTokenStore = (*RedisRefreshTokenStore)(nil)

package repo

import (
	"context"
	"errors"

	redis "github.com/redis/go-redis/v9"
)

const redisOverridePrefix = "consumption_overrides:"

// RedisOverrideStore keeps overrides in one hash per owner. Entries never
// expire, matching the database store.
type RedisOverrideStore struct {
	Client *redis.Client
}

func NewRedisOverrideStore(client *redis.Client) *RedisOverrideStore {
	return &RedisOverrideStore{Client: client}
}

func (s *RedisOverrideStore) GetOverride(ctx context.Context, owner, key string) (string, bool, error) {
	v, err := s.Client.HGet(ctx, redisOverridePrefix+owner, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisOverrideStore) PutOverride(ctx context.Context, owner, key, value string) error {
	return s.Client.HSet(ctx, redisOverridePrefix+owner, key, value).Err()
}

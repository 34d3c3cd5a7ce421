package wizard

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "inquiry:wizard:"
	sessionTTL     = 24 * time.Hour

	fieldCurrent    = "current"
	fieldStepPrefix = "step:"
)

// RedisStore keeps wizard session state in one redis hash per session,
// expiring with the browser session's natural lifetime.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) key(sessionID string) string {
	return redisKeyPrefix + sessionID
}

func (s *RedisStore) Current(ctx context.Context, sessionID string) (Step, bool, error) {
	value, err := s.client.HGet(ctx, s.key(sessionID), fieldCurrent).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	step, ok := ParseStep(value)
	return step, ok, nil
}

func (s *RedisStore) SetCurrent(ctx context.Context, sessionID string, step Step) error {
	key := s.key(sessionID)
	if err := s.client.HSet(ctx, key, fieldCurrent, string(step)).Err(); err != nil {
		return err
	}
	return s.client.Expire(ctx, key, sessionTTL).Err()
}

func (s *RedisStore) StepData(ctx context.Context, sessionID string, step Step) (json.RawMessage, bool, error) {
	value, err := s.client.HGet(ctx, s.key(sessionID), fieldStepPrefix+string(step)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return json.RawMessage(value), true, nil
}

func (s *RedisStore) SetStepData(ctx context.Context, sessionID string, step Step, data json.RawMessage) error {
	key := s.key(sessionID)
	if err := s.client.HSet(ctx, key, fieldStepPrefix+string(step), string(data)).Err(); err != nil {
		return err
	}
	return s.client.Expire(ctx, key, sessionTTL).Err()
}

func (s *RedisStore) Prefill(ctx context.Context, sessionID string) (map[string]string, error) {
	fields, err := s.client.HGetAll(ctx, s.key(sessionID)).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]string)
	for field, value := range fields {
		if strings.HasPrefix(field, PrefillKeyPrefix) {
			out[field] = value
		}
	}
	return out, nil
}

func (s *RedisStore) SetPrefill(ctx context.Context, sessionID, key, value string) error {
	hashKey := s.key(sessionID)
	if err := s.client.HSet(ctx, hashKey, key, value).Err(); err != nil {
		return err
	}
	return s.client.Expire(ctx, hashKey, sessionTTL).Err()
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}

package store

import (
	"context"

	"github.com/go-redis/redis/v8"
)

// RedisStore persists entries as plain Redis strings without expiry.
// Prefix scan uses SCAN with a MATCH glob, so keys must not contain glob
// metacharacters; the engine's namespaces (device:, check:, plan:,
// settings:) satisfy that.
type RedisStore struct {
	c *redis.Client
}

func NewRedisStore(c *redis.Client) *RedisStore { return &RedisStore{c: c} }

func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := r.c.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrNotFound
		}
		return "", err
	}
	return val, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	return r.c.Set(ctx, key, value, 0).Err()
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.c.Del(ctx, key).Err()
}

func (r *RedisStore) MGet(ctx context.Context, keys ...string) ([]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	raw, err := r.c.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			values = append(values, s)
		}
	}
	return values, nil
}

func (r *RedisStore) MSet(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	pairs := make([]interface{}, 0, len(entries)*2)
	for _, e := range entries {
		pairs = append(pairs, e.Key, e.Value)
	}
	return r.c.MSet(ctx, pairs...).Err()
}

func (r *RedisStore) ScanPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	var keys []string
	var cursor uint64
	for {
		k, next, err := r.c.Scan(ctx, cursor, prefix+"*", 200).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, k...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		val, err := r.c.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				// deleted between SCAN and GET
				continue
			}
			return nil, err
		}
		entries = append(entries, Entry{Key: key, Value: val})
	}
	return entries, nil
}

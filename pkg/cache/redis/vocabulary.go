package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/artem13815/resumematch/pkg/skill"
)

const defaultKey = "resumematch:vocabulary"

// VocabularyCache keeps the skill ontology snapshot in Redis as one JSON value.
type VocabularyCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewVocabularyCache wraps a connected client. A zero ttl stores without expiry.
func NewVocabularyCache(client *redis.Client, key string, ttl time.Duration) (*VocabularyCache, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	if key == "" {
		key = defaultKey
	}
	return &VocabularyCache{client: client, key: key, ttl: ttl}, nil
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (c *VocabularyCache) Get(ctx context.Context) ([]skill.Skill, bool, error) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get vocabulary from redis: %w", err)
	}
	entries, err := decodeEntries(raw)
	if err != nil {
		return nil, false, err
	}
	return entries, true, nil
}

func (c *VocabularyCache) Set(ctx context.Context, entries []skill.Skill) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("store vocabulary in redis: %w", err)
	}
	return nil
}

func (c *VocabularyCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("drop vocabulary from redis: %w", err)
	}
	return nil
}

func decodeEntries(raw []byte) ([]skill.Skill, error) {
	var entries []skill.Skill
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode cached vocabulary: %w", err)
	}
	return entries, nil
}

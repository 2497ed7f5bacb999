package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"genai-chat/internal/model"
)

// TurnsCache keeps a session's turns in redis so repeated session reads skip
// the aggregate query. Every write to a session deletes the key.
type TurnsCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewTurnsCache(client *redisv9.Client, ttl time.Duration) *TurnsCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &TurnsCache{client: client, ttl: ttl}
}

func (c *TurnsCache) Get(ctx context.Context, sessionID uint) ([]model.Chat, bool, error) {
	raw, err := c.client.Get(ctx, c.key(sessionID)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get turns failed: %w", err)
	}

	var turns []model.Chat
	if err := json.Unmarshal([]byte(raw), &turns); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached turns failed: %w", err)
	}
	return turns, true, nil
}

func (c *TurnsCache) Set(ctx context.Context, sessionID uint, turns []model.Chat) error {
	payload, err := json.Marshal(turns)
	if err != nil {
		return fmt.Errorf("marshal turns cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.key(sessionID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set turns failed: %w", err)
	}
	return nil
}

func (c *TurnsCache) Delete(ctx context.Context, sessionID uint) error {
	if err := c.client.Del(ctx, c.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete turns failed: %w", err)
	}
	return nil
}

func (c *TurnsCache) key(sessionID uint) string {
	return fmt.Sprintf("chat:turns:%d", sessionID)
}

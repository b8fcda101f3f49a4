package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"cvboost/internal/model"
)

// TranscriptCache keeps recently served session transcripts in redis. A
// short-lived dirty marker set on every write suppresses caching until the
// write settles, so a reader racing a turn cannot pin a stale transcript for
// the full TTL.
type TranscriptCache struct {
	client         *redisv9.Client
	transcriptTTL  time.Duration
	dirtyMarkerTTL time.Duration
}

func NewTranscriptCache(client *redisv9.Client, transcriptTTL, dirtyMarkerTTL time.Duration) *TranscriptCache {
	if transcriptTTL <= 0 {
		transcriptTTL = 60 * time.Second
	}
	if dirtyMarkerTTL <= 0 {
		dirtyMarkerTTL = 5 * time.Second
	}
	return &TranscriptCache{
		client:         client,
		transcriptTTL:  transcriptTTL,
		dirtyMarkerTTL: dirtyMarkerTTL,
	}
}

func (c *TranscriptCache) GetHistory(ctx context.Context, sessionID string) ([]model.Message, bool, error) {
	key := c.transcriptKey(sessionID)
	raw, err := c.client.Get(ctx, key).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get transcript failed: %w", err)
	}

	var messages []model.Message
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached transcript failed: %w", err)
	}
	return messages, true, nil
}

func (c *TranscriptCache) SetHistory(ctx context.Context, sessionID string, messages []model.Message) error {
	key := c.transcriptKey(sessionID)
	payload, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("marshal transcript cache failed: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.transcriptTTL).Err(); err != nil {
		return fmt.Errorf("redis set transcript failed: %w", err)
	}
	return nil
}

func (c *TranscriptCache) DeleteHistory(ctx context.Context, sessionID string) error {
	key := c.transcriptKey(sessionID)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete transcript failed: %w", err)
	}
	return nil
}

func (c *TranscriptCache) MarkDirty(ctx context.Context, sessionID string) error {
	key := c.dirtyKey(sessionID)
	if err := c.client.Set(ctx, key, "1", c.dirtyMarkerTTL).Err(); err != nil {
		return fmt.Errorf("redis set dirty marker failed: %w", err)
	}
	return nil
}

func (c *TranscriptCache) IsDirty(ctx context.Context, sessionID string) (bool, error) {
	key := c.dirtyKey(sessionID)
	exists, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis check dirty marker failed: %w", err)
	}
	return exists > 0, nil
}

func (c *TranscriptCache) transcriptKey(sessionID string) string {
	return "cv:transcript:" + sessionID
}

func (c *TranscriptCache) dirtyKey(sessionID string) string {
	return "cv:transcript:dirty:" + sessionID
}

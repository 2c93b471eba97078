package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyReactionCounts = "comment:reactions:%d"

// ReactionCache caches per-comment reaction tallies in Redis so thread
// listings don't hit the GROUP BY query on every read. A nil client makes
// every method a no-op, which keeps tests and cacheless deployments simple.
type ReactionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReactionCache(client *redis.Client, ttl time.Duration) *ReactionCache {
	return &ReactionCache{client: client, ttl: ttl}
}

// GetMany fetches cached counts for the given comment IDs with one MGET.
// IDs absent from the cache are returned in missing.
func (c *ReactionCache) GetMany(ctx context.Context, commentIDs []int64) (map[int64]ReactionCounts, []int64, error) {
	if c == nil || c.client == nil || len(commentIDs) == 0 {
		return map[int64]ReactionCounts{}, commentIDs, nil
	}

	keys := make([]string, len(commentIDs))
	for i, id := range commentIDs {
		keys[i] = fmt.Sprintf(keyReactionCounts, id)
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, commentIDs, err
	}

	found := make(map[int64]ReactionCounts, len(commentIDs))
	var missing []int64
	for i, val := range values {
		str, ok := val.(string)
		if !ok {
			missing = append(missing, commentIDs[i])
			continue
		}
		var counts ReactionCounts
		if err := json.Unmarshal([]byte(str), &counts); err != nil {
			missing = append(missing, commentIDs[i])
			continue
		}
		found[commentIDs[i]] = counts
	}
	return found, missing, nil
}

// SetMany stores counts for several comments. Comments absent from the map
// are cached as zero counts so they don't stay permanent cache misses.
func (c *ReactionCache) SetMany(ctx context.Context, counts map[int64]ReactionCounts, commentIDs []int64) error {
	if c == nil || c.client == nil {
		return nil
	}

	pipe := c.client.Pipeline()
	for _, id := range commentIDs {
		data, err := json.Marshal(counts[id])
		if err != nil {
			return err
		}
		pipe.Set(ctx, fmt.Sprintf(keyReactionCounts, id), data, c.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Invalidate drops the cached counts for a comment after its ledger changed.
func (c *ReactionCache) Invalidate(ctx context.Context, commentID int64) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, fmt.Sprintf(keyReactionCounts, commentID)).Err()
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const suggestionKeyPrefix = "suggestions:"

// SuggestionCache keeps ranked suggestion responses in Redis for a short
// TTL. A nil cache (Redis disabled or unreachable) is a transparent no-op,
// so callers never branch on availability.
type SuggestionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSuggestionCache(client *redis.Client, ttl time.Duration) *SuggestionCache {
	if client == nil {
		return nil
	}
	return &SuggestionCache{client: client, ttl: ttl}
}

func suggestionKey(strategy string, filters SuggestionFilters) string {
	return fmt.Sprintf("%s%s:%s:%s:%s",
		suggestionKeyPrefix, strategy, filters.Dietary, filters.Cuisine, filters.Difficulty)
}

// Get returns the cached ranking for the filter combination, if present.
func (c *SuggestionCache) Get(ctx context.Context, strategy string, filters SuggestionFilters) ([]RankedRecipe, bool) {
	if c == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, suggestionKey(strategy, filters)).Bytes()
	if err != nil {
		if err != redis.Nil {
			zap.L().Warn("suggestion cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var ranked []RankedRecipe
	if err := json.Unmarshal(payload, &ranked); err != nil {
		return nil, false
	}
	return ranked, true
}

// Set stores a ranking result. Failures are logged and swallowed.
func (c *SuggestionCache) Set(ctx context.Context, strategy string, filters SuggestionFilters, ranked []RankedRecipe) {
	if c == nil {
		return
	}
	payload, err := json.Marshal(ranked)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, suggestionKey(strategy, filters), payload, c.ttl).Err(); err != nil {
		zap.L().Warn("suggestion cache write failed", zap.Error(err))
	}
}

// Invalidate drops all cached suggestion entries. Called after rating and
// favorite writes, which change the ranking inputs.
func (c *SuggestionCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	keys, err := c.client.Keys(ctx, suggestionKeyPrefix+"*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		zap.L().Warn("suggestion cache invalidation failed", zap.Error(err))
	}
}

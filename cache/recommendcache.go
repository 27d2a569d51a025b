package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"escapenote-server/model"
	"github.com/redis/go-redis/v9"
)

const (
	RecommendExpiration = 24 * time.Hour

	recommendCafesKey  = "recommend:cafes"
	recommendThemesKey = "recommend:themes"
)

// RecommendCache keeps the daily recommendations so that every visitor of the
// day sees the same random pick
type RecommendCache struct {
	client     *redis.Client
	expiration time.Duration
}

func NewRecommendCache(client *redis.Client, expiration time.Duration) *RecommendCache {
	return &RecommendCache{
		client:     client,
		expiration: expiration,
	}
}

// GetCafes returns the cached cafes, the bool is false on a cache miss. A nil
// cache always misses.
func (c *RecommendCache) GetCafes(ctx context.Context) ([]model.Cafe, bool, error) {
	var cafes []model.Cafe
	found, err := c.get(ctx, recommendCafesKey, &cafes)
	return cafes, found, err
}

func (c *RecommendCache) SetCafes(ctx context.Context, cafes []model.Cafe) error {
	return c.set(ctx, recommendCafesKey, cafes)
}

func (c *RecommendCache) GetThemes(ctx context.Context) ([]model.Theme, bool, error) {
	var themes []model.Theme
	found, err := c.get(ctx, recommendThemesKey, &themes)
	return themes, found, err
}

func (c *RecommendCache) SetThemes(ctx context.Context, themes []model.Theme) error {
	return c.set(ctx, recommendThemesKey, themes)
}

func (c *RecommendCache) get(ctx context.Context, key string, value any) (bool, error) {
	if c == nil {
		return false, nil
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, value); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (c *RecommendCache) set(ctx context.Context, key string, value any) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return c.client.Set(ctx, key, data, c.expiration).Err()
}

// Flush drops the cached recommendations, used when the test database is reset
func (c *RecommendCache) Flush(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, recommendCafesKey, recommendThemesKey).Err()
}

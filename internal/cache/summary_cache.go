package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adiprw/fintrack/internal/domain"
	"github.com/adiprw/fintrack/pkg/errors"
)

// SummaryCache remembers the last successfully built summary so the
// aggregator can degrade to it when a fresh read fails.
type SummaryCache interface {
	Get(ctx context.Context) (*domain.DebtSummary, bool)
	Set(ctx context.Context, summary *domain.DebtSummary) error
}

const summaryKey = "fintrack:summary:last"

type RedisSummaryCache struct {
	client *redis.Client
}

func NewRedisSummaryCache(addr, password string, db int) *RedisSummaryCache {
	return &RedisSummaryCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (c *RedisSummaryCache) Get(ctx context.Context) (*domain.DebtSummary, bool) {
	raw, err := c.client.Get(ctx, summaryKey).Bytes()
	if err != nil {
		return nil, false
	}

	var summary domain.DebtSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, false
	}

	return &summary, true
}

func (c *RedisSummaryCache) Set(ctx context.Context, summary *domain.DebtSummary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return errors.WrapCacheError(err)
	}

	if err := c.client.Set(ctx, summaryKey, raw, 24*time.Hour).Err(); err != nil {
		return errors.WrapCacheError(err)
	}

	return nil
}

func (c *RedisSummaryCache) Close() error {
	return c.client.Close()
}

// MemorySummaryCache backs cache-less runs and tests.
type MemorySummaryCache struct {
	mu      sync.RWMutex
	summary *domain.DebtSummary
}

func NewMemorySummaryCache() *MemorySummaryCache {
	return &MemorySummaryCache{}
}

func (c *MemorySummaryCache) Get(_ context.Context) (*domain.DebtSummary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.summary == nil {
		return nil, false
	}
	return c.summary, true
}

func (c *MemorySummaryCache) Set(_ context.Context, summary *domain.DebtSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summary = summary
	return nil
}

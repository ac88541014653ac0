package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/domain"
)

const (
	keyClients   = "onboard:clients"
	keyPortfolio = "onboard:portfolio"
	keyStats     = "onboard:stats"
)

// SummaryCache caches the read-heavy cross-client views (client list,
// portfolio, stats) in Redis. Alerts are never cached; they are
// recomputed on every request.
type SummaryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSummaryCache(rdb *redis.Client, ttl time.Duration) *SummaryCache {
	return &SummaryCache{rdb: rdb, ttl: ttl}
}

// GetClients returns the cached client list or nil on miss.
func (c *SummaryCache) GetClients(ctx context.Context) ([]domain.ClientSummary, error) {
	var list []domain.ClientSummary
	ok, err := c.get(ctx, keyClients, &list)
	if err != nil || !ok {
		return nil, err
	}
	return list, nil
}

func (c *SummaryCache) SetClients(ctx context.Context, list []domain.ClientSummary) error {
	return c.set(ctx, keyClients, list)
}

// GetPortfolio returns the cached portfolio or nil on miss.
func (c *SummaryCache) GetPortfolio(ctx context.Context) ([]domain.PortfolioRow, error) {
	var list []domain.PortfolioRow
	ok, err := c.get(ctx, keyPortfolio, &list)
	if err != nil || !ok {
		return nil, err
	}
	return list, nil
}

func (c *SummaryCache) SetPortfolio(ctx context.Context, list []domain.PortfolioRow) error {
	return c.set(ctx, keyPortfolio, list)
}

// GetStats returns the cached stats, with ok=false on miss.
func (c *SummaryCache) GetStats(ctx context.Context) (domain.Stats, bool, error) {
	var stats domain.Stats
	ok, err := c.get(ctx, keyStats, &stats)
	return stats, ok, err
}

func (c *SummaryCache) SetStats(ctx context.Context, stats domain.Stats) error {
	return c.set(ctx, keyStats, stats)
}

// InvalidateAll drops every cached view; called after any mutation.
func (c *SummaryCache) InvalidateAll(ctx context.Context) error {
	return c.rdb.Del(ctx, keyClients, keyPortfolio, keyStats).Err()
}

func (c *SummaryCache) get(ctx context.Context, key string, dst any) (bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *SummaryCache) set(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

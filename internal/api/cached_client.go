// Package api provides the cached backend client used by the UI layers.
package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/backtest-console/internal/config"
	"github.com/yourusername/backtest-console/internal/models"
)

const (
	keyStrategies = "strategies"
	keyDatasets   = "datasets"
	keyBacktests  = "backtests"
	keyJobs       = "jobs"
	keySchema     = "schema:"
)

// CachedClient wraps Client with response caching for the collection endpoints.
// Refetch variants bypass and repopulate the cache, mirroring a manual refresh.
type CachedClient struct {
	client *Client
	cache  *QueryCache
	logger *logrus.Logger
}

// NewCachedClient creates a new cached backend client
func NewCachedClient(cfg *config.Config, logger *logrus.Logger) *CachedClient {
	return &CachedClient{
		client: NewClient(cfg, logger),
		cache:  NewQueryCache(cfg.CacheTTL(), cfg.Cache.MaxSize),
		logger: logger,
	}
}

// NewCachedClientWith wraps an existing client, used by tests
func NewCachedClientWith(client *Client, ttl time.Duration, maxSize int, logger *logrus.Logger) *CachedClient {
	return &CachedClient{
		client: client,
		cache:  NewQueryCache(ttl, maxSize),
		logger: logger,
	}
}

// ListStrategies returns strategies, from cache when fresh
func (c *CachedClient) ListStrategies(ctx context.Context) ([]models.Strategy, error) {
	if cached := c.cache.Get(keyStrategies); cached != nil {
		if strategies, ok := cached.([]models.Strategy); ok {
			return strategies, nil
		}
	}
	return c.RefetchStrategies(ctx)
}

// RefetchStrategies bypasses the cache and fetches strategies from the backend
func (c *CachedClient) RefetchStrategies(ctx context.Context) ([]models.Strategy, error) {
	strategies, err := c.client.ListStrategies(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Set(keyStrategies, strategies)
	return strategies, nil
}

// GetStrategySchema returns a strategy's parameter schema, from cache when fresh
func (c *CachedClient) GetStrategySchema(ctx context.Context, strategyID string) ([]models.ParameterSpec, error) {
	key := keySchema + strategyID
	if cached := c.cache.Get(key); cached != nil {
		if schema, ok := cached.([]models.ParameterSpec); ok {
			return schema, nil
		}
	}

	schema, err := c.client.GetStrategySchema(ctx, strategyID)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, schema)
	return schema, nil
}

// ListDatasets returns datasets, from cache when fresh
func (c *CachedClient) ListDatasets(ctx context.Context) ([]models.Dataset, error) {
	if cached := c.cache.Get(keyDatasets); cached != nil {
		if datasets, ok := cached.([]models.Dataset); ok {
			return datasets, nil
		}
	}
	return c.RefetchDatasets(ctx)
}

// RefetchDatasets bypasses the cache and fetches datasets from the backend
func (c *CachedClient) RefetchDatasets(ctx context.Context) ([]models.Dataset, error) {
	datasets, err := c.client.ListDatasets(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Set(keyDatasets, datasets)
	return datasets, nil
}

// ListBacktests returns backtests, from cache when fresh
func (c *CachedClient) ListBacktests(ctx context.Context, strategyID string) ([]models.Backtest, error) {
	key := keyBacktests + ":" + strategyID
	if cached := c.cache.Get(key); cached != nil {
		if backtests, ok := cached.([]models.Backtest); ok {
			return backtests, nil
		}
	}
	return c.RefetchBacktests(ctx, strategyID)
}

// RefetchBacktests bypasses the cache and fetches backtests from the backend
func (c *CachedClient) RefetchBacktests(ctx context.Context, strategyID string) ([]models.Backtest, error) {
	backtests, err := c.client.ListBacktests(ctx, strategyID)
	if err != nil {
		return nil, err
	}
	c.cache.Set(keyBacktests+":"+strategyID, backtests)
	return backtests, nil
}

// ListJobs returns jobs, from cache when fresh
func (c *CachedClient) ListJobs(ctx context.Context) ([]models.Job, error) {
	if cached := c.cache.Get(keyJobs); cached != nil {
		if jobs, ok := cached.([]models.Job); ok {
			return jobs, nil
		}
	}
	return c.RefetchJobs(ctx)
}

// RefetchJobs bypasses the cache and fetches jobs from the backend
func (c *CachedClient) RefetchJobs(ctx context.Context) ([]models.Job, error) {
	jobs, err := c.client.ListJobs(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Set(keyJobs, jobs)
	return jobs, nil
}

// SubmitJob submits a job and invalidates the collections it changes
func (c *CachedClient) SubmitJob(ctx context.Context, req SubmitJobRequest) (string, error) {
	jobID, err := c.client.SubmitJob(ctx, req)
	if err != nil {
		return "", err
	}

	c.cache.Invalidate(keyJobs)
	c.cache.Invalidate(keyBacktests + ":")
	c.cache.Invalidate(keyBacktests + ":" + req.StrategyID)
	return jobID, nil
}

// GetJob always hits the backend; job status is what polling observes
func (c *CachedClient) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	return c.client.GetJob(ctx, jobID)
}

// GetJobResult downloads the raw result payload of a completed job
func (c *CachedClient) GetJobResult(ctx context.Context, jobID string) (json.RawMessage, error) {
	return c.client.GetJobResult(ctx, jobID)
}

// GetJobStats always hits the backend
func (c *CachedClient) GetJobStats(ctx context.Context) (*models.JobStats, error) {
	return c.client.GetJobStats(ctx)
}

// GetBacktest fetches one backtest (not cached; detail views want fresh metrics)
func (c *CachedClient) GetBacktest(ctx context.Context, backtestID string) (*models.Backtest, error) {
	return c.client.GetBacktest(ctx, backtestID)
}

// GetChartSeries fetches the chart series of a backtest
func (c *CachedClient) GetChartSeries(ctx context.Context, backtestID string) (*models.ChartSeries, error) {
	return c.client.GetChartSeries(ctx, backtestID)
}

// DeleteBacktest deletes a backtest and invalidates backtest listings
func (c *CachedClient) DeleteBacktest(ctx context.Context, backtestID string) error {
	if err := c.client.DeleteBacktest(ctx, backtestID); err != nil {
		return err
	}
	c.cache.Invalidate(keyBacktests + ":")
	return nil
}

// RegisterDiscovered bulk-registers discovered entities
func (c *CachedClient) RegisterDiscovered(ctx context.Context, kind string, items []RegisterItem) (*RegisterReport, error) {
	report, err := c.client.RegisterDiscovered(ctx, kind, items)
	if err != nil {
		return nil, err
	}
	c.cache.Invalidate(keyStrategies)
	c.cache.Invalidate(keyDatasets)
	return report, nil
}

// CacheStats returns cache statistics
func (c *CachedClient) CacheStats() (hits, misses uint64, ratio float64) {
	return c.cache.Stats()
}

// ClearCache flushes all cached responses
func (c *CachedClient) ClearCache() {
	c.cache.Clear()
}

// Close closes the underlying client
func (c *CachedClient) Close() error {
	return c.client.Close()
}

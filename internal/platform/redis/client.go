package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"estatehub/internal/platform/config"
)

// Client is the shared Redis connection used by the session store.
type Client struct {
	*redis.Client
}

// New connects to Redis. It returns nil, nil when no URL is configured, in
// which case sessions live in Postgres.
func New(cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout+time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Client{Client: rdb}, nil
}

// Health is the readiness check for Redis.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// Collector exports connection pool statistics, read at scrape time.
func (c *Client) Collector() prometheus.Collector {
	return &poolCollector{stats: c.PoolStats}
}

var (
	poolHitsDesc = prometheus.NewDesc("estatehub_redis_pool_hits_total",
		"Free connections found in the pool.", nil, nil)

	poolMissesDesc = prometheus.NewDesc("estatehub_redis_pool_misses_total",
		"Connection requests the pool could not serve from idle connections.", nil, nil)

	poolTimeoutsDesc = prometheus.NewDesc("estatehub_redis_pool_timeouts_total",
		"Waits for a pool connection that timed out.", nil, nil)

	poolConnsDesc = prometheus.NewDesc("estatehub_redis_pool_conns",
		"Connections held by the pool, by state.", []string{"state"}, nil)
)

type poolCollector struct {
	stats func() *redis.PoolStats
}

func (p *poolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- poolHitsDesc
	ch <- poolMissesDesc
	ch <- poolTimeoutsDesc
	ch <- poolConnsDesc
}

func (p *poolCollector) Collect(ch chan<- prometheus.Metric) {
	s := p.stats()
	ch <- prometheus.MustNewConstMetric(poolHitsDesc, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(poolMissesDesc, prometheus.CounterValue, float64(s.Misses))
	ch <- prometheus.MustNewConstMetric(poolTimeoutsDesc, prometheus.CounterValue, float64(s.Timeouts))
	ch <- prometheus.MustNewConstMetric(poolConnsDesc, prometheus.GaugeValue, float64(s.IdleConns), "idle")
	ch <- prometheus.MustNewConstMetric(poolConnsDesc, prometheus.GaugeValue, float64(s.TotalConns-s.IdleConns), "in_use")
}

package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/polinatih/school-proj/config"
)

// Client wraps go-redis. It currently backs request rate limiting.
type Client struct {
	rdb    goredis.Cmdable
	closer func() error
	logger *zap.Logger
}

// NewClient connects and pings Redis.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, closer: rdb.Close, logger: logger}, nil
}

// NewFromCmdable wraps an existing go-redis client, e.g. a cluster client.
func NewFromCmdable(rdb goredis.Cmdable, logger *zap.Logger) *Client {
	return &Client{rdb: rdb, logger: logger}
}

// ── rate limiting ──

const rateLimitPrefix = "rate_limit:"

// CheckRateLimit records one hit for key and reports whether the caller is
// still within limit hits over the trailing window (sliding log on a sorted set).
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	fullKey := rateLimitPrefix + key
	member := strconv.FormatInt(now.UnixNano(), 10) + "-" + uuid.NewString()

	var count *goredis.IntCmd
	_, err := c.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, fullKey, "0", strconv.FormatInt(now.Add(-window).UnixNano(), 10))
		pipe.ZAdd(ctx, fullKey, goredis.Z{Score: float64(now.UnixNano()), Member: member})
		count = pipe.ZCard(ctx, fullKey)
		pipe.Expire(ctx, fullKey, window)
		return nil
	})
	if err != nil {
		return false, err
	}

	return count.Val() <= int64(limit), nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}

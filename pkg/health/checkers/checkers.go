// Package checkers holds readiness probes for the backing services.
package checkers

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const defaultTimeout = time.Second

// PingChecker reports a dependency as ready when its ping returns in time.
type PingChecker struct {
	name    string
	ping    func(ctx context.Context) error
	timeout time.Duration
}

func NewPingChecker(name string, ping func(ctx context.Context) error, timeout time.Duration) *PingChecker {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &PingChecker{name: name, ping: ping, timeout: timeout}
}

func NewPostgresChecker(pool *pgxpool.Pool) *PingChecker {
	return NewPingChecker("postgres", pool.Ping, defaultTimeout)
}

func NewRedisChecker(client *redis.Client) *PingChecker {
	return NewPingChecker("redis", func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}, defaultTimeout)
}

func (c *PingChecker) Name() string { return c.name }

func (c *PingChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := c.ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return ctx.Err()
}

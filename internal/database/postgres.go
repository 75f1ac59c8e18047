package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"go.uber.org/zap"

	"github.com/TemirB/figurine-cart/internal/config"
	"github.com/TemirB/figurine-cart/internal/pkg/retry"
)

// Connect opens a pool with SQL tracing routed to logger and retries the
// initial ping according to policy.
func Connect(ctx context.Context, dsn string, logger *zap.Logger, policy config.Retry) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.ConnConfig.Tracer = &tracelog.TraceLog{
		Logger:   NewZapTracer(logger),
		LogLevel: tracelog.LogLevelWarn,
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	err = retry.Do(ctx, policy, func(attempt int) error {
		if err := pool.Ping(ctx); err != nil {
			logger.Warn("postgres ping failed", zap.Int("attempt", attempt), zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

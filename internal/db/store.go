package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/migrate"
	"storefront/internal/repository/kv"
)

// Resources owns the connections behind the configured kv store.
type Resources struct {
	Store kv.Store

	cfg    config.Store
	pool   *pgxpool.Pool
	redis  *redis.Client
	logger *zap.Logger
}

// Open connects the backend named by cfg.Backend. Postgres schemas are
// migrated before the store is returned.
func Open(ctx context.Context, cfg config.Store, logger *zap.Logger) (*Resources, error) {
	r := &Resources{cfg: cfg, logger: logger}
	switch cfg.Backend {
	case config.BackendMemory:
		r.Store = kv.NewMemory()
	case config.BackendPostgres:
		pool, err := Connect(ctx, cfg.DBConnString)
		if err != nil {
			return nil, fmt.Errorf("connect db: %w", err)
		}
		if err := migrate.Apply(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		r.pool = pool
		r.Store = kv.NewPostgres(pool)
	case config.BackendRedis:
		client, err := r.Redis(ctx)
		if err != nil {
			return nil, err
		}
		r.Store = kv.NewRedis(client, cfg.RedisPrefix)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
	logger.Info("store opened", zap.String("backend", cfg.Backend))
	return r, nil
}

// Redis returns the shared redis client, connecting on first use.
func (r *Resources) Redis(ctx context.Context) (*redis.Client, error) {
	if r.redis != nil {
		return r.redis, nil
	}
	client, err := ConnectRedis(ctx, r.cfg)
	if err != nil {
		return nil, err
	}
	r.redis = client
	return client, nil
}

func (r *Resources) Close() {
	if r.redis != nil {
		if err := r.redis.Close(); err != nil {
			r.logger.Warn("close redis", zap.Error(err))
		}
	}
	if r.pool != nil {
		r.pool.Close()
	}
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/plm-api/pkg/config"
)

const (
	minConns          = 2
	maxConnLifetime   = time.Hour
	maxConnIdleTime   = 30 * time.Minute
	healthCheckPeriod = time.Minute
)

// NewPool abre el pool de PostgreSQL y verifica la conexión con un ping.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("host", poolConfig.ConnConfig.Host).
		Str("database", poolConfig.ConnConfig.Database).
		Int32("max_conns", poolConfig.MaxConns).
		Msg("pool PostgreSQL listo")
	return pool, nil
}

// PoolConfig traduce DBConfig a la configuración de pgxpool.
// DATABASE_URL tiene prioridad sobre los campos sueltos (ver DBConfig.ConnectionString).
func PoolConfig(cfg config.DBConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	poolConfig.MinConns = min(minConns, poolConfig.MaxConns)
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	return poolConfig, nil
}

// Package db opens the Postgres pool used by the history store and applies its schema.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"ats-backend/internal/shared/telemetry"
)

// Options tunes the pool and the startup connectivity check.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
	// PingAttempts > 1 retries the first ping, for databases that start alongside the API.
	PingAttempts int
	RetryDelay   time.Duration
}

var openDB = sql.Open

// DefaultServerOptions suits the long-running API process.
func DefaultServerOptions() Options {
	return Options{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 2 * time.Minute,
		PingTimeout:     5 * time.Second,
		PingAttempts:    3,
		RetryDelay:      time.Second,
	}
}

// DefaultMigrateOptions suits one-shot migration runs: a single connection, no retries.
func DefaultMigrateOptions() Options {
	opts := DefaultServerOptions()
	opts.MaxOpenConns = 1
	opts.MaxIdleConns = 1
	opts.PingAttempts = 1
	return opts
}

// OptionsFromEnv overrides defaults with the DB_* variables that are set and valid.
func OptionsFromEnv(defaults Options) Options {
	opts := defaults
	envInt("DB_MAX_OPEN_CONNS", &opts.MaxOpenConns)
	envInt("DB_MAX_IDLE_CONNS", &opts.MaxIdleConns)
	envInt("DB_PING_ATTEMPTS", &opts.PingAttempts)
	envDuration("DB_CONN_MAX_LIFETIME", &opts.ConnMaxLifetime)
	envDuration("DB_CONN_MAX_IDLE_TIME", &opts.ConnMaxIdleTime)
	envDuration("DB_PING_TIMEOUT", &opts.PingTimeout)
	envDuration("DB_RETRY_DELAY", &opts.RetryDelay)
	return opts
}

// Connect opens a pool for databaseURL and waits until it answers a ping. Callers share
// the returned *sql.DB for the life of the process.
func Connect(ctx context.Context, databaseURL string, opts Options) (*sql.DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, errors.New("DATABASE_URL is empty")
	}
	opts = opts.withDefaults()

	pool, err := openDB("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	pool.SetMaxOpenConns(opts.MaxOpenConns)
	pool.SetMaxIdleConns(opts.MaxIdleConns)
	pool.SetConnMaxLifetime(opts.ConnMaxLifetime)
	pool.SetConnMaxIdleTime(opts.ConnMaxIdleTime)

	if err := ping(ctx, pool, opts); err != nil {
		pool.Close()
		return nil, err
	}

	stats := pool.Stats()
	telemetry.Info("db.init", map[string]any{
		"max_open": stats.MaxOpenConnections,
		"open":     stats.OpenConnections,
		"idle":     stats.Idle,
	})
	return pool, nil
}

func ping(ctx context.Context, pool *sql.DB, opts Options) error {
	var err error
	for attempt := 1; attempt <= opts.PingAttempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, opts.PingTimeout)
		err = pool.PingContext(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		if attempt == opts.PingAttempts {
			break
		}
		telemetry.Info("db.ping_retry", map[string]any{"attempt": attempt, "error": err})
		select {
		case <-ctx.Done():
			return fmt.Errorf("ping database: %w", ctx.Err())
		case <-time.After(opts.RetryDelay):
		}
	}
	return fmt.Errorf("ping database: %w", err)
}

func (o Options) withDefaults() Options {
	def := DefaultServerOptions()
	if o.MaxOpenConns <= 0 {
		o.MaxOpenConns = def.MaxOpenConns
	}
	if o.MaxIdleConns <= 0 {
		o.MaxIdleConns = def.MaxIdleConns
	}
	if o.ConnMaxLifetime <= 0 {
		o.ConnMaxLifetime = def.ConnMaxLifetime
	}
	if o.PingTimeout <= 0 {
		o.PingTimeout = def.PingTimeout
	}
	if o.PingAttempts <= 0 {
		o.PingAttempts = 1
	}
	if o.RetryDelay < 0 {
		o.RetryDelay = 0
	}
	return o
}

func envInt(key string, dst *int) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		telemetry.Error("db.env.invalid", map[string]any{"key": key, "error": err})
		return
	}
	*dst = val
}

func envDuration(key string, dst *time.Duration) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		telemetry.Error("db.env.invalid", map[string]any{"key": key, "error": err})
		return
	}
	*dst = val
}

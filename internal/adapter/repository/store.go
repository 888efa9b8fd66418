// Package repository selects and wires the snapshot store backend.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/goreceipts/internal/adapter/repository/file"
	postgresrepo "github.com/iho/goreceipts/internal/adapter/repository/postgres"
	redisrepo "github.com/iho/goreceipts/internal/adapter/repository/redis"
	"github.com/iho/goreceipts/internal/adapter/repository/sqlite"
	"github.com/iho/goreceipts/internal/domain"
	"github.com/iho/goreceipts/internal/infrastructure/config"
	"github.com/iho/goreceipts/internal/infrastructure/metrics"
	"github.com/iho/goreceipts/internal/infrastructure/postgres"
	"github.com/iho/goreceipts/internal/infrastructure/redis"
	"github.com/iho/goreceipts/internal/usecase"
)

// Pinger is implemented by stores that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Backend is an opened snapshot store plus the resources it holds.
type Backend struct {
	Name  string
	Store *Instrumented
	// Idempotency is nil unless the backend is Redis.
	Idempotency usecase.IdempotencyStore

	closers []func() error
}

// Ping checks the underlying store.
func (b *Backend) Ping(ctx context.Context) error {
	return b.Store.Ping(ctx)
}

// Close releases connections in reverse order of opening.
func (b *Backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	return errors.Join(errs...)
}

// Open connects the store selected by cfg.StorageBackend.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger, m *metrics.Metrics) (*Backend, error) {
	b := &Backend{Name: cfg.StorageBackend}

	var store usecase.SnapshotStore

	switch cfg.StorageBackend {
	case config.StorageFile:
		fs, err := file.NewSnapshotStore(cfg.StorageDir)
		if err != nil {
			return nil, err
		}
		store = fs

	case config.StorageSQLite:
		ss, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, ss.Close)
		store = ss

	case config.StorageRedis:
		client, err := redis.NewClient(ctx, cfg.RedisURL, cfg.RedisConnectTimeout)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, client.Close)
		store = redisrepo.NewSnapshotStore(client)
		b.Idempotency = redisrepo.NewIdempotencyStore(client)

	case config.StoragePostgres:
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return nil, err
		}
		pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
			DatabaseURL: cfg.DatabaseURL,
			MaxConns:    cfg.DatabaseMaxConns,
			MinConns:    cfg.DatabaseMinConns,
		})
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() error {
			pool.Close()
			return nil
		})
		store = postgresrepo.NewSnapshotStore(pool, postgresrepo.WithRetrier(postgresrepo.NewRetrier(logger)))

	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", config.ErrInvalidConfig, cfg.StorageBackend)
	}

	b.Store = NewInstrumented(store, cfg.StorageBackend, logger, m)

	logger.Info().Str("backend", cfg.StorageBackend).Msg("snapshot store opened")

	return b, nil
}

// Instrumented wraps a SnapshotStore with logging and metrics.
type Instrumented struct {
	next    usecase.SnapshotStore
	backend string
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewInstrumented wraps next. A nil m disables metrics.
func NewInstrumented(next usecase.SnapshotStore, backend string, logger zerolog.Logger, m *metrics.Metrics) *Instrumented {
	return &Instrumented{
		next:    next,
		backend: backend,
		logger:  logger,
		metrics: m,
	}
}

// Load implements usecase.SnapshotStore.
func (s *Instrumented) Load(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	data, err := s.next.Load(ctx, key)
	s.observe("load", key, start, err)
	return data, err
}

// Save implements usecase.SnapshotStore.
func (s *Instrumented) Save(ctx context.Context, key string, data []byte) error {
	start := time.Now()
	err := s.next.Save(ctx, key, data)
	s.observe("save", key, start, err)
	return err
}

// Ping checks the wrapped store when it supports it.
func (s *Instrumented) Ping(ctx context.Context) error {
	p, ok := s.next.(Pinger)
	if !ok {
		return nil
	}
	return p.Ping(ctx)
}

func (s *Instrumented) observe(op, key string, start time.Time, err error) {
	// A missing snapshot is an expected first-run state, not a failure.
	failed := err != nil && !errors.Is(err, domain.ErrSnapshotNotFound)

	if s.metrics != nil {
		s.metrics.SnapshotOperations.WithLabelValues(s.backend, op).Inc()
		s.metrics.SnapshotDuration.WithLabelValues(s.backend, op).Observe(time.Since(start).Seconds())
		if failed {
			s.metrics.SnapshotErrors.WithLabelValues(s.backend, op).Inc()
		}
	}

	if failed {
		s.logger.Error().
			Err(err).
			Str("backend", s.backend).
			Str("operation", op).
			Str("key", key).
			Msg("snapshot store operation failed")
		return
	}

	s.logger.Debug().
		Str("backend", s.backend).
		Str("operation", op).
		Str("key", key).
		Dur("duration", time.Since(start)).
		Msg("snapshot store operation")
}

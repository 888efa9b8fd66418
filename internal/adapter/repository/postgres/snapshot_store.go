package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/goreceipts/internal/domain"
)

const (
	loadSnapshotSQL = `SELECT data FROM snapshots WHERE key = $1`

	saveSnapshotSQL = `
		INSERT INTO snapshots (key, data, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
)

type pgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

// SnapshotStore implements usecase.SnapshotStore on the snapshots table.
type SnapshotStore struct {
	db      pgxQuerier
	retrier *Retrier
	now     func() time.Time
}

// Option configures a SnapshotStore.
type Option func(*SnapshotStore)

// WithRetrier retries writes that fail with transient errors.
func WithRetrier(r *Retrier) Option {
	return func(s *SnapshotStore) {
		s.retrier = r
	}
}

// NewSnapshotStore creates a new SnapshotStore.
func NewSnapshotStore(pool *pgxpool.Pool, opts ...Option) *SnapshotStore {
	return newSnapshotStore(pool, opts...)
}

func newSnapshotStore(db pgxQuerier, opts ...Option) *SnapshotStore {
	s := &SnapshotStore{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load retrieves the snapshot stored under key.
func (s *SnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	if err := s.db.QueryRow(ctx, loadSnapshotSQL, key).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, err
	}
	return data, nil
}

// Save inserts or replaces the snapshot stored under key.
func (s *SnapshotStore) Save(ctx context.Context, key string, data []byte) error {
	save := func() error {
		_, err := s.db.Exec(ctx, saveSnapshotSQL, key, data, s.now().UTC())
		return err
	}
	if s.retrier == nil {
		return save()
	}
	return s.retrier.Retry(ctx, save)
}

// Ping checks the database connection.
func (s *SnapshotStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

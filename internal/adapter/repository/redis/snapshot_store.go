package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/iho/goreceipts/internal/domain"
)

// snapshotPrefix namespaces snapshot keys in a shared Redis.
const snapshotPrefix = "snapshot:"

// SnapshotStore implements usecase.SnapshotStore using Redis. Snapshots have
// no expiry.
type SnapshotStore struct {
	client *redis.Client
	prefix string
}

// NewSnapshotStore creates a new SnapshotStore.
func NewSnapshotStore(client *redis.Client) *SnapshotStore {
	return &SnapshotStore{
		client: client,
		prefix: snapshotPrefix,
	}
}

// Load retrieves the snapshot stored under key.
func (s *SnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Save overwrites the snapshot stored under key.
func (s *SnapshotStore) Save(ctx context.Context, key string, data []byte) error {
	return s.client.Set(ctx, s.prefix+key, data, 0).Err()
}

// Ping checks the connection.
func (s *SnapshotStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

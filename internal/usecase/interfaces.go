package usecase

import (
	"context"
	"io"
	"time"

	"github.com/iho/goreceipts/internal/domain"
	"github.com/iho/goreceipts/internal/receipt"
)

// SnapshotStore persists the whole record list as one opaque value per key.
// Load returns domain.ErrSnapshotNotFound when nothing was saved under key.
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// DocumentFactory creates empty documents sized for a layout.
type DocumentFactory interface {
	NewDocument(layout receipt.Layout) (receipt.Document, error)
}

// RecordExporter writes records in a tabular format.
type RecordExporter interface {
	ContentType() string
	Extension() string
	Export(w io.Writer, records []domain.Record) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

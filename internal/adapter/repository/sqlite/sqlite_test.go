package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/iho/goreceipts/internal/domain"
)

func TestSnapshotStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data", "receipts.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("Load missing key", func(t *testing.T) {
		if _, err := store.Load(ctx, "receiptEntries"); !errors.Is(err, domain.ErrSnapshotNotFound) {
			t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
		}
	})

	t.Run("Save then overwrite", func(t *testing.T) {
		if err := store.Save(ctx, "receiptEntries", []byte(`[{"id":"a"}]`)); err != nil {
			t.Fatalf("Save: %v", err)
		}
		if err := store.Save(ctx, "receiptEntries", []byte(`[{"id":"b"}]`)); err != nil {
			t.Fatalf("overwrite: %v", err)
		}

		data, err := store.Load(ctx, "receiptEntries")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if string(data) != `[{"id":"b"}]` {
			t.Fatalf("expected overwritten snapshot, got %s", data)
		}
	})

	t.Run("Keys are independent", func(t *testing.T) {
		if err := store.Save(ctx, "other", []byte(`[]`)); err != nil {
			t.Fatalf("Save: %v", err)
		}
		data, err := store.Load(ctx, "receiptEntries")
		if err != nil || string(data) != `[{"id":"b"}]` {
			t.Fatalf("unexpected snapshot %s err=%v", data, err)
		}
	})

	t.Run("Survives reopen", func(t *testing.T) {
		store.Close()

		reopened, err := New(dbPath)
		if err != nil {
			t.Fatalf("reopen: %v", err)
		}
		defer reopened.Close()

		data, err := reopened.Load(ctx, "receiptEntries")
		if err != nil || string(data) != `[{"id":"b"}]` {
			t.Fatalf("unexpected snapshot after reopen %s err=%v", data, err)
		}
		if err := reopened.Ping(ctx); err != nil {
			t.Fatalf("Ping: %v", err)
		}
	})
}

package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/iho/goreceipts/internal/domain"
)

func TestSnapshotStore_SaveAndLoad(t *testing.T) {
	store, err := NewSnapshotStore(filepath.Join(t.TempDir(), "nested", "data"))
	if err != nil {
		t.Fatalf("NewSnapshotStore: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Load(ctx, "receiptEntries"); !errors.Is(err, domain.ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}

	if err := store.Save(ctx, "receiptEntries", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, "receiptEntries", []byte(`[]`)); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	data, err := store.Load(ctx, "receiptEntries")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("expected latest snapshot, got %s", data)
	}

	entries, err := os.ReadDir(store.Dir())
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "receiptEntries.json" {
		t.Fatalf("expected only the snapshot file, got %v", entries)
	}

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestSnapshotStore_RejectsUnsafeKeys(t *testing.T) {
	store, err := NewSnapshotStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewSnapshotStore: %v", err)
	}

	for _, key := range []string{"", "..", "../escape", `a\b`, ".hidden"} {
		if err := store.Save(context.Background(), key, []byte("x")); !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("Save(%q) error = %v, want ErrInvalidKey", key, err)
		}
	}
}

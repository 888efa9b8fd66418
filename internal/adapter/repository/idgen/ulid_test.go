package idgen

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
)

func TestULIDGeneratorUniqueAndOrdered(t *testing.T) {
	gen := NewULIDGenerator()
	fixed := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	gen.now = func() time.Time { return fixed }

	seen := make(map[string]bool)
	prev := ""
	for i := 0; i < 100; i++ {
		id := gen.Generate()
		if _, err := ulid.ParseStrict(id); err != nil {
			t.Fatalf("invalid ULID %q: %v", id, err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		if id <= prev {
			t.Fatalf("id %q does not sort after %q", id, prev)
		}
		seen[id] = true
		prev = id
	}
}

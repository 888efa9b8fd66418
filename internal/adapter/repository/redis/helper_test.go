package redis

import (
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

func newTestRedisClient(t *testing.T) (*redislib.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{
		Addr: mr.Addr(),
	})

	return client, mr
}

// seedSnapshot writes a raw snapshot straight into the server, bypassing
// the store.
func seedSnapshot(t *testing.T, mr *miniredis.Miniredis, key, payload string) {
	t.Helper()

	if err := mr.Set(snapshotPrefix+key, payload); err != nil {
		t.Fatalf("failed to seed snapshot: %v", err)
	}
}

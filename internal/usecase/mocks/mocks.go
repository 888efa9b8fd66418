package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/goreceipts/internal/domain"
)

// MemorySnapshotStore is an in-memory SnapshotStore with overridable methods.
type MemorySnapshotStore struct {
	mu    sync.RWMutex
	data  map[string][]byte
	saves int

	LoadFunc func(ctx context.Context, key string) ([]byte, error)
	SaveFunc func(ctx context.Context, key string, data []byte) error
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{
		data: make(map[string][]byte),
	}
}

func (m *MemorySnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if data, ok := m.data[key]; ok {
		return append([]byte(nil), data...), nil
	}
	return nil, domain.ErrSnapshotNotFound
}

func (m *MemorySnapshotStore) Save(ctx context.Context, key string, data []byte) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, key, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
	m.saves++
	return nil
}

// Put seeds a raw snapshot.
func (m *MemorySnapshotStore) Put(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
}

// Saves returns how many times Save stored data.
func (m *MemorySnapshotStore) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

// SequenceIDGenerator returns id-001, id-002, ...
type SequenceIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewSequenceIDGenerator() *SequenceIDGenerator {
	return &SequenceIDGenerator{}
}

func (m *SequenceIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%03d", m.counter)
}

// MemoryIdempotencyStore is an in-memory IdempotencyStore.
type MemoryIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMemoryIdempotencyStore() *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MemoryIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MemoryIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

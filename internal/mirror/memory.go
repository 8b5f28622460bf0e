package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryMirror keeps the mirrored documents in process memory. It exists for
// local runs without Redis or Postgres, and for tests that need to observe
// write-throughs.
type MemoryMirror struct {
	mu   sync.Mutex
	data map[Kind]map[string][]byte
}

// NewMemoryMirror creates an empty MemoryMirror.
func NewMemoryMirror() *MemoryMirror {
	return &MemoryMirror{data: make(map[Kind]map[string][]byte)}
}

func (m *MemoryMirror) Put(_ context.Context, kind Kind, key string, entity any) error {
	b, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("marshal %s %s: %w", kind, key, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[kind] == nil {
		m.data[kind] = make(map[string][]byte)
	}
	m.data[kind][key] = b
	return nil
}

func (m *MemoryMirror) Ping(context.Context) error { return nil }

func (m *MemoryMirror) Close() error { return nil }

// Get returns the stored document for kind/key, if any.
func (m *MemoryMirror) Get(kind Kind, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[kind][key]
	return b, ok
}

// Len reports how many documents are stored under kind.
func (m *MemoryMirror) Len(kind Kind) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data[kind])
}

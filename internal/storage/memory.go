package storage

import (
	"context"
	"sync"
)

// MemoryKV keeps values in a map. A positive quota caps the total number of
// stored bytes.
type MemoryKV struct {
	mu    sync.Mutex
	items map[string][]byte
	quota int
	used  int
}

func NewMemoryKV(quota int) *MemoryKV {
	return &MemoryKV{items: map[string][]byte{}, quota: quota}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := m.used - len(m.items[key]) + len(value)
	if m.quota > 0 && next > m.quota {
		return ErrQuotaExceeded
	}
	m.items[key] = append([]byte(nil), value...)
	m.used = next
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.used -= len(m.items[key])
	delete(m.items, key)
	return nil
}

// Len reports the number of stored bytes.
func (m *MemoryKV) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.used
}

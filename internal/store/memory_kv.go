package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryKV holds values in process memory. Used by tests and as the
// fallback adapter before the SQLite store is initialized.
// Thread-safe for concurrent access from WASM callbacks.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		data: make(map[string]string),
	}
}

// Get returns the value stored under key, or "" if the key is absent.
func (s *MemoryKV) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[key], nil
}

// Set stores value under key.
func (s *MemoryKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Delete removes a key.
func (s *MemoryKV) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Len returns the number of stored keys.
func (s *MemoryKV) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Export serializes all keys to JSON bytes.
func (s *MemoryKV) Export() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.Marshal(s.data)
}

// Import replaces the store contents from an exported JSON byte slice.
func (s *MemoryKV) Import(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	var imported map[string]string
	if err := json.Unmarshal(data, &imported); err != nil {
		return fmt.Errorf("import unmarshal: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = imported
	return nil
}

// Compile-time interface checks
var (
	_ KV          = (*MemoryKV)(nil)
	_ Snapshotter = (*MemoryKV)(nil)
)

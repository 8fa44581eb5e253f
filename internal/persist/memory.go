package persist

import "sync"

// MemoryKV is an in-process KV used for tests and STORE_BACKEND=memory.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
	// SetErr, when non-nil, is returned by every Set (simulates a full store).
	SetErr error
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.data[key] = value
	return nil
}

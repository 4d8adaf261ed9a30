package gallery

import (
	"context"
	"sync"
)

// Store はギャラリーの永続化に使うキーバリューストアのポートです。
// 値は文字列として保存され、シリアライズは Gallery 側が行います。
type Store interface {
	// Get はキーに紐づく値を返します。存在しない場合は found=false を返します。
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set はキーに値を保存します。
	Set(ctx context.Context, key, value string) error
}

// MemoryStore はプロセス内だけで値を保持する Store 実装です。
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore は空の MemoryStore を作成します。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

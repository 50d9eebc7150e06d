// package testing contains shared testing utilities
package testing

import (
	"errors"
	"os"
	"sync"
	"testing"
)

// MemStorage is an in-memory store.Storage double.
type MemStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemStorage() *MemStorage {
	return &MemStorage{data: map[string][]byte{}}
}

func (m *MemStorage) Load(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	if !ok {
		return nil, errors.New("key not found")
	}
	return value, nil
}

func (m *MemStorage) Store(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// FailStorage fails every operation; used to exercise best-effort persistence.
type FailStorage struct{}

func (FailStorage) Load(string) ([]byte, error) { return nil, errors.New("load failed") }
func (FailStorage) Store(string, []byte) error  { return errors.New("store failed") }

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

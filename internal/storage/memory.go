package storage

import (
	"context"
	"errors"
	"sync"
)

var _ ObjectStore = (*MemoryStore)(nil)

// MemoryStore is an in-process ObjectStore used by tests and local
// development. FailUploads can be flipped to exercise the upload failure path
// of the inspection pipeline.
type MemoryStore struct {
	mu          sync.Mutex
	objects     map[string][]byte
	BaseURL     string
	FailUploads bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects: make(map[string][]byte),
		BaseURL: "https://storage.example.com/inspection-images",
	}
}

func (m *MemoryStore) EnsureBucket(ctx context.Context) error { return nil }

func (m *MemoryStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailUploads {
		return errors.New("upload failed")
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	m.objects[key] = cp
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("storage key is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok, nil
}

func (m *MemoryStore) PublicURL(key string) string {
	return m.BaseURL + "/" + key
}

// Object returns the stored bytes for key, for test assertions.
func (m *MemoryStore) Object(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[key]
	return b, ok
}

// Len returns the number of stored objects.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

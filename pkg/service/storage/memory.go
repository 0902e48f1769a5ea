package storage

import (
	"context"
	"slices"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
)

// Object is a file kept by Memory
type Object struct {
	Data        []byte
	ContentType string
}

// Memory keeps uploads in process. Used when no bucket is configured and
// in tests.
type Memory struct {
	mu      sync.RWMutex
	baseURL string
	objects map[types.Bucket]map[string]Object
}

var _ interfaces.ObjectStorage = &Memory{}

func NewMemory(baseURL string) *Memory {
	return &Memory{
		baseURL: baseURL,
		objects: make(map[types.Bucket]map[string]Object),
	}
}

func (m *Memory) Upload(ctx context.Context, bucket types.Bucket, path string, data []byte, contentType string) (string, error) {
	if !bucket.IsValid() {
		return "", goerr.Wrap(model.ErrInvalidInput, "unknown bucket", goerr.V(model.BucketKey, bucket))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.objects[bucket] == nil {
		m.objects[bucket] = make(map[string]Object)
	}
	m.objects[bucket][path] = Object{Data: slices.Clone(data), ContentType: contentType}
	return PublicURL(m.baseURL, string(bucket), path), nil
}

func (m *Memory) Delete(ctx context.Context, bucket types.Bucket, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[bucket][path]; !ok {
		return goerr.Wrap(model.ErrNotFound, "object not found",
			goerr.V(model.BucketKey, bucket), goerr.V(model.PathKey, path))
	}
	delete(m.objects[bucket], path)
	return nil
}

// Get returns a stored object
func (m *Memory) Get(bucket types.Bucket, path string) (Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[bucket][path]
	return obj, ok
}

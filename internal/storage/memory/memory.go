package memory

import (
	"context"
	"sync"

	"taskboard/internal/storage"
)

// Backend keeps every key in a map. Contents are lost on Close.
type Backend struct {
	mu     sync.RWMutex
	data   map[string]string
	closed bool
}

// New returns an empty in-memory backend.
func New() *Backend {
	return &Backend{data: make(map[string]string)}
}

func (b *Backend) Get(_ context.Context, key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return "", false, storage.ErrClosed
	}
	v, ok := b.data[key]
	return v, ok, nil
}

func (b *Backend) Apply(ctx context.Context, batch storage.Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return storage.ErrClosed
	}
	for _, op := range batch {
		if op.Delete {
			delete(b.data, op.Key)
			continue
		}
		b.data[op.Key] = op.Value
	}
	return nil
}

// Len returns the number of stored keys.
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.data)
}

// Snapshot copies the current contents.
func (b *Backend) Snapshot() map[string]string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string]string, len(b.data))
	for k, v := range b.data {
		out[k] = v
	}
	return out
}

func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.data = nil
	return nil
}

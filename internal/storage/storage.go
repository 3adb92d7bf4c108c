package storage

import (
	"context"
	"errors"
)

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("storage closed")

// Backend is a flat key-value store. Values are opaque strings.
type Backend interface {
	// Get returns the value stored under key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Apply writes every operation of the batch or none of them.
	Apply(ctx context.Context, batch Batch) error
	Close() error
}

// Op is a single put or delete inside a Batch.
type Op struct {
	Key    string
	Value  string
	Delete bool
}

// Batch is an ordered list of writes. Later operations on the same key win.
type Batch []Op

// Put appends a write of value under key.
func (b *Batch) Put(key, value string) {
	*b = append(*b, Op{Key: key, Value: value})
}

// Del appends a removal of key.
func (b *Batch) Del(key string) {
	*b = append(*b, Op{Key: key, Delete: true})
}

// Set is a convenience wrapper applying a single put.
func Set(ctx context.Context, backend Backend, key, value string) error {
	var b Batch
	b.Put(key, value)
	return backend.Apply(ctx, b)
}

// Delete is a convenience wrapper applying a single removal.
func Delete(ctx context.Context, backend Backend, key string) error {
	var b Batch
	b.Del(key)
	return backend.Apply(ctx, b)
}

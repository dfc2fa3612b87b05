// Package memory implements an in-memory content store for tests and
// single-process development setups.
package memory

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/paperbay/paperbay/pkg/content"
)

// Store keeps content blobs in a map guarded by a RWMutex.
type Store struct {
	mu    sync.RWMutex
	blobs map[content.ID][]byte
}

// New creates an empty in-memory content store.
func New() *Store {
	return &Store{blobs: make(map[content.ID][]byte)}
}

func (s *Store) Put(ctx context.Context, id content.ID, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.blobs[id] = data
	s.mu.Unlock()
	return int64(len(data)), nil
}

func (s *Store) Get(ctx context.Context, id content.ID) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, ok := s.blobs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, content.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *Store) Size(ctx context.Context, id content.ID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	data, ok := s.blobs[id]
	s.mu.RUnlock()
	if !ok {
		return 0, content.ErrNotFound
	}
	return int64(len(data)), nil
}

func (s *Store) Exists(ctx context.Context, id content.ID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	_, ok := s.blobs[id]
	s.mu.RUnlock()
	return ok, nil
}

func (s *Store) Delete(ctx context.Context, id content.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.blobs, id)
	s.mu.Unlock()
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	s.blobs = make(map[content.ID][]byte)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored blobs. Test helper.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}

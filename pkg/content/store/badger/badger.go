// Package badger implements content storage on an embedded BadgerDB.
//
// Suited to single-node deployments that want document bytes and control
// plane data on the same disk without managing a directory tree of blobs.
package badger

import (
	"bytes"
	"context"
	"fmt"
	"io"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/paperbay/paperbay/pkg/content"
)

const keyPrefix = "content/"

// Store keeps each content blob as a single Badger value.
type Store struct {
	db    *badger.DB
	owned bool
}

// New opens (or creates) a Badger-backed content store at dir.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("badger content store directory is required")
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // badger's own logger is too chatty for a content backend

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger content store at %q: %w", dir, err)
	}
	return &Store{db: db, owned: true}, nil
}

// NewWithDB wraps an already opened Badger database. The caller keeps
// ownership of the database; Close becomes a no-op.
func NewWithDB(db *badger.DB) *Store {
	return &Store{db: db}
}

func key(id content.ID) []byte {
	return []byte(keyPrefix + string(id))
}

func (s *Store) Put(ctx context.Context, id content.ID, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(id), data)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to store content %s: %w", id, err)
	}
	return int64(len(data)), nil
}

func (s *Store) Get(ctx context.Context, id content.ID) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if err == badger.ErrKeyNotFound {
			return content.ErrNotFound
		}
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *Store) Size(ctx context.Context, id content.ID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var size int64
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if err == badger.ErrKeyNotFound {
			return content.ErrNotFound
		}
		if err != nil {
			return err
		}
		size = item.ValueSize()
		return nil
	})
	return size, err
}

func (s *Store) Exists(ctx context.Context, id content.ID) (bool, error) {
	_, err := s.Size(ctx, id)
	if err == content.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Delete(ctx context.Context, id content.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(id))
	})
}

func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}

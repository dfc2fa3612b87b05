// Package filesystem implements content storage on a local directory.
package filesystem

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/paperbay/paperbay/pkg/content"
)

// Store keeps each content blob as a single file under root, sharded by the
// first two characters of the ID to keep directory fan-out bounded.
type Store struct {
	root string
}

// New creates a filesystem content store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("content root directory is required")
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create content root %q: %w", dir, err)
	}
	return &Store{root: dir}, nil
}

// path maps an ID to its on-disk location. IDs are UUIDs minted by the
// ledger, so two leading characters give 256-way sharding.
func (s *Store) path(id content.ID) string {
	name := string(id)
	if len(name) < 2 {
		return filepath.Join(s.root, name)
	}
	return filepath.Join(s.root, name[:2], name)
}

// Put writes content atomically: bytes go to a temp file in the same
// directory first, then rename into place. A crash mid-write leaves only a
// temp file, never a truncated blob under a live ID.
func (s *Store) Put(ctx context.Context, id content.ID, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	dst := s.path(id)
	if err := os.MkdirAll(filepath.Dir(dst), 0750); err != nil {
		return 0, fmt.Errorf("failed to create shard directory: %w", err)
	}

	tmp := dst + ".tmp." + uuid.New().String()[:8]
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0640)
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}

	n, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return 0, fmt.Errorf("failed to write content %s: %w", id, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return 0, fmt.Errorf("failed to sync content %s: %w", id, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return 0, err
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("failed to finalize content %s: %w", id, err)
	}
	return n, nil
}

func (s *Store) Get(ctx context.Context, id content.ID) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, content.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *Store) Size(ctx context.Context, id content.ID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	info, err := os.Stat(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, content.ErrNotFound
		}
		return 0, err
	}
	return info.Size(), nil
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
	if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete content %s: %w", id, err)
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}

// Package content defines the content store abstraction for document bytes.
//
// The content store manages only raw data. It does NOT manage document
// metadata, quotas, sharing, or versions; those live in the control plane
// database. The ledger links a document record to its current content via an
// opaque ID, writes new content under a fresh ID before committing the
// metadata transaction, and deletes superseded IDs after commit. This
// write-then-link discipline is what keeps a half-failed replace invisible.
//
// Implementations exist for the local filesystem, memory (tests), BadgerDB
// and S3-compatible object storage. All must be safe for concurrent use;
// the ledger serializes writes per document above this layer, so stores
// never see concurrent writes to the same ID.
package content

import (
	"context"
	"errors"
	"io"
)

// ID is an opaque content identifier. The ledger mints a fresh UUID per
// content version; stores treat it as an opaque key.
type ID string

// ErrNotFound is returned when no content exists under the given ID.
var ErrNotFound = errors.New("content not found")

// Store provides whole-object content storage.
type Store interface {
	// Put stores the content read from r under id, replacing any previous
	// content with the same id. Returns the number of bytes written.
	Put(ctx context.Context, id ID, r io.Reader) (int64, error)

	// Get returns a reader for the content. The caller must close it.
	// Returns ErrNotFound if the id does not exist.
	Get(ctx context.Context, id ID) (io.ReadCloser, error)

	// Size returns the content length in bytes without reading the data.
	// Returns ErrNotFound if the id does not exist.
	Size(ctx context.Context, id ID) (int64, error)

	// Exists reports whether content is stored under id.
	Exists(ctx context.Context, id ID) (bool, error)

	// Delete removes the content. Deleting a missing id is not an error;
	// the ledger calls Delete on best-effort cleanup paths.
	Delete(ctx context.Context, id ID) error

	// Close releases backend resources.
	Close() error
}

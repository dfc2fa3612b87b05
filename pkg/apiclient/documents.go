package apiclient

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// Document represents a stored document's metadata.
type Document struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	Kind      string    `json:"kind"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Quota represents the caller's storage accounting.
type Quota struct {
	Used      int64 `json:"used"`
	Limit     int64 `json:"limit"`
	Available int64 `json:"available"`
}

// ListDocuments returns the caller's documents.
func (c *Client) ListDocuments() ([]Document, error) {
	return listResources[Document](c, "/api/v1/documents")
}

// GetDocument returns a single document's metadata.
func (c *Client) GetDocument(id string) (*Document, error) {
	return getResource[Document](c, resourcePath("/api/v1/documents/%s", id))
}

// UploadDocument creates a document from r under the given name.
func (c *Client) UploadDocument(name string, r io.Reader) (*Document, error) {
	var doc Document
	if err := c.doMultipart(http.MethodPost, "/api/v1/documents", name, r, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DownloadDocument streams the current content. The caller must close the
// returned reader.
func (c *Client) DownloadDocument(id string) (io.ReadCloser, error) {
	return c.doDownload(resourcePath("/api/v1/documents/%s/content", id), nil)
}

// ReplaceDocument uploads r as the next version. The version parameter is
// the version the caller last saw; a stale value fails with a conflict.
func (c *Client) ReplaceDocument(id string, version int64, r io.Reader) (*Document, error) {
	header := http.Header{}
	header.Set("If-Match", fmt.Sprintf("%d", version))

	var doc Document
	err := c.doUploadRaw(http.MethodPut, resourcePath("/api/v1/documents/%s/content", id), r, header, &doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// RenameDocument changes a document's display name.
func (c *Client) RenameDocument(id, name string) (*Document, error) {
	req := struct {
		Name string `json:"name"`
	}{Name: name}

	var doc Document
	if err := c.patch(resourcePath("/api/v1/documents/%s", id), req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteDocument removes a document and frees its quota.
func (c *Client) DeleteDocument(id string) error {
	return deleteResource(c, resourcePath("/api/v1/documents/%s", id))
}

// GetQuota returns the caller's storage usage.
func (c *Client) GetQuota() (*Quota, error) {
	return getResource[Quota](c, "/api/v1/quota")
}

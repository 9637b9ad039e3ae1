package imagestore

import (
	"context"
	"io"
)

// ImageStore holds uploaded room images outside the database. Keys are
// opaque; room images are found by scanning for the room's key prefix at
// read time rather than tracking them in the store.
type ImageStore interface {
	Save(ctx context.Context, prefix, mimeType string, r io.Reader) (storageKey string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, string, error)
	ListByPrefix(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, storageKey string) error
}

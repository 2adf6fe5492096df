package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for saving and retrieving binary blobs.
// Content addressing, durability and quota policy are the store's concern;
// callers only hold opaque storage keys.
type ObjectStore interface {
	Save(ctx context.Context, userID string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
}

package storage

import (
	"context"
	"io"
)

// Uploader is the blob-store boundary: it accepts a resume stream and
// returns a stable retrieval URL for the stored object.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (url string, err error)
}

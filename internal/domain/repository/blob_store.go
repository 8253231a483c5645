package repository

import (
	"context"
	"io"
)

// BlobStore accepts file uploads and returns their public URL.
type BlobStore interface {
	Upload(ctx context.Context, name string, file io.Reader) (string, error)
}

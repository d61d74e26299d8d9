package files

import (
	"context"
	"io"
)

// StoredFile is a reference to file bytes, not the bytes themselves. URL is
// the reference's native form: a server-local path like
// "/media/photos/originals/x.jpg" for the local backend, a fully-qualified
// object-store URL for the s3 backend.
type StoredFile struct {
	Key string
	URL string
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Store
type Store interface {
	// Save writes the full content of r under key and returns the reference.
	Save(ctx context.Context, key string, r io.Reader) (StoredFile, error)
	// Open returns a readable byte stream for the file stored under key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Ref builds the reference for an already stored key.
	Ref(key string) StoredFile
}

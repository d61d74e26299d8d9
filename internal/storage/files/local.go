package files

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// Local stores files on disk under a media root. Native URLs are server-local
// paths under baseURL and need the request's scheme+host to become absolute.
type Local struct {
	root    string
	baseURL string
}

func NewLocal(root, baseURL string) *Local {
	return &Local{root: root, baseURL: baseURL}
}

func (l *Local) Save(_ context.Context, key string, r io.Reader) (StoredFile, error) {
	const op = "files.Local.Save"

	fullPath := filepath.Join(l.root, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(fullPath), os.ModePerm); err != nil {
		return StoredFile{}, fmt.Errorf("%s: %w", op, err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return StoredFile{}, fmt.Errorf("%s: %w", op, err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, r); err != nil {
		return StoredFile{}, fmt.Errorf("%s: %w", op, err)
	}

	return l.Ref(key), nil
}

func (l *Local) Open(_ context.Context, key string) (io.ReadCloser, error) {
	const op = "files.Local.Open"

	f, err := os.Open(filepath.Join(l.root, filepath.FromSlash(key)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return f, nil
}

func (l *Local) Ref(key string) StoredFile {
	return StoredFile{
		Key: key,
		URL: path.Join(l.baseURL, key),
	}
}

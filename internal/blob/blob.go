// Package blob stores clip payloads on the local filesystem.
//
// The store is a single flat directory of `{handle}.mp4` files, where the
// handle is the opaque token recorded on the clip row. The filesystem is
// treated purely as a capability — save bytes under a handle, read them
// back, remove them — with no metadata of its own: the clips table is the
// sole source of truth for which handles exist.
package blob

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Store writes and reads clip payloads in a single directory.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory (and parents)
// if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("blob: creating directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Path returns the on-disk location for a handle.
func (s *Store) Path(handle string) string {
	return filepath.Join(s.dir, handle+".mp4")
}

// Save writes the payload under the handle. A partial write leaves no file
// behind — the temp-free approach here is simply remove-on-error, since a
// fresh handle is never retried or reused.
func (s *Store) Save(handle string, r io.Reader) error {
	path := s.Path(handle)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("blob: creating %s: %w", path, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("blob: writing %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("blob: closing %s: %w", path, err)
	}

	return nil
}

// Open returns a reader over the payload for the handle. The caller owns
// the returned ReadCloser.
func (s *Store) Open(handle string) (io.ReadCloser, error) {
	f, err := os.Open(s.Path(handle))
	if err != nil {
		return nil, fmt.Errorf("blob: opening %s: %w", s.Path(handle), err)
	}
	return f, nil
}

// Remove deletes the payload for the handle. A missing file is not an
// error: delete is allowed to run after a crash that already removed the
// blob but not the row.
func (s *Store) Remove(handle string) error {
	err := os.Remove(s.Path(handle))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("blob: removing %s: %w", s.Path(handle), err)
	}
	return nil
}

// Package local implements a filesystem backed blob store.
//
// Blobs are written to a temporary file first and then renamed into place, so
// a blob under its final name is either complete or absent. The storage root
// is created lazily on the first write, which keeps read-only deployments
// from needing write permission to an unused directory.
package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/code19m/errx"
	"github.com/skycatalog/media-portal/pkg/filestore"
)

// tmpPattern is the name pattern for in-progress writes inside the root.
// Entries with this prefix are internal bookkeeping and are excluded from List.
const tmpPattern = ".tmp-*"

const tmpPrefix = ".tmp-"

// Config defines configuration options for the local blob store.
type Config struct {
	// Root is the directory that holds one file per stored blob.
	Root string `yaml:"root" default:"./data/media"`
}

// Store is a filesystem backed filestore.BlobStore.
type Store struct {
	root string
}

var _ filestore.BlobStore = (*Store)(nil)

// New creates a Store rooted at cfg.Root. The directory itself is not
// created until the first write.
func New(cfg Config) *Store {
	return &Store{root: cfg.Root}
}

func (s *Store) Write(ctx context.Context, name string, r io.Reader) error {
	if err := s.ensureRoot(); err != nil {
		return err
	}

	final := filepath.Join(s.root, name)

	// The name generator makes collisions vanishingly unlikely, but name
	// generation and write are not atomic, so the store re-checks.
	if _, err := os.Stat(final); err == nil {
		return errx.New(
			"blob already exists",
			errx.WithCode(filestore.CodeCollisionDetected),
			errx.WithType(errx.T_Conflict),
			errx.WithDetails(errx.D{"name": name}),
		)
	} else if !os.IsNotExist(err) {
		return wrapIO(err, name)
	}

	tmp, err := os.CreateTemp(s.root, tmpPattern)
	if err != nil {
		return wrapIO(err, name)
	}
	tmpPath := tmp.Name()

	_, err = io.Copy(tmp, r)
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}

	// A cancelled upload must not become visible under the final name.
	if err == nil {
		err = ctx.Err()
	}

	if err != nil {
		_ = os.Remove(tmpPath)
		return wrapIO(err, name)
	}

	if err := os.Rename(tmpPath, final); err != nil {
		_ = os.Remove(tmpPath)
		return wrapIO(err, name)
	}

	return nil
}

func (s *Store) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.root, name))
	if os.IsNotExist(err) {
		return nil, errx.New(
			"blob not found",
			errx.WithCode(filestore.CodeBlobNotFound),
			errx.WithType(errx.T_NotFound),
			errx.WithDetails(errx.D{"name": name}),
		)
	}
	if err != nil {
		return nil, wrapIO(err, name)
	}
	return f, nil
}

func (s *Store) Delete(_ context.Context, name string) error {
	err := os.Remove(filepath.Join(s.root, name))
	if err != nil && !os.IsNotExist(err) {
		return wrapIO(err, name)
	}
	return nil
}

func (s *Store) Exists(_ context.Context, name string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.root, name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, wrapIO(err, name)
	}
	return true, nil
}

func (s *Store) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if os.IsNotExist(err) {
		// Nothing written yet.
		return []string{}, nil
	}
	if err != nil {
		return nil, wrapIO(err, "")
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), tmpPrefix) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func (s *Store) ensureRoot() error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return wrapIO(err, "")
	}
	return nil
}

func wrapIO(err error, name string) error {
	details := errx.D{}
	if name != "" {
		details["name"] = name
	}
	return errx.Wrap(err,
		errx.WithCode(filestore.CodeStorageIO),
		errx.WithDetails(details),
	)
}

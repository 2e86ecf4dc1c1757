// Package local_test contains tests for the local blob store.
package local_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycatalog/media-portal/pkg/filestore"
	"github.com/skycatalog/media-portal/pkg/filestore/local"
)

func newStore(t *testing.T) (*local.Store, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "blobs")
	return local.New(local.Config{Root: root}), root
}

func TestWriteOpenRoundtrip(t *testing.T) {
	store, _ := newStore(t)
	content := []byte("media bytes")

	err := store.Write(t.Context(), "a.png", bytes.NewReader(content))
	require.NoError(t, err)

	rc, err := store.Open(t.Context(), "a.png")
	require.NoError(t, err)
	defer rc.Close() //nolint:errcheck // test cleanup

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestWriteCreatesRootLazily(t *testing.T) {
	store, root := newStore(t)

	_, err := os.Stat(root)
	require.True(t, os.IsNotExist(err), "root must not exist before the first write")

	require.NoError(t, store.Write(t.Context(), "a.png", bytes.NewReader([]byte("x"))))

	_, err = os.Stat(root)
	require.NoError(t, err)
}

func TestWriteDetectsCollision(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.Write(t.Context(), "a.png", bytes.NewReader([]byte("first"))))

	err := store.Write(t.Context(), "a.png", bytes.NewReader([]byte("second")))
	require.Error(t, err)
	assert.Equal(t, filestore.CodeCollisionDetected, errx.AsErrorX(err).Code())
	assert.Equal(t, errx.T_Conflict, errx.AsErrorX(err).Type())

	// The original content must be untouched.
	rc, err := store.Open(t.Context(), "a.png")
	require.NoError(t, err)
	defer rc.Close() //nolint:errcheck // test cleanup
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), got)
}

func TestWriteCancelledContextLeavesNoBlob(t *testing.T) {
	store, _ := newStore(t)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := store.Write(ctx, "a.png", bytes.NewReader([]byte("partial")))
	require.Error(t, err)

	exists, err := store.Exists(t.Context(), "a.png")
	require.NoError(t, err)
	assert.False(t, exists)

	names, err := store.List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, names, "no temp files may leak into the listing")
}

func TestOpenMissingBlob(t *testing.T) {
	store, _ := newStore(t)

	_, err := store.Open(t.Context(), "missing.png")
	require.Error(t, err)
	assert.Equal(t, filestore.CodeBlobNotFound, errx.AsErrorX(err).Code())
	assert.Equal(t, errx.T_NotFound, errx.AsErrorX(err).Type())
}

func TestDeleteIsIdempotent(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.Write(t.Context(), "a.png", bytes.NewReader([]byte("x"))))
	require.NoError(t, store.Delete(t.Context(), "a.png"))
	require.NoError(t, store.Delete(t.Context(), "a.png"))

	exists, err := store.Exists(t.Context(), "a.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestListSkipsInternalEntries(t *testing.T) {
	store, root := newStore(t)

	require.NoError(t, store.Write(t.Context(), "a.png", bytes.NewReader([]byte("x"))))
	require.NoError(t, store.Write(t.Context(), "b.mp4", bytes.NewReader([]byte("y"))))

	// Simulate a crashed in-progress write and a stray directory.
	require.NoError(t, os.WriteFile(filepath.Join(root, ".tmp-123"), []byte("partial"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "subdir"), 0o755))

	names, err := store.List(t.Context())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.png", "b.mp4"}, names)
}

func TestListBeforeFirstWrite(t *testing.T) {
	store, _ := newStore(t)

	names, err := store.List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, names)
}

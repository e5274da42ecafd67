package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStores(t *testing.T) map[string]BlobStore {
	return map[string]BlobStore{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(t.TempDir()),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Put(KindSpec, "petstore", []byte(`{"openapi":"3.0.3"}`)))
			require.NoError(t, s.Put(KindSpec, "auth", []byte(`{}`)))

			data, err := s.Get(KindSpec, "petstore")
			require.NoError(t, err)
			assert.JSONEq(t, `{"openapi":"3.0.3"}`, string(data))

			ids, err := s.List(KindSpec)
			require.NoError(t, err)
			assert.Equal(t, []string{"auth", "petstore"}, ids)

			require.NoError(t, s.Delete(KindSpec, "auth"))
			ids, err = s.List(KindSpec)
			require.NoError(t, err)
			assert.Equal(t, []string{"petstore"}, ids)
		})
	}
}

func TestStoreNotFound(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(KindToken, "missing")
			assert.True(t, errors.Is(err, ErrNotFound))

			err = s.Delete(KindToken, "missing")
			assert.True(t, errors.Is(err, ErrNotFound))

			var opErr *OpError
			require.True(t, errors.As(err, &opErr))
			assert.Equal(t, "store.delete", opErr.Op)
			assert.Equal(t, "missing", opErr.ID)
		})
	}
}

func TestStoreListUnknownKind(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ids, err := s.List("nothing")
			require.NoError(t, err)
			assert.Empty(t, ids)
		})
	}
}

func TestFileStoreRejectsPathTraversal(t *testing.T) {
	s := NewFileStore(t.TempDir())
	err := s.Put(KindSpec, "../escape", []byte("x"))
	assert.Error(t, err)

	_, err = s.Get(KindSpec, "")
	assert.Error(t, err)
}

func TestFileStoreLayout(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)
	require.NoError(t, s.Put(KindToken, "123", []byte(`{}`)))

	_, err := os.Stat(filepath.Join(dir, KindToken, "123.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, KindToken, "123.json.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestMemoryStoreCopiesData(t *testing.T) {
	s := NewMemoryStore()
	data := []byte("abc")
	require.NoError(t, s.Put(KindSpec, "a", data))
	data[0] = 'x'

	got, err := s.Get(KindSpec, "a")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestOpErrorMessage(t *testing.T) {
	err := &OpError{Op: "store.get", Kind: KindSpec, ID: "x", Err: ErrNotFound}
	assert.Equal(t, "store.get spec/x: not found", err.Error())
}

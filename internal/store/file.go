package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const blobExt = ".json"

// FileStore keeps one file per blob under <root>/<kind>/<id>.json
type FileStore struct {
	root string
}

// NewFileStore creates a file-backed store rooted at dir. Directories are created lazily.
func NewFileStore(dir string) *FileStore {
	return &FileStore{root: dir}
}

var _ BlobStore = (*FileStore)(nil)

// Root returns the directory the store writes to
func (s *FileStore) Root() string {
	return s.root
}

func (s *FileStore) path(kind, id string) (string, error) {
	if err := validName(kind); err != nil {
		return "", err
	}
	if err := validName(id); err != nil {
		return "", err
	}
	return filepath.Join(s.root, kind, id+blobExt), nil
}

func (s *FileStore) Get(kind, id string) ([]byte, error) {
	path, err := s.path(kind, id)
	if err != nil {
		return nil, &OpError{Op: "store.get", Kind: kind, ID: id, Err: err}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &OpError{Op: "store.get", Kind: kind, ID: id, Err: ErrNotFound}
	}
	if err != nil {
		return nil, &OpError{Op: "store.get", Kind: kind, ID: id, Err: err}
	}
	return data, nil
}

func (s *FileStore) List(kind string) ([]string, error) {
	if err := validName(kind); err != nil {
		return nil, &OpError{Op: "store.list", Kind: kind, Err: err}
	}

	entries, err := os.ReadDir(filepath.Join(s.root, kind))
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, &OpError{Op: "store.list", Kind: kind, Err: err}
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), blobExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), blobExt))
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *FileStore) Put(kind, id string, data []byte) error {
	path, err := s.path(kind, id)
	if err != nil {
		return &OpError{Op: "store.put", Kind: kind, ID: id, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &OpError{Op: "store.mkdir", Kind: kind, ID: id, Err: err}
	}

	// Write to a temp file first so readers never observe a partial blob.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return &OpError{Op: "store.write", Kind: kind, ID: id, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &OpError{Op: "store.rename", Kind: kind, ID: id, Err: err}
	}
	return nil
}

func (s *FileStore) Delete(kind, id string) error {
	path, err := s.path(kind, id)
	if err != nil {
		return &OpError{Op: "store.delete", Kind: kind, ID: id, Err: err}
	}

	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &OpError{Op: "store.delete", Kind: kind, ID: id, Err: ErrNotFound}
	}
	if err != nil {
		return &OpError{Op: "store.delete", Kind: kind, ID: id, Err: err}
	}
	return nil
}

func validName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("empty name")
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("invalid name %q", name)
	}
	return nil
}

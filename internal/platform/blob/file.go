package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps each key as a JSON file under a data directory. It has no
// native conditional write: CompareAndSwap re-checks the current content
// under a process-wide mutex before renaming a temp file into place. That
// is atomic for a single process only; running several processes against
// the same directory reintroduces the lost-update window.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// OpenFile creates a file-backed store rooted at dir.
func OpenFile(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) read(key string) ([]byte, Revision, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, NoRevision, nil
	}
	if err != nil {
		return nil, NoRevision, err
	}
	return data, revisionOf(data), nil
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, Revision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(key)
}

func (s *FileStore) CompareAndSwap(_ context.Context, key string, value []byte, rev Revision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, cur, err := s.read(key)
	if err != nil {
		return err
	}
	if cur != rev {
		return ErrRevisionMismatch
	}
	return s.write(key, value)
}

func (s *FileStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(key, value)
}

// write replaces the key's file via temp file + rename so readers never see
// a half-written document.
func (s *FileStore) write(key string, value []byte) error {
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path(key))
}

func (s *FileStore) Ping(_ context.Context) error {
	_, err := os.Stat(s.dir)
	return err
}

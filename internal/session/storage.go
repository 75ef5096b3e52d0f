package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// storageKey is the single key the identity is kept under.
const storageKey = "user"

// Storage is durable local storage for one identity.
type Storage interface {
	// Load returns nil and no error when nothing is stored.
	Load() (*Identity, error)
	Save(id Identity) error
	Clear() error
	Close() error
}

// FileStorage keeps the identity in a JSON file shaped like browser local
// storage: {"user": {...}}.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (f *FileStorage) Load() (*Identity, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var doc map[string]*Identity
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode session file %s: %w", f.path, err)
	}
	return doc[storageKey], nil
}

func (f *FileStorage) Save(id Identity) error {
	b, err := json.Marshal(map[string]Identity{storageKey: id})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (f *FileStorage) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func (f *FileStorage) Close() error { return nil }

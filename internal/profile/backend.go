package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Backend is the persistence seam behind the Repository. Keys are logical
// document names; each document is read and written whole.
type Backend interface {
	ReadJSON(key string, dst any) (bool, error)
	WriteJSON(key string, v any) error
	Exists(key string) bool
}

type dirBackend struct {
	dir string
}

// NewDirBackend stores each key as <dir>/<key>.json.
func NewDirBackend(dir string) Backend {
	return &dirBackend{dir: dir}
}

func (b *dirBackend) path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

func (b *dirBackend) ReadJSON(key string, dst any) (bool, error) {
	data, err := os.ReadFile(b.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (b *dirBackend) WriteJSON(key string, v any) error {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := os.WriteFile(b.path(key), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (b *dirBackend) Exists(key string) bool {
	info, err := os.Stat(b.path(key))
	return err == nil && !info.IsDir()
}

package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// jsonDocument is a collection persisted as a single JSON array on disk.
// Every mutation rewrites the whole file through a temp file and rename, so
// readers never observe a half-written document.
type jsonDocument[T any] struct {
	mu   sync.RWMutex
	path string
}

func newJSONDocument[T any](dir, name string) (*jsonDocument[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &jsonDocument[T]{path: filepath.Join(dir, name)}, nil
}

func (d *jsonDocument[T]) read() ([]T, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.load()
}

// update runs fn on the current contents and persists what it returns.
// Nothing is written if fn fails.
func (d *jsonDocument[T]) update(fn func(items []T) ([]T, error)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	items, err := d.load()
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return d.store(items)
}

func (d *jsonDocument[T]) load() ([]T, error) {
	b, err := os.ReadFile(d.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(d.path), err)
	}

	items := []T{}
	if len(b) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(d.path), err)
	}
	return items, nil
}

func (d *jsonDocument[T]) store(items []T) error {
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(d.path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(d.path), filepath.Base(d.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(d.path), err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(d.path), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", filepath.Base(d.path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(d.path), err)
	}
	if err := os.Rename(tmp.Name(), d.path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(d.path), err)
	}
	return nil
}

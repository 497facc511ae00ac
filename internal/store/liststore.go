package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// ListStore holds un-enveloped domain records, currently only the course
// catalog. It is a separate type from Store on purpose: the envelope store
// must not branch on filename to decide its record shape.
type ListStore[T any] struct {
	path string
	mu   sync.Mutex
}

// OpenList prepares a list store at path, creating the parent directory.
func OpenList[T any](path string) (*ListStore[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	if _, err := os.Stat(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking list file: %w", err)
	}
	return &ListStore[T]{path: path}, nil
}

// ReadAll returns the stored list, or empty on a missing or corrupt file.
func (s *ListStore[T]) ReadAll() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("list store read failed, treating as empty", "path", s.path, "error", err)
		}
		return nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.Warn("list store file is not a JSON array, treating as empty", "path", s.path, "error", err)
		return nil
	}
	return items
}

// Healthy reports whether the backing file is accessible.
func (s *ListStore[T]) Healthy() error {
	_, err := statReadable(s.path)
	return err
}

// Replace overwrites the list wholesale. Used for seeding the catalog.
func (s *ListStore[T]) Replace(items []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding list: %w", err)
	}
	return atomicWrite(s.path, data)
}

// Package store provides key-value storage for persisted theme preferences.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// KV is a string key-value store with localStorage semantics.
type KV interface {
	// GetItem returns the value stored under key and whether it exists.
	GetItem(key string) (string, bool, error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(key, value string) error
}

// ErrReadOnly is returned when writing to a read-only store.
var ErrReadOnly = errors.New("store is read-only")

// FileKV implements KV on top of a single JSON object file.
// Writes are atomic via a temp file and rename.
type FileKV struct {
	mu       sync.RWMutex
	path     string
	readOnly bool
}

// NewFileKV creates a FileKV backed by path. The file is created lazily on first write.
func NewFileKV(path string) *FileKV {
	return &FileKV{path: path}
}

// SetReadOnly makes subsequent writes fail with ErrReadOnly.
func (s *FileKV) SetReadOnly(readOnly bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readOnly = readOnly
}

// Path returns the backing file path.
func (s *FileKV) Path() string {
	return s.path
}

// GetItem returns the value stored under key.
func (s *FileKV) GetItem(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := items[key]
	return v, ok, nil
}

// SetItem stores value under key.
func (s *FileKV) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readOnly {
		return ErrReadOnly
	}

	items, err := s.read()
	if err != nil {
		return err
	}
	items[key] = value

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}

	// Write atomically via a per-writer temp file; other processes may share the path
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// read loads all items. A missing or corrupted file reads as empty.
func (s *FileKV) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}

	items := make(map[string]string)
	if err := json.Unmarshal(data, &items); err != nil {
		return make(map[string]string), nil
	}
	return items, nil
}

// MemoryKV is an in-process KV, used when no persistence is wanted and in tests.
type MemoryKV struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{items: make(map[string]string)}
}

// GetItem returns the value stored under key.
func (s *MemoryKV) GetItem(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok, nil
}

// SetItem stores value under key.
func (s *MemoryKV) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

// Package storage persists the task list and theme to a key-value store.
//
// Three backends implement KV: FileKV keeps one file per key in a directory,
// SQLiteKV keeps a single kv table, and MemoryKV lives only as long as the
// process. Writes replace a key's value atomically; there is no partial
// update and no schema versioning.
package storage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// KV is a flat string-keyed byte store.
type KV interface {
	// Get returns the value for key and whether it exists.
	Get(key string) ([]byte, bool, error)
	// Set replaces the value for key.
	Set(key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	Close() error
}

// Open returns the KV backend named by backend rooted at path.
// The memory backend ignores path.
func Open(backend, path string) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendFile, "":
		return NewFileKV(path)
	case BackendSQLite:
		return NewSQLiteKV(path)
	case BackendMemory:
		return NewMemoryKV(), nil
	}
	return nil, fmt.Errorf("%w %q, must be one of: file, sqlite, memory", ErrUnknownBackend, backend)
}

// MemoryKV is an in-process KV.
type MemoryKV struct {
	data map[string][]byte
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryKV) Set(key string, value []byte) error {
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKV) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func (m *MemoryKV) Close() error {
	return nil
}

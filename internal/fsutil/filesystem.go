// Package fsutil abstracts the files the command line tool reads and writes,
// so captures and exported reports can be exercised in memory.
package fsutil

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// FileSystem is the file access needed to read captures and write reports.
// Use OSFileSystem for production and MemoryFileSystem in tests.
type FileSystem interface {
	// Open opens the named file for reading.
	Open(name string) (io.ReadCloser, error)

	// Create creates or truncates the named file.
	Create(name string) (io.WriteCloser, error)

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path string) error

	// Exists reports whether a file or directory exists.
	Exists(name string) bool
}

// OSFileSystem implements FileSystem on the host filesystem.
type OSFileSystem struct{}

func (OSFileSystem) Open(name string) (io.ReadCloser, error)    { return os.Open(name) }
func (OSFileSystem) Create(name string) (io.WriteCloser, error) { return os.Create(name) }
func (OSFileSystem) MkdirAll(path string) error                 { return os.MkdirAll(path, 0755) }

func (OSFileSystem) Exists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}

// MemoryFileSystem keeps files in memory. Written data becomes visible when
// the writer is closed.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool
}

// NewMemoryFileSystem returns an empty in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

// Open returns a reader over a snapshot of the named file.
func (m *MemoryFileSystem) Open(name string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[filepath.Clean(name)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Create truncates the named file and returns a writer for it.
func (m *MemoryFileSystem) Create(name string) (io.WriteCloser, error) {
	name = filepath.Clean(name)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = nil
	return &memWriter{fs: m, name: name}, nil
}

// MkdirAll records path and its parents as directories.
func (m *MemoryFileSystem) MkdirAll(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for p := filepath.Clean(path); p != "." && p != string(filepath.Separator); p = filepath.Dir(p) {
		m.dirs[p] = true
	}
	return nil
}

// Exists reports whether name is a known file or directory.
func (m *MemoryFileSystem) Exists(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name = filepath.Clean(name)
	_, ok := m.files[name]
	return ok || m.dirs[name]
}

// WriteFile stores data under name, replacing any previous contents.
func (m *MemoryFileSystem) WriteFile(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[filepath.Clean(name)] = append([]byte(nil), data...)
}

// ReadFile returns a copy of the named file.
func (m *MemoryFileSystem) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[filepath.Clean(name)]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

// Files returns the names of all files in sorted order.
func (m *MemoryFileSystem) Files() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.files))
	for n := range m.files {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

type memWriter struct {
	fs   *MemoryFileSystem
	name string
	buf  bytes.Buffer
}

func (w *memWriter) Write(p []byte) (int, error) { return w.buf.Write(p) }

func (w *memWriter) Close() error {
	w.fs.WriteFile(w.name, w.buf.Bytes())
	return nil
}

package fsutil

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFileSystem_RoundTrip(t *testing.T) {
	var fsys FileSystem = OSFileSystem{}
	dir := filepath.Join(t.TempDir(), "out", "nested")
	require.NoError(t, fsys.MkdirAll(dir))
	assert.True(t, fsys.Exists(dir))

	path := filepath.Join(dir, "report.html")
	w, err := fsys.Create(path)
	require.NoError(t, err)
	_, err = io.WriteString(w, "<html></html>")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := fsys.Open(path)
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))

	assert.False(t, fsys.Exists(filepath.Join(dir, "missing.png")))
}

func TestMemoryFileSystem_VisibleAfterClose(t *testing.T) {
	m := NewMemoryFileSystem()

	w, err := m.Create("out/angles.png")
	require.NoError(t, err)
	_, err = w.Write([]byte("\x89PNG"))
	require.NoError(t, err)

	data, err := m.ReadFile("out/angles.png")
	require.NoError(t, err)
	assert.Empty(t, data, "contents are published on Close")

	require.NoError(t, w.Close())
	data, err = m.ReadFile("./out/angles.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data)
	assert.Equal(t, []string{"out/angles.png"}, m.Files())
}

func TestMemoryFileSystem_OpenMissing(t *testing.T) {
	m := NewMemoryFileSystem()
	_, err := m.Open("capture.jsonl")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = m.ReadFile("capture.jsonl")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemoryFileSystem_ReadersAreSnapshots(t *testing.T) {
	m := NewMemoryFileSystem()
	m.WriteFile("capture.jsonl", []byte("one"))

	r, err := m.Open("capture.jsonl")
	require.NoError(t, err)
	m.WriteFile("capture.jsonl", []byte("two"))

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))
}

func TestMemoryFileSystem_MkdirAll(t *testing.T) {
	m := NewMemoryFileSystem()
	require.NoError(t, m.MkdirAll("a/b/c"))
	assert.True(t, m.Exists("a"))
	assert.True(t, m.Exists("a/b"))
	assert.True(t, m.Exists("a/b/c"))
	assert.False(t, m.Exists("b"))
	assert.Empty(t, m.Files())
}

package filesystem

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFileSystem_Open_ValidDirectory(t *testing.T) {
	dir := t.TempDir()
	fs := NewOSFileSystem()

	d, err := fs.Open(dir)
	require.NoError(t, err)

	absDir, _ := filepath.Abs(dir)
	assert.Equal(t, absDir, d.Path())
}

func TestOSFileSystem_Open_Errors(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "file.js")
	require.NoError(t, os.WriteFile(filePath, []byte("x"), 0o644))

	fs := NewOSFileSystem()

	_, err := fs.Open(filepath.Join(dir, "nonexistent"))
	assert.Error(t, err)

	_, err = fs.Open(filePath)
	assert.Error(t, err)
}

func TestOSFileSystem_Walk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "chunks"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.user.js"), []byte("main();"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chunks", "a.js"), []byte("a();"), 0o644))

	fs := NewOSFileSystem()
	d, err := fs.Open(dir)
	require.NoError(t, err)

	var rels []string
	err = d.Walk(func(f File, err error) error {
		require.NoError(t, err)
		if !f.Info().IsDir() {
			rels = append(rels, f.RelativePath())
			content, err := f.ReadContent()
			require.NoError(t, err)
			assert.NotEmpty(t, content)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"chunks/a.js", "main.user.js"}, rels)
}

func TestOSFileSystem_WriteFile(t *testing.T) {
	dir := t.TempDir()
	fs := NewOSFileSystem()

	target := filepath.Join(dir, "out", "main.user.js")
	require.NoError(t, fs.WriteFile(target, []byte("first"), 0o644))

	data, err := fs.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	require.NoError(t, fs.WriteFile(target, []byte("second"), 0o644))
	data, err = fs.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}

func TestOSFileSystem_WriteFile_KeepsMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on Windows")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "main.user.js")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o600))

	fs := NewOSFileSystem()
	require.NoError(t, fs.WriteFile(target, []byte("y"), 0o644))

	info, err := fs.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestOSFileSystem_WriteFile_Directory(t *testing.T) {
	fs := NewOSFileSystem()
	assert.Error(t, fs.WriteFile(t.TempDir(), []byte("x"), 0o644))
}

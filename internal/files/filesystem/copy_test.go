package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "zlib.LICENSE")
	require.NoError(t, os.WriteFile(src, []byte("license text"), 0644))

	dst := filepath.Join(dir, "out", "nested", "zlib.LICENSE")
	require.NoError(t, CopyFile(src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "license text", string(got))

	assert.Error(t, CopyFile(filepath.Join(dir, "missing"), dst))
}

func TestCopyDir(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "include", "empty"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "zlib.c"), []byte("c"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "include", "zlib.h"), []byte("h"), 0644))

	dst := filepath.Join(t.TempDir(), "zlib")
	require.NoError(t, CopyDir(src, dst))

	got, err := os.ReadFile(filepath.Join(dst, "include", "zlib.h"))
	require.NoError(t, err)
	assert.Equal(t, "h", string(got))
	assert.True(t, IsDir(NewOSFileSystem(), filepath.Join(dst, "include", "empty")))
}

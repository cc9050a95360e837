package filesystem

import (
	"os"
	"path/filepath"
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
	filePath := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("content"), 0644))

	fs := NewOSFileSystem()

	_, err := fs.Open(filepath.Join(dir, "nonexistent"))
	assert.Error(t, err)

	_, err = fs.Open(filePath)
	assert.Error(t, err)
}

func TestOSFileSystem_Walk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "third_party", "zlib"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "third_party", "zlib.ABOUT"), []byte("name: zlib\n"), 0644))

	fs := NewOSFileSystem()
	d, err := fs.Open(dir)
	require.NoError(t, err)

	var rels []string
	err = d.Walk(func(f File, err error) error {
		require.NoError(t, err)
		rels = append(rels, f.RelativePath())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{".", "third_party", "third_party/zlib", "third_party/zlib.ABOUT"}, rels)
}

func TestOSFileSystem_ReadAndStat(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "zlib.ABOUT")
	require.NoError(t, os.WriteFile(filePath, []byte("name: zlib\n"), 0644))

	fs := NewOSFileSystem()

	data, err := fs.ReadFile(filePath)
	require.NoError(t, err)
	assert.Equal(t, "name: zlib\n", string(data))

	info, err := fs.Stat(filePath)
	require.NoError(t, err)
	assert.Equal(t, int64(11), info.Size())
}

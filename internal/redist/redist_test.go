package redist

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aboutkit/aboutkit/internal/model"
	"github.com/aboutkit/aboutkit/pkg/about"
)

func writeFile(t *testing.T, p, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

func record(aboutPath, resource, redistribute string) *model.Record {
	r := model.NewRecord(aboutPath)
	r.Set("about_resource", resource)
	r.Set("name", filepath.Base(aboutPath))
	if redistribute != "" {
		r.Set("redistribute", redistribute)
	}
	return r
}

// source builds a tree with a redistributable directory, a redistributable
// file, a file whose name collides with it, and a component that is not
// redistributed.
func source(t *testing.T) (string, []*model.Record) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lib", "zlib", "zlib.c"), "zlib")
	writeFile(t, filepath.Join(root, "lib", "png", "util.c"), "png util")
	writeFile(t, filepath.Join(root, "tools", "util.c"), "tools util")
	writeFile(t, filepath.Join(root, "private", "secret.c"), "secret")

	return root, []*model.Record{
		record("lib/zlib/zlib.ABOUT", ".", "yes"),
		record("lib/png/util.c.ABOUT", "util.c", "y"),
		record("tools/util.c.ABOUT", "util.c", "true"),
		record("private/secret.c.ABOUT", "secret.c", "no"),
		record("gone/gone.c.ABOUT", "gone.c", "yes"),
	}
}

func messages(diags about.Diagnostics) []string {
	var out []string
	for _, d := range diags {
		out = append(out, d.String())
	}
	return out
}

func TestSelect(t *testing.T) {
	_, records := source(t)
	selected := Select(records)
	assert.Len(t, selected, 4)
	for _, r := range selected {
		assert.NotEqual(t, "secret.c.ABOUT", r.Name())
	}
}

func TestCollect_Flat(t *testing.T) {
	root, records := source(t)
	out := filepath.Join(t.TempDir(), "redist")

	res, err := Collect(records, root, out, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"lib/zlib/", "lib/png/util.c"}, res.Collected)
	assert.Equal(t, []string{
		"ERROR: Cannot collect tools/util.c: util.c is already collected from lib/png/util.c",
		"ERROR: Resource not found: gone/gone.c",
	}, messages(res.Diagnostics))

	assert.FileExists(t, filepath.Join(out, "zlib", "zlib.c"))
	data, err := os.ReadFile(filepath.Join(out, "util.c"))
	require.NoError(t, err)
	assert.Equal(t, "png util", string(data))
	assert.NoFileExists(t, filepath.Join(out, "secret.c"))
}

func TestCollect_WithStructures(t *testing.T) {
	root, records := source(t)
	out := filepath.Join(t.TempDir(), "redist")

	res, err := Collect(records, root, out, Options{WithStructures: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"lib/zlib/", "lib/png/util.c", "tools/util.c"}, res.Collected)
	assert.Len(t, res.Diagnostics, 1)
	assert.FileExists(t, filepath.Join(out, "lib", "zlib", "zlib.c"))
	assert.FileExists(t, filepath.Join(out, "lib", "png", "util.c"))
	assert.FileExists(t, filepath.Join(out, "tools", "util.c"))
}

func TestCollect_Zip(t *testing.T) {
	root, records := source(t)
	out := filepath.Join(t.TempDir(), "redist.zip")

	_, err := Collect(records, root, out, Options{WithStructures: true, Zip: true})
	require.NoError(t, err)

	reader, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer reader.Close()

	var files []string
	for _, f := range reader.File {
		if !f.FileInfo().IsDir() {
			files = append(files, f.Name)
		}
	}
	sort.Strings(files)
	assert.Equal(t, []string{"lib/png/util.c", "lib/zlib/zlib.c", "tools/util.c"}, files)
}

func TestCollect_ZipRequiresExtension(t *testing.T) {
	root, records := source(t)
	_, err := Collect(records, root, filepath.Join(t.TempDir(), "redist"), Options{Zip: true})
	assert.True(t, errors.Is(err, about.ErrOutputLocation))
}

func TestCollect_RootMustBeDirectory(t *testing.T) {
	_, err := Collect(nil, filepath.Join(t.TempDir(), "missing"), t.TempDir(), Options{})
	assert.True(t, errors.Is(err, about.ErrInvalidInput))
}

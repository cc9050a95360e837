package collector

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aboutkit/aboutkit/internal/files/filesystem"
	"github.com/aboutkit/aboutkit/pkg/about"
)

func newTestCollector(opts ...Option) (*Collector, *filesystem.MemoryFileSystem) {
	fs := filesystem.NewMemoryFileSystem("/project")
	return New(append([]Option{WithFS(fs)}, opts...)...), fs
}

func messages(ds about.Diagnostics) []string {
	var out []string
	for _, d := range ds {
		out = append(out, d.String())
	}
	return out
}

func TestNew_NilFS(t *testing.T) {
	assert.Panics(t, func() { New(WithFS(nil)) })
}

func TestIsAboutFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"zlib.ABOUT", true},
		{"dir/zlib.about", true},
		{".ABOUT", false},
		{"zlib.ABOUT.txt", false},
		{"ABOUT", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAboutFile(tt.name))
		})
	}
}

func TestFind_Directory(t *testing.T) {
	c, fs := newTestCollector(WithExcludes("**/tests/**", "skip.ABOUT"))
	fs.AddFile("lib/zlib.ABOUT", "name: zlib")
	fs.AddFile("lib/zlib.c", "")
	fs.AddFile("lib/tests/fixture.ABOUT", "name: fixture")
	fs.AddFile("vendor/skip.ABOUT", "name: skip")
	fs.AddFile("a.ABOUT", "name: a")
	fs.AddFile(".ABOUT", "name: hidden")

	root, rels, err := c.Find("/project")
	require.NoError(t, err)
	assert.Equal(t, "/project", root)
	assert.Equal(t, []string{"a.ABOUT", "lib/zlib.ABOUT"}, rels)
}

func TestFind_SingleFile(t *testing.T) {
	c, fs := newTestCollector()
	fs.AddFile("lib/zlib.ABOUT", "name: zlib")

	root, rels, err := c.Find("/project/lib/zlib.ABOUT")
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/project/lib"), root)
	assert.Equal(t, []string{"zlib.ABOUT"}, rels)

	fs.AddFile("lib/zlib.c", "")
	_, _, err = c.Find("/project/lib/zlib.c")
	assert.ErrorIs(t, err, about.ErrInvalidInput)

	_, _, err = c.Find("/project/missing")
	assert.ErrorIs(t, err, about.ErrInvalidInput)
}

func TestCheckFileNames(t *testing.T) {
	diags := CheckFileNames([]string{"lib/zlib.ABOUT", "lib/ZLIB.about", "lib/my lib@1.ABOUT"})
	assert.Equal(t, []string{
		"CRITICAL: Duplicate files: 'lib/zlib.ABOUT' and 'lib/ZLIB.about' have the same case-insensitive file name",
		"CRITICAL: Invalid characters ' @' in file name at: 'lib/my lib@1.ABOUT'",
	}, messages(diags))
}

func TestCollect_PrefixesDiagnostics(t *testing.T) {
	c, fs := newTestCollector()
	fs.AddFile("lib/zlib.ABOUT", "about_resource: zlib.c\nname: zlib\n")
	fs.AddFile("lib/zlib.c", "")
	fs.AddFile("png.ABOUT", "name: png\n")

	result, err := c.Collect("/project")
	require.NoError(t, err)
	defer result.Close()

	require.Len(t, result.Records, 2)
	assert.Equal(t, "lib/zlib.ABOUT", result.Records[0].AboutFilePath)
	assert.Equal(t, []string{"lib/zlib.c"}, result.Records[0].ResolvedResources())
	assert.False(t, result.DuplicateKeys)
	assert.Equal(t, []string{"CRITICAL: png.ABOUT: Field about_resource is required"}, messages(result.Diagnostics))
}

func TestCollect_DuplicateKeys(t *testing.T) {
	c, fs := newTestCollector()
	fs.AddFile("a.ABOUT", "about_resource: .\nname: a\nNAME: b\n")

	result, err := c.Collect("/project")
	require.NoError(t, err)
	defer result.Close()

	assert.True(t, result.DuplicateKeys)
	assert.Equal(t, []string{"ERROR: a.ABOUT: Duplicated key name(s): NAME"}, messages(result.Diagnostics))
}

func TestCollect_Zip(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "abouts.zip")
	f, err := os.Create(archive)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	for name, content := range map[string]string{
		"pkg/zlib.ABOUT": "about_resource: .\nname: zlib\n",
		"pkg/README":     "readme",
	} {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	result, err := New().Collect(archive)
	require.NoError(t, err)
	extracted := result.Root

	require.Len(t, result.Records, 1)
	assert.Equal(t, "pkg/zlib.ABOUT", result.Records[0].AboutFilePath)
	assert.Empty(t, result.Diagnostics)

	require.NoError(t, result.Close())
	_, err = os.Stat(extracted)
	assert.True(t, os.IsNotExist(err))
}

func TestExtractZip_RejectsEscapingEntries(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "evil.zip")
	f, err := os.Create(archive)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	_, err = w.Create("../evil.ABOUT")
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	_, _, err = ExtractZip(archive)
	assert.Error(t, err)
}

package filesystem

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"templates/default_html.template": {Data: []byte("<html></html>")},
		"templates/text/plain.template":   {Data: []byte("{{ .ToolVersion }}")},
	}
}

func TestIOFileSystem_ReadFile(t *testing.T) {
	p := NewIOFileSystem(testFS(), "templates")

	content, err := p.ReadFile("default_html.template")
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(content))

	_, err = p.ReadFile("missing.template")
	assert.Error(t, err)
}

func TestIOFileSystem_Walk(t *testing.T) {
	p := NewIOFileSystem(testFS(), "templates")

	d, err := p.Open(".")
	require.NoError(t, err)

	var files []string
	err = d.Walk(func(f File, err error) error {
		require.NoError(t, err)
		if !f.Info().IsDir() {
			files = append(files, f.RelativePath())
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"default_html.template", "text/plain.template"}, files)
}

func TestIOFileSystem_OpenFileFails(t *testing.T) {
	p := NewIOFileSystem(testFS(), "templates")

	_, err := p.Open("default_html.template")
	assert.Error(t, err)

	info, err := p.Stat("text")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

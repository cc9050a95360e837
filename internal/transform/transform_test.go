package transform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aboutkit/aboutkit/internal/inventory"
	"github.com/aboutkit/aboutkit/pkg/about"
)

func messages(diags about.Diagnostics) []string {
	var out []string
	for _, d := range diags {
		out = append(out, d.String())
	}
	return out
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte("field_renamings:\n\t'Directory/Location': about_resource\nrequired_fields:\n  - version\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Directory/Location": "about_resource"}, cfg.FieldRenamings)
	assert.Equal(t, []string{"version"}, cfg.RequiredFields)

	empty, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Empty(t, empty.FieldFilters)

	_, err = ParseConfig([]byte("field_filters: [unclosed"))
	assert.True(t, errors.Is(err, about.ErrInvalidConfig))
}

func TestApply_RenameFilterExclude(t *testing.T) {
	inv := &inventory.Inventory{
		Columns: []string{" Directory/Location ", "Name", "Version", "Temp", "Owner"},
		Rows: []inventory.Row{
			{" Directory/Location ": "lib/zlib", "Name": "zlib", "Version": "1.2", "Temp": "x", "Owner": "Jean"},
		},
	}
	cfg := &Config{
		FieldRenamings: map[string]string{"directory/location": "About_Resource"},
		FieldFilters:   []string{"about_resource", "name", "version", "temp"},
		ExcludeFields:  []string{"TEMP"},
	}

	out, diags := Apply(inv, cfg)
	assert.Empty(t, diags)
	require.NotNil(t, out)

	want := &inventory.Inventory{
		Columns: []string{"about_resource", "name", "version"},
		Rows:    []inventory.Row{{"about_resource": "lib/zlib", "name": "zlib", "version": "1.2"}},
	}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_DuplicatedFieldNames(t *testing.T) {
	inv := &inventory.Inventory{Columns: []string{"name", "Name ", "version", "VERSION"}}
	out, diags := Apply(inv, nil)
	assert.Nil(t, out)
	assert.Equal(t, []string{
		"CRITICAL: Duplicated field name: name",
		"CRITICAL: Duplicated field name: version",
	}, messages(diags))

	inv = &inventory.Inventory{Columns: []string{"about_resource", "name", "title"}}
	out, diags = Apply(inv, &Config{FieldRenamings: map[string]string{"title": "name"}})
	assert.Nil(t, out)
	assert.Equal(t, []string{"CRITICAL: Duplicated field name: name"}, messages(diags))
}

func TestApply_RequiredFields(t *testing.T) {
	inv := &inventory.Inventory{
		Columns: []string{"about_resource", "name", "version"},
		Rows: []inventory.Row{
			{"about_resource": "a.c", "name": "a", "version": "1"},
			{"about_resource": "b.c", "name": " ", "version": ""},
		},
	}
	_, diags := Apply(inv, &Config{RequiredFields: []string{"Version", "name"}})
	assert.Equal(t, []string{
		"CRITICAL: Row 2 is missing required values for fields: name, version",
	}, messages(diags))

	_, diags = Apply(inv, &Config{ExcludeFields: []string{"name"}})
	assert.Len(t, diags, 2)
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(in, []byte("Resource,Name,Notes\nzlib/,zlib,internal\n"), 0644))
	cfg := &Config{
		FieldRenamings: map[string]string{"resource": "about_resource"},
		ExcludeFields:  []string{"notes"},
	}

	out := filepath.Join(dir, "out.json")
	diags, err := File(in, out, cfg, "")
	require.NoError(t, err)
	assert.Empty(t, diags)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"about_resource": ["zlib/"], "name": "zlib"}]`, string(data))
}

func TestFile_NoOutputOnErrors(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(in, []byte("about_resource,version\na.c,1\n"), 0644))

	out := filepath.Join(dir, "out.csv")
	diags, err := File(in, out, &Config{}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"CRITICAL: Row 1 is missing required values for fields: name"}, messages(diags))
	assert.NoFileExists(t, out)
}

func TestFile_BadFormats(t *testing.T) {
	dir := t.TempDir()
	_, err := File(filepath.Join(dir, "in.txt"), filepath.Join(dir, "out.csv"), nil, "")
	assert.True(t, errors.Is(err, about.ErrInvalidInput))

	in := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(in, []byte("about_resource,name\na,b\n"), 0644))
	_, err = File(in, filepath.Join(dir, "out.txt"), nil, "")
	assert.True(t, errors.Is(err, about.ErrOutputLocation))
}

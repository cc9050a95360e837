package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aboutkit/aboutkit/internal/model"
)

func TestAboutFilePath(t *testing.T) {
	tests := []struct {
		resource  string
		wantPath  string
		wantValue string
	}{
		{"zlib-1.2.11.tar.gz", "zlib-1.2.11.tar.gz.ABOUT", "zlib-1.2.11.tar.gz"},
		{"/lib/zlib.c", "lib/zlib.c.ABOUT", "zlib.c"},
		{"lib/zlib/", "lib/zlib/zlib.ABOUT", "."},
		{"", "", "."},
	}
	for _, tt := range tests {
		t.Run(tt.resource, func(t *testing.T) {
			p, v := AboutFilePath(tt.resource)
			assert.Equal(t, tt.wantPath, p)
			assert.Equal(t, tt.wantValue, v)
		})
	}
}

func TestToRecord(t *testing.T) {
	row := Row{
		"about_resource":  "lib/zlib/",
		"about_file_path": "old/zlib.ABOUT",
		"name":            "zlib",
		"license_file":    "zlib.LICENSE, NOTICE",
		"vendor_ticket":   "ZL-1",
	}
	columns := []string{"about_file_path", "about_resource", "name", "license_file", "vendor_ticket"}

	record, diags := ToRecord(row, columns)
	assert.Empty(t, diags)
	assert.Equal(t, "lib/zlib/zlib.ABOUT", record.AboutFilePath)
	assert.Equal(t, ".", record.Get(model.FieldAboutResource))
	assert.Equal(t, []string{"zlib.LICENSE", "NOTICE"}, record.Items(model.FieldLicenseFile))
	assert.Equal(t, "ZL-1", record.Get("vendor_ticket"))
	assert.False(t, record.Has("about_file_path"))
}

func TestToRecord_InvalidCustomField(t *testing.T) {
	record, diags := ToRecord(Row{"about_resource": "a.c", "name": "a", "Bad Name": "x"}, []string{"about_resource", "name", "Bad Name"})
	require.NotNil(t, record)
	assert.True(t, diags.HasProblems())
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aboutkit/aboutkit/internal/files/filesystem"
	"github.com/aboutkit/aboutkit/pkg/about"
)

func messages(ds about.Diagnostics) []string {
	var out []string
	for _, d := range ds {
		out = append(out, d.String())
	}
	return out
}

func memOpts(mfs *filesystem.MemoryFileSystem) ValidateOptions {
	return ValidateOptions{FS: mfs, BaseDir: mfs.Root()}
}

func TestValidate_RequiredFields(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/proj")
	r := NewRecord("a.ABOUT")
	r.Set("name", "  ")

	diags := r.Validate(memOpts(mfs))
	assert.Contains(t, messages(diags), "CRITICAL: Field about_resource is required")
	assert.Contains(t, messages(diags), "CRITICAL: Field name is required and empty")
}

func TestValidate_OptionalEmpty(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/proj")
	mfs.AddFile("zlib.c", "int x;")
	r := NewRecord("zlib.ABOUT")
	r.Set("about_resource", "zlib.c")
	r.Set("name", "zlib")
	r.Set("notes", "")

	diags := r.Validate(memOpts(mfs))
	assert.Equal(t, []string{"WARNING: Field notes is present but empty."}, messages(diags))
}

func TestValidate_FieldKinds(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/proj")
	mfs.AddFile("zlib.c", "int x;")
	r := NewRecord("zlib.ABOUT")
	r.Set("about_resource", "zlib.c")
	r.Set("name", "zlib\nsecond line")
	r.Set("homepage_url", "www.zlib.net")
	r.Set("download_url", "https://zlib.net/zlib-1.2.11.tar.gz   ")
	r.Set("package_url", "zlib-1.2.11")
	r.Set("contact", "a@b.c\n\na@b.c")
	r.Set("redistribute", "maybe")
	r.Set("modified", "X")

	diags := r.Validate(memOpts(mfs))
	msgs := messages(diags)
	assert.Contains(t, msgs, "ERROR: Field name: Cannot span multiple lines: zlib\nsecond line")
	assert.Contains(t, msgs, "WARNING: Field homepage_url: Invalid URL: www.zlib.net")
	assert.Contains(t, msgs, "WARNING: Field package_url: Invalid Package URL: zlib-1.2.11")
	assert.Contains(t, msgs, "INFO: Field contact: ignored empty list value")
	assert.Contains(t, msgs, "WARNING: Field contact: ignored duplicated list value: 'a@b.c'")
	assert.Contains(t, msgs, "ERROR: Field redistribute: Invalid flag value: 'maybe' is not one of: yes, y, true, x, no, n, false")
	assert.NotContains(t, msgs, "WARNING: Field download_url: Invalid URL: https://zlib.net/zlib-1.2.11.tar.gz")

	assert.Equal(t, []string{"a@b.c"}, r.Items("contact"))
	assert.True(t, r.Modified())
	assert.False(t, r.Redistribute())
	assert.Equal(t, "https://zlib.net/zlib-1.2.11.tar.gz", r.Get("download_url"))
}

func TestValidate_Paths(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/proj")
	mfs.AddFile("third_party/zlib/zlib.h", "/* */")
	mfs.AddFile("third_party/zlib.LICENSE", "zlib license text")

	r := NewRecord("third_party/zlib.ABOUT")
	r.Set("about_resource", "/zlib/")
	r.Set("name", "zlib")
	r.Set("license_file", "zlib.LICENSE\nmissing.LICENSE")
	r.Set("ignored_resources", "tests")

	diags := r.Validate(ValidateOptions{FS: mfs, BaseDir: "/proj/third_party"})
	msgs := messages(diags)
	assert.Contains(t, msgs, "CRITICAL: Field license_file: Path /proj/third_party/missing.LICENSE not found")
	assert.Contains(t, msgs, "CRITICAL: Field ignored_resources: Path /proj/third_party/tests not found")
	assert.Len(t, msgs, 2)

	assert.Equal(t, []string{"zlib"}, r.Items("about_resource"))
	assert.Equal(t, []string{"zlib license text"}, r.Field("license_file").Texts())
	assert.Equal(t, []string{"third_party/zlib"}, r.ResolvedResources())
}

func TestValidate_NoBaseDir(t *testing.T) {
	r := NewRecord("a.ABOUT")
	r.Set("about_resource", ".")
	r.Set("name", "a")

	diags := r.Validate(ValidateOptions{FS: filesystem.NewMemoryFileSystem("/")})
	assert.Equal(t, []string{"ERROR: Field about_resource: Unable to verify path: .: No base directory provided"}, messages(diags))
}

func TestValidate_ReferenceDirFallback(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/proj")
	mfs.AddFile("out/zlib.c", "x")
	mfs.AddFile("/ref/zlib.LICENSE", "reference text")

	r := NewRecord("zlib.ABOUT")
	r.Set("about_resource", "zlib.c")
	r.Set("name", "zlib")
	r.Set("license_file", "zlib.LICENSE")

	diags := r.Validate(ValidateOptions{FS: mfs, BaseDir: "/proj/out", ReferenceDir: "/ref"})
	assert.Empty(t, diags)
	assert.Equal(t, []string{"reference text"}, r.Field("license_file").Texts())
}

func TestValidate_LicenseExpression(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/proj")
	mfs.AddFile("a", "x")

	tests := []struct {
		name string
		expr string
		keys string
		want string
	}{
		{"special chars", "mit & zlib", "", "ERROR: The following character(s) cannot be in the license_expression: ['&']"},
		{"parse error", "mit AND", "", "ERROR: Field license_expression: expression ends with an operator"},
		{"key mismatch", "mit AND zlib", "mit", "ERROR: Field license_key does not match the keys of license_expression: mit vs mit, zlib"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecord("a.ABOUT")
			r.Set("about_resource", "a")
			r.Set("name", "a")
			r.Set("license_expression", tt.expr)
			if tt.keys != "" {
				r.Set("license_key", tt.keys)
			}
			assert.Contains(t, messages(r.Validate(memOpts(mfs))), tt.want)
		})
	}
}

func TestValidate_Checksums(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/proj")
	mfs.AddFile("abc.txt", "abc")

	r := NewRecord("abc.ABOUT")
	r.Set("about_resource", "abc.txt")
	r.Set("name", "abc")
	r.Set("checksum_md5", "900150983cd24fb0d6963f7d28e17f72")
	r.Set("checksum_sha1", "0000")

	diags := r.Validate(memOpts(mfs))
	assert.Equal(t, []string{"WARNING: Field checksum_sha1: checksum mismatch for abc.txt"}, messages(diags))

	diags = r.Validate(ValidateOptions{FS: mfs, BaseDir: "/proj", SkipChecksums: true})
	assert.Empty(t, diags)
}

func TestHydrate_CustomAndInvalidNames(t *testing.T) {
	r := NewRecord("a.ABOUT")
	diags := r.Hydrate([]Pair{
		{Name: "Name", Value: "a"},
		{Name: "Internal_Ref", Value: "JIRA-1"},
		{Name: "1bad", Value: "x"},
		{Name: "about_file_path", Value: "ignored"},
	})

	assert.Equal(t, []string{
		"INFO: Field internal_ref is a custom field.",
		`CRITICAL: Field name: "1bad" contains illegal name characters (or empty spaces) and is ignored.`,
	}, messages(diags))
	assert.Equal(t, "a", r.Name())
	assert.Equal(t, []string{"internal_ref"}, r.CustomFieldNames())
	assert.Nil(t, r.Field("about_file_path"))
}

func TestLoad_DuplicateKeys(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/proj")
	mfs.AddFile("a.ABOUT", "name: a\nName: b\n")

	result := Load("/proj/a.ABOUT", "a.ABOUT", ValidateOptions{FS: mfs})
	assert.Equal(t, []string{"Name"}, result.DuplicateKeys)
	assert.Equal(t, []string{"ERROR: Duplicated key name(s): Name"}, messages(result.Record.Errors))
}

func TestLoad_ResolvesAgainstAboutDir(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/proj")
	mfs.AddFile("lib/zlib.ABOUT", "about_resource: .\nname: zlib\nlicense_expression: zlib\n")

	result := Load("/proj/lib/zlib.ABOUT", "lib/zlib.ABOUT", ValidateOptions{FS: mfs})
	require.Empty(t, result.DuplicateKeys)
	assert.Empty(t, result.Record.Errors)
	assert.Equal(t, []string{"lib/"}, result.Record.ResolvedResources())
}

func TestLoad_Unreadable(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/proj")
	result := Load("/proj/missing.ABOUT", "missing.ABOUT", ValidateOptions{FS: mfs})
	require.Len(t, result.Record.Errors, 1)
	assert.Equal(t, about.Critical, result.Record.Errors[0].Severity)
}

func TestValidate_AllowMissingResources(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/out")
	r := NewRecord("zlib.c.ABOUT")
	r.Set("about_resource", "zlib.c")
	r.Set("name", "zlib")

	diags := r.Validate(ValidateOptions{FS: mfs, BaseDir: "/out", AllowMissingResources: true})
	assert.Equal(t, []string{"INFO: Field about_resource: /out/zlib.c does not exist"}, messages(diags))
	assert.False(t, diags.HasProblems())
}

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aboutkit/aboutkit/pkg/about"
)

func sampleDiagnostics() about.Diagnostics {
	var ds about.Diagnostics
	ds.Add(about.Info, "Field foo is a custom field.")
	ds.Add(about.Critical, "Field name is required")
	ds.Add(about.Warning, "Field notes is present but empty.")
	ds.Add(about.Critical, "Field name is required")
	return ds
}

func TestReporter_Normal_PrintsProblemsOnce(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, Normal, false)
	r.Report(sampleDiagnostics())

	assert.Equal(t,
		"CRITICAL: Field name is required\nWARNING: Field notes is present but empty.\n",
		buf.String())
}

func TestReporter_Loud_PrintsEverything(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, Loud, false)
	r.Report(sampleDiagnostics())

	assert.Contains(t, buf.String(), "INFO: Field foo is a custom field.")
	assert.Len(t, r.Visible(sampleDiagnostics()), 3)
}

func TestReporter_Quiet(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, Quiet, false)
	r.Report(sampleDiagnostics())
	r.Summary("No error found.")

	assert.Empty(t, buf.String())
}

func TestColorEnabled_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled(os.Stderr))
}

func TestColorEnabled_CI(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("CI", "true")
	assert.False(t, ColorEnabled(os.Stderr))
}

func TestWriteErrorLog(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteErrorLog(dir, sampleDiagnostics())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, about.ErrorLogName), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"CRITICAL: Field name is required\nWARNING: Field notes is present but empty.\n",
		string(content))
}

func TestWriteErrorLog_NoProblems(t *testing.T) {
	dir := t.TempDir()
	var ds about.Diagnostics
	ds.Add(about.Info, "fine")

	path, err := WriteErrorLog(dir, ds)
	require.NoError(t, err)
	assert.Empty(t, path)
	_, statErr := os.Stat(filepath.Join(dir, about.ErrorLogName))
	assert.True(t, os.IsNotExist(statErr))
}

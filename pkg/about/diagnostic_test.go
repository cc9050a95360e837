package about_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aboutkit/aboutkit/pkg/about"
)

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "CRITICAL", about.Critical.String())
	assert.Equal(t, "WARNING", about.Warning.String())
	assert.Equal(t, "NOTSET", about.NotSet.String())
	assert.Equal(t, "LEVEL45", about.Severity(45).String())
}

func TestSeverity_IsProblem(t *testing.T) {
	assert.True(t, about.Critical.IsProblem())
	assert.True(t, about.Error.IsProblem())
	assert.True(t, about.Warning.IsProblem())
	assert.False(t, about.Info.IsProblem())
	assert.False(t, about.Debug.IsProblem())
}

func TestParseSeverity(t *testing.T) {
	sev, ok := about.ParseSeverity(" error ")
	assert.True(t, ok)
	assert.Equal(t, about.Error, sev)

	_, ok = about.ParseSeverity("fatal")
	assert.False(t, ok)
}

func TestDiagnostic_String(t *testing.T) {
	d := about.NewDiagnostic(about.Error, "Field %s is broken", "name")
	assert.Equal(t, "ERROR: Field name is broken", d.String())

	literal := "100% literal"
	raw := about.NewDiagnostic(about.Info, literal)
	assert.Equal(t, "100% literal", raw.Message)
}

func TestDiagnostics_Helpers(t *testing.T) {
	var ds about.Diagnostics
	ds.Add(about.Info, "custom field")
	assert.False(t, ds.HasProblems())

	ds.Add(about.Warning, "empty")
	ds.Add(about.Critical, "missing")
	ds.Add(about.Warning, "empty")

	assert.True(t, ds.HasProblems())
	assert.True(t, ds.HasSeverity(about.Critical))
	assert.Equal(t, 3, ds.CountProblems())
	assert.Len(t, ds.Problems(), 3)

	unique := ds.Unique()
	assert.Len(t, unique, 3)
	assert.Equal(t, "custom field", unique[0].Message)

	prefixed := unique.WithPrefix("a/b.ABOUT")
	assert.Equal(t, "a/b.ABOUT: missing", prefixed[2].Message)
	assert.Equal(t, "missing", unique[2].Message)
}

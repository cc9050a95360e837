package check

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aboutkit/aboutkit/internal/license"
	"github.com/aboutkit/aboutkit/internal/model"
	"github.com/aboutkit/aboutkit/pkg/about"
)

type countingLibrary struct {
	known map[string]bool
	err   error
	calls int
}

func (c *countingLibrary) Name() string { return "test" }

func (c *countingLibrary) Fetch(_ context.Context, key string) (*license.License, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	if c.known[key] {
		return &license.License{Key: key}, nil
	}
	return nil, fmt.Errorf("%w: %s", license.ErrUnknownLicense, key)
}

func record(aboutPath, expression string) *model.Record {
	r := model.NewRecord(aboutPath)
	r.Set("name", "x")
	r.Set("license_expression", expression)
	return r
}

func messages(diags about.Diagnostics) []string {
	var out []string
	for _, d := range diags {
		out = append(out, d.String())
	}
	return out
}

func TestLicenses(t *testing.T) {
	lib := &countingLibrary{known: map[string]bool{"mit": true}}
	records := []*model.Record{
		record("a.ABOUT", "mit AND bogus"),
		record("b/b.ABOUT", "bogus OR mit"),
	}

	diags := Licenses(context.Background(), lib, records)
	assert.Equal(t, []string{
		"ERROR: Invalid 'license': bogus: a.ABOUT",
		"ERROR: Invalid 'license': bogus: b/b.ABOUT",
	}, messages(diags))
	assert.Equal(t, 2, lib.calls)
}

func TestLicenses_Unauthorized(t *testing.T) {
	lib := &countingLibrary{err: about.ErrUnauthorized}
	diags := Licenses(context.Background(), lib, []*model.Record{record("a.ABOUT", "mit AND zlib")})
	assert.Equal(t, []string{
		"ERROR: Authorization denied. Invalid '--api_key'. License generation is skipped.",
	}, messages(diags))
	assert.Equal(t, 1, lib.calls)
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "No error found.", Summary(nil))

	var diags about.Diagnostics
	diags.Add(about.Info, "fine")
	assert.Equal(t, "No error found.", Summary(diags))

	diags.Add(about.Error, "bad")
	diags.Add(about.Error, "bad")
	diags.Add(about.Warning, "meh")
	assert.Equal(t, "Found 2 errors.", Summary(diags))
}

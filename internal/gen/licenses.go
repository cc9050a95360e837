package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aboutkit/aboutkit/internal/files/filesystem"
	"github.com/aboutkit/aboutkit/internal/license"
	"github.com/aboutkit/aboutkit/internal/model"
	"github.com/aboutkit/aboutkit/pkg/about"
)

// LicenseKeys returns the license keys of records in order of first
// appearance. Keys come from license_expression, or license_key when no
// expression is set. Unparsable expressions are skipped.
func LicenseKeys(records []*model.Record) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, r := range records {
		found, err := license.KeysOf(r.Get(model.FieldLicenseExpression))
		if err != nil {
			continue
		}
		if len(found) == 0 {
			found = r.Items(model.FieldLicenseKey)
		}
		for _, k := range found {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// WriteLicenses fetches every license key of records from lib and writes
// <output>/<key>.LICENSE. It returns the written keys.
func WriteLicenses(ctx context.Context, lib license.Library, records []*model.Record, output string) ([]string, about.Diagnostics, error) {
	if !filesystem.IsDir(filesystem.NewOSFileSystem(), output) {
		return nil, nil, fmt.Errorf("%w: %s is not an existing directory", about.ErrOutputLocation, output)
	}
	keys := LicenseKeys(records)
	fetched, diags := license.FetchAll(ctx, lib, keys)

	var written []string
	for _, key := range keys {
		lic, ok := fetched[key]
		if !ok {
			continue
		}
		location := filepath.Join(output, license.DefaultFilename(key))
		if err := os.WriteFile(location, []byte(lic.Text), 0644); err != nil {
			diags.Add(about.Error, "Cannot write license file %s: %v", license.DefaultFilename(key), err)
			continue
		}
		written = append(written, key)
	}
	return written, diags, nil
}

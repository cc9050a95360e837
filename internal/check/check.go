// Package check validates collected ABOUT records and, optionally, looks up
// their license keys in a license library.
package check

import (
	"context"
	"errors"
	"fmt"

	"github.com/aboutkit/aboutkit/internal/license"
	"github.com/aboutkit/aboutkit/internal/model"
	"github.com/aboutkit/aboutkit/pkg/about"
)

// Licenses looks up every license key of each record in lib. Each key is
// fetched once; unknown keys are reported for every ABOUT file using them.
// An authorization failure is reported once and stops further lookups.
func Licenses(ctx context.Context, lib license.Library, records []*model.Record) about.Diagnostics {
	var diags about.Diagnostics
	known := make(map[string]bool)
	for _, r := range records {
		keys, err := license.KeysOf(r.Get(model.FieldLicenseExpression))
		if err != nil {
			continue
		}
		for _, key := range keys {
			ok, done := known[key]
			if !done {
				_, err := lib.Fetch(ctx, key)
				switch {
				case err == nil:
					ok = true
				case errors.Is(err, license.ErrUnknownLicense):
					ok = false
				default:
					diags = append(diags, license.Diagnose(key, err))
					return diags
				}
				known[key] = ok
			}
			if !ok {
				diags.Add(about.Error, "Invalid 'license': %s: %s", key, r.AboutFilePath)
			}
		}
	}
	return diags
}

// Summary returns the closing line printed by the check command.
func Summary(diags about.Diagnostics) string {
	if n := diags.Unique().CountProblems(); n > 0 {
		return fmt.Sprintf("Found %d errors.", n)
	}
	return "No error found."
}

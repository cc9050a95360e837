package attrib

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/aboutkit/aboutkit/internal/inventory"
	"github.com/aboutkit/aboutkit/internal/model"
	"github.com/aboutkit/aboutkit/pkg/about"
)

// Generate builds the context for records and renders tmpl. License
// resolution problems are returned as diagnostics; the error reports a
// template that failed to execute.
func Generate(ctx context.Context, tmpl *Template, records []*model.Record, opts Options) (string, about.Diagnostics, error) {
	data, diags := BuildContext(ctx, records, opts)
	if err := ctx.Err(); err != nil {
		return "", diags, err
	}
	text, err := tmpl.Execute(data)
	if err != nil {
		return "", diags, err
	}
	return text, diags, nil
}

// WriteFile writes rendered attribution text to location.
func WriteFile(location, text string) error {
	if err := os.WriteFile(location, []byte(text), 0644); err != nil {
		return fmt.Errorf("%w: cannot write %s: %v", about.ErrOutputLocation, location, err)
	}
	return nil
}

// FilterByInventory keeps the records whose ABOUT file is listed in inv,
// preserving record order. Rows name ABOUT files through about_file_path
// or about_resource; resources are mapped to their ABOUT file path.
func FilterByInventory(records []*model.Record, inv *inventory.Inventory) []*model.Record {
	wanted := make(map[string]bool)
	for _, row := range inv.Normalized().Rows {
		for _, col := range []string{"about_file_path", model.FieldAboutResource} {
			v := strings.TrimLeft(strings.TrimSpace(row[col]), "/")
			if v == "" {
				continue
			}
			if !strings.EqualFold(path.Ext(v), about.AboutFileExtension) {
				v, _ = inventory.AboutFilePath(v)
			}
			wanted[strings.ToLower(v)] = true
		}
	}
	var out []*model.Record
	for _, r := range records {
		if wanted[strings.ToLower(r.AboutFilePath)] {
			out = append(out, r)
		}
	}
	return out
}

package gen

import (
	"fmt"
	"path"
	"strings"

	"github.com/aboutkit/aboutkit/internal/files/collector"
	"github.com/aboutkit/aboutkit/internal/inventory"
	"github.com/aboutkit/aboutkit/internal/model"
	"github.com/aboutkit/aboutkit/pkg/about"
)

// CheckInventory reports inventory problems that prevent generation:
// duplicated columns, missing required columns, duplicated or invalid
// about_resource values and multi-line file fields.
func CheckInventory(inv *inventory.Inventory) about.Diagnostics {
	var diags about.Diagnostics
	if dups := inv.DuplicateColumns(); len(dups) > 0 {
		parts := make([]string, 0, len(dups))
		for _, group := range dups {
			parts = append(parts, fmt.Sprintf("%s with %s", inventory.NormalizeColumn(group[0]), strings.Join(group, ", ")))
		}
		diags.Add(about.Error, "Duplicated column name(s): %s\nPlease correct the input and re-run.", strings.Join(parts, ", "))
		return diags
	}

	norm := inv.Normalized()
	columns := make(map[string]bool, len(norm.Columns))
	for _, c := range norm.Columns {
		columns[c] = true
	}
	if !columns[model.FieldAboutResource] {
		diags.Add(about.Critical, "The essential field 'about_resource' is not found in the <input>")
		return diags
	}

	seen := make(map[string]bool)
	for _, row := range norm.Rows {
		arp := strings.TrimSpace(row[model.FieldAboutResource])
		if seen[arp] {
			diags.Add(about.Critical, "The input has duplicated values in 'about_resource' field: %s", arp)
		}
		seen[arp] = true

		if collector.InvalidChars(path.Base(strings.TrimRight(arp, "/"))) != "" {
			diags.Add(about.Error, "Invalid characters present in 'about_resource' field: %s", arp)
		}
		for _, c := range norm.Columns {
			if model.IsFileField(c) && strings.Contains(strings.TrimSpace(row[c]), "\n") {
				diags.Add(about.Critical, "New line character detected in '%s' for '%s' which is not supported.\nPlease use ',' to declare multiple files.", c, arp)
			}
		}
	}
	if diags.HasProblems() {
		return diags.Unique()
	}

	for _, name := range model.RequiredFieldNames() {
		if !columns[name] {
			diags.Add(about.Critical, "Required field: '%s' not found in the <input>", name)
			break
		}
	}
	return diags.Unique()
}

package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aboutkit/aboutkit/internal/inventory"
	"github.com/aboutkit/aboutkit/internal/model"
	"github.com/aboutkit/aboutkit/pkg/about"
)

// File reads the inventory at location, transforms it and writes it to
// output. Formats follow the file extensions. Nothing is written when an
// ERROR or CRITICAL diagnostic is found.
func File(location, output string, cfg *Config, worksheet string) (about.Diagnostics, error) {
	if _, err := inventory.FormatOf(location); err != nil {
		return nil, err
	}
	format, err := inventory.FormatOf(output)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", about.ErrOutputLocation, err)
	}
	inv, err := inventory.Read(location, inventory.ReadOptions{Worksheet: worksheet})
	if err != nil {
		return nil, err
	}
	out, diags := Apply(inv, cfg)
	if out == nil || diags.HasSeverity(about.Error) {
		return diags, nil
	}
	if err := inventory.Write(output, format, out); err != nil {
		return diags, err
	}
	return diags, nil
}

// Apply transforms inv and returns the result. When any CRITICAL or ERROR
// diagnostic is returned the result must not be written; it is nil when
// the field names themselves are invalid.
func Apply(inv *inventory.Inventory, cfg *Config) (*inventory.Inventory, about.Diagnostics) {
	var diags about.Diagnostics
	if cfg == nil {
		cfg = &Config{}
	}

	columns := cleanFields(inv.Columns)
	if dupes := duplicates(columns); len(dupes) > 0 {
		for _, d := range dupes {
			diags.Add(about.Critical, "Duplicated field name: %s", d)
		}
		return nil, diags
	}

	renamings := make(map[string]string, len(cfg.FieldRenamings))
	for from, to := range cfg.FieldRenamings {
		renamings[clean(from)] = clean(to)
	}
	renamed := make([]string, len(columns))
	for i, c := range columns {
		renamed[i] = c
		if to, ok := renamings[c]; ok && to != "" {
			renamed[i] = to
		}
	}
	if dupes := duplicates(renamed); len(dupes) > 0 {
		for _, d := range dupes {
			diags.Add(about.Critical, "Duplicated field name: %s", d)
		}
		return nil, diags
	}

	keep := func(string) bool { return true }
	if len(cfg.FieldFilters) > 0 {
		filters := toSet(cfg.FieldFilters)
		keep = func(name string) bool { return filters[name] }
	}
	excluded := toSet(cfg.ExcludeFields)

	out := &inventory.Inventory{}
	source := make(map[string]string)
	for i, name := range renamed {
		if keep(name) && !excluded[name] {
			out.Columns = append(out.Columns, name)
			source[name] = inv.Columns[i]
		}
	}
	for _, row := range inv.Rows {
		n := make(inventory.Row, len(out.Columns))
		for _, name := range out.Columns {
			if v, ok := row[source[name]]; ok {
				n[name] = v
			}
		}
		out.Rows = append(out.Rows, n)
	}

	diags.Extend(checkRequired(out, requiredFields(cfg)))
	return out, diags
}

// requiredFields returns about_resource, name and the configured required
// fields, without duplicates.
func requiredFields(cfg *Config) []string {
	names := append([]string(nil), model.RequiredFieldNames()...)
	seen := toSet(names)
	for _, f := range cfg.RequiredFields {
		f = clean(f)
		if f != "" && !seen[f] {
			seen[f] = true
			names = append(names, f)
		}
	}
	return names
}

// checkRequired reports each row missing a value for a required field.
// Rows are numbered from 1.
func checkRequired(inv *inventory.Inventory, required []string) about.Diagnostics {
	var diags about.Diagnostics
	for i, row := range inv.Rows {
		var missing []string
		for _, f := range required {
			if strings.TrimSpace(row[f]) == "" {
				missing = append(missing, f)
			}
		}
		if len(missing) > 0 {
			diags.Add(about.Critical, "Row %d is missing required values for fields: %s", i+1, strings.Join(missing, ", "))
		}
	}
	return diags
}

func clean(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func cleanFields(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = clean(n)
	}
	return out
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[clean(n)] = true
	}
	return set
}

// duplicates returns the names occurring more than once, sorted.
func duplicates(names []string) []string {
	counts := make(map[string]int)
	for _, n := range names {
		counts[n]++
	}
	var out []string
	for n, c := range counts {
		if c > 1 {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

package model

import (
	"strings"

	"github.com/aboutkit/aboutkit/pkg/about"
)

// Hydrate assigns pairs to fields. Names are lowercased; invalid names are
// reported and skipped; unknown names become custom fields.
func (r *Record) Hydrate(pairs []Pair) about.Diagnostics {
	var diags about.Diagnostics
	for _, p := range pairs {
		name := strings.ToLower(strings.TrimSpace(p.Name))
		if legacyFields[name] {
			continue
		}
		if !IsValidFieldName(name) {
			diags.Add(about.Critical, "Field name: %q contains illegal name characters (or empty spaces) and is ignored.", p.Name)
			continue
		}
		if !IsStandardField(name) {
			diags.Add(about.Info, "Field %s is a custom field.", name)
		}
		r.Set(name, p.Value)
	}
	return diags
}

// HydrateMap assigns the values of a row keyed by field name, following order.
func (r *Record) HydrateMap(row map[string]string, order []string) about.Diagnostics {
	pairs := make([]Pair, 0, len(order))
	for _, name := range order {
		v, ok := row[name]
		if !ok {
			continue
		}
		pairs = append(pairs, Pair{Name: name, Value: v})
	}
	return r.Hydrate(pairs)
}

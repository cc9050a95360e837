package model

import "strings"

// Row returns the record as an inventory row: about_resource holds the
// resolved resource paths, other fields their serialized values. Fields
// without content are omitted.
func (r *Record) Row() map[string]string {
	row := make(map[string]string)
	for _, f := range r.Fields(false, false) {
		if !f.HasContent() {
			continue
		}
		if f.Name == FieldAboutResource {
			row[f.Name] = strings.Join(r.ResolvedResources(), "\n")
			continue
		}
		row[f.Name] = f.Value()
	}
	return row
}

// ColumnNames returns the ordered union of the row columns of records.
func ColumnNames(records []*Record) []string {
	var names []string
	seen := make(map[string]bool)
	for _, r := range records {
		for name := range r.Row() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return OrderFieldNames(names)
}

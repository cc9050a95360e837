package inventory

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aboutkit/aboutkit/internal/model"
	"github.com/aboutkit/aboutkit/pkg/about"
)

// Format is an inventory file format.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatExcel Format = "excel"
)

// ParseFormat parses a --format value. "xlsx" is accepted for excel.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "excel", "xlsx":
		return FormatExcel, nil
	}
	return "", fmt.Errorf("%w: unknown format %q: must be one of csv, json, excel", about.ErrInvalidInput, s)
}

// FormatOf returns the format implied by the extension of location.
func FormatOf(location string) (Format, error) {
	switch strings.ToLower(filepath.Ext(location)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".xlsx":
		return FormatExcel, nil
	}
	return "", fmt.Errorf("%w: Invalid input file format: must be .csv, .json or .xlsx", about.ErrInvalidInput)
}

// Row maps column names to values. List values are joined with newlines.
type Row map[string]string

// Inventory is an ordered table of rows.
type Inventory struct {
	// Columns holds the column names as read, in order.
	Columns []string
	Rows    []Row
}

// addColumn appends name unless already present.
func (inv *Inventory) addColumn(name string) {
	for _, c := range inv.Columns {
		if c == name {
			return
		}
	}
	inv.Columns = append(inv.Columns, name)
}

// Normalized returns a copy whose column names are trimmed and lowercased.
// Columns that collide after normalization are merged, first value wins.
func (inv *Inventory) Normalized() *Inventory {
	out := &Inventory{}
	for _, c := range inv.Columns {
		out.addColumn(NormalizeColumn(c))
	}
	for _, row := range inv.Rows {
		n := make(Row, len(row))
		for _, c := range inv.Columns {
			v, ok := row[c]
			if !ok {
				continue
			}
			key := NormalizeColumn(c)
			if _, seen := n[key]; !seen {
				n[key] = v
			}
		}
		out.Rows = append(out.Rows, n)
	}
	return out
}

// NormalizeColumn trims and lowercases a column name.
func NormalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DuplicateColumns returns groups of column names that are equal when
// normalized, each group in column order.
func (inv *Inventory) DuplicateColumns() [][]string {
	groups := make(map[string][]string)
	var order []string
	for _, c := range inv.Columns {
		key := NormalizeColumn(c)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], c)
	}
	var dups [][]string
	for _, key := range order {
		if len(groups[key]) > 1 {
			dups = append(dups, groups[key])
		}
	}
	return dups
}

// FromRecords builds an inventory from records, one row each.
func FromRecords(records []*model.Record) *Inventory {
	inv := &Inventory{Columns: model.ColumnNames(records)}
	for _, r := range records {
		inv.Rows = append(inv.Rows, Row(r.Row()))
	}
	return inv
}

// ReadOptions controls inventory reading.
type ReadOptions struct {
	// Worksheet selects the XLSX sheet. Empty selects the first sheet.
	Worksheet string
}

// Read reads the inventory at location, choosing the format by extension.
func Read(location string, opts ReadOptions) (*Inventory, error) {
	format, err := FormatOf(location)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatCSV:
		return ReadCSV(location)
	case FormatJSON:
		return ReadJSON(location)
	default:
		return ReadExcel(location, opts.Worksheet)
	}
}

// Write writes inv to location in format.
func Write(location string, format Format, inv *Inventory) error {
	switch format {
	case FormatCSV:
		return WriteCSV(location, inv)
	case FormatJSON:
		return WriteJSON(location, inv)
	case FormatExcel:
		return WriteExcel(location, inv)
	}
	return fmt.Errorf("%w: unknown format %q", about.ErrInvalidInput, format)
}

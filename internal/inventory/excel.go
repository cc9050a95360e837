package inventory

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/aboutkit/aboutkit/pkg/about"
)

// DefaultWorksheet is the sheet name used when writing XLSX inventories.
const DefaultWorksheet = "Sheet1"

// ReadExcel reads the named worksheet, or the first one when worksheet is
// empty. The first row is the header.
func ReadExcel(location, worksheet string) (*Inventory, error) {
	f, err := excelize.OpenFile(location)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open %s: %v", about.ErrInvalidInput, location, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Inventory{}, nil
	}
	sheet := sheets[0]
	if worksheet != "" {
		if idx, err := f.GetSheetIndex(worksheet); err != nil || idx < 0 {
			return nil, fmt.Errorf("%w: worksheet %q not found in %s", about.ErrInvalidInput, worksheet, location)
		}
		sheet = worksheet
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read worksheet %q of %s: %v", about.ErrInvalidInput, sheet, location, err)
	}
	if len(rows) == 0 {
		return &Inventory{}, nil
	}

	header := rows[0]
	inv := &Inventory{Columns: header}
	for _, cells := range rows[1:] {
		if isBlank(cells) {
			continue
		}
		row := make(Row, len(header))
		for i, name := range header {
			if i < len(cells) {
				if _, seen := row[name]; !seen {
					row[name] = cells[i]
				}
			}
		}
		inv.Rows = append(inv.Rows, row)
	}
	return inv, nil
}

// WriteExcel writes inv to a single-sheet workbook.
func WriteExcel(location string, inv *Inventory) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheet(f, DefaultWorksheet, inv); err != nil {
		return fmt.Errorf("failed to write %s: %w", location, err)
	}
	if err := f.SaveAs(location); err != nil {
		return fmt.Errorf("%w: %v", about.ErrOutputLocation, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, inv *Inventory) error {
	header := make([]interface{}, len(inv.Columns))
	for i, c := range inv.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for r, row := range inv.Rows {
		values := make([]interface{}, len(inv.Columns))
		for i, c := range inv.Columns {
			values[i] = row[c]
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

package inventory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aboutkit/aboutkit/pkg/about"
)

const utf8BOM = "\ufeff"

// ReadCSV reads a CSV inventory whose first record is the header.
// Blank rows are skipped; short rows leave the missing columns absent.
func ReadCSV(location string) (*Inventory, error) {
	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", about.ErrInvalidInput, err)
	}
	defer f.Close()
	return readCSV(f, location)
}

func readCSV(r io.Reader, location string) (*Inventory, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &Inventory{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read CSV %s: %v", about.ErrInvalidInput, location, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	inv := &Inventory{Columns: header}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: cannot read CSV %s: %v", about.ErrInvalidInput, location, err)
		}
		if isBlank(record) {
			continue
		}
		row := make(Row, len(header))
		for i, name := range header {
			if i < len(record) {
				if _, seen := row[name]; !seen {
					row[name] = record[i]
				}
			}
		}
		inv.Rows = append(inv.Rows, row)
	}
	return inv, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// WriteCSV writes inv with a header row.
func WriteCSV(location string, inv *Inventory) error {
	f, err := os.Create(location)
	if err != nil {
		return fmt.Errorf("%w: %v", about.ErrOutputLocation, err)
	}
	if err := writeCSV(f, inv); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", location, err)
	}
	return f.Close()
}

func writeCSV(w io.Writer, inv *Inventory) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(inv.Columns); err != nil {
		return err
	}
	for _, row := range inv.Rows {
		record := make([]string, len(inv.Columns))
		for i, c := range inv.Columns {
			record[i] = row[c]
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

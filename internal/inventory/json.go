package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/aboutkit/aboutkit/internal/model"
	"github.com/aboutkit/aboutkit/pkg/about"
)

// ReadJSON reads a JSON inventory. The document may be a list of objects,
// a single object, a ScanCode scan (entries under "files") or an
// aboutcode manager export (entries under "components").
func ReadJSON(location string) (*Inventory, error) {
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", about.ErrInvalidInput, err)
	}
	return parseJSON(data, location)
}

func parseJSON(data []byte, location string) (*Inventory, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %s is not valid JSON", about.ErrInvalidInput, location)
	}
	inv := &Inventory{}
	for _, entry := range jsonEntries(gjson.ParseBytes(data)) {
		if !entry.IsObject() {
			continue
		}
		row := make(Row)
		entry.ForEach(func(key, value gjson.Result) bool {
			name := key.String()
			inv.addColumn(name)
			if _, seen := row[name]; !seen {
				row[name] = jsonText(value)
			}
			return true
		})
		inv.Rows = append(inv.Rows, row)
	}
	return inv, nil
}

func jsonEntries(doc gjson.Result) []gjson.Result {
	switch {
	case doc.IsArray():
		return doc.Array()
	case doc.Get("files").IsArray():
		return doc.Get("files").Array()
	case doc.Get("components").IsArray():
		return doc.Get("components").Array()
	case doc.IsObject():
		return []gjson.Result{doc}
	}
	return nil
}

// jsonText flattens a value: scalars as text, arrays of scalars joined with
// newlines, anything else as raw JSON.
func jsonText(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return ""
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return v.String()
	}
	if !v.IsArray() {
		return v.Raw
	}
	var items []string
	for _, item := range v.Array() {
		if item.IsObject() || item.IsArray() {
			return v.Raw
		}
		items = append(items, item.String())
	}
	return strings.Join(items, "\n")
}

// WriteJSON writes inv as a list of objects in column order. Values of list
// fields are written as arrays. Empty values are omitted.
func WriteJSON(location string, inv *Inventory) error {
	data, err := marshalJSON(inv)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", location, err)
	}
	if err := os.WriteFile(location, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", about.ErrOutputLocation, err)
	}
	return nil
}

func marshalJSON(inv *Inventory) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range inv.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		first := true
		for _, c := range inv.Columns {
			v, ok := row[c]
			if !ok || v == "" {
				continue
			}
			if !first {
				buf.WriteByte(',')
			}
			first = false

			key, err := json.Marshal(c)
			if err != nil {
				return nil, err
			}
			var value interface{} = v
			if model.IsListField(NormalizeColumn(c)) {
				value = strings.Split(v, "\n")
			}
			encoded, err := json.Marshal(value)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(encoded)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

package inventory

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/aboutkit/aboutkit/internal/model"
	"github.com/aboutkit/aboutkit/pkg/about"
)

// FieldLicenseScore holds the detection scores of a ScanCode license scan,
// one per license key.
const FieldLicenseScore = "license_score"

var scanCodeColumns = []string{
	model.FieldAboutResource,
	model.FieldName,
	model.FieldLicenseExpression,
	model.FieldLicenseKey,
	model.FieldLicenseName,
	model.FieldSPDXLicenseKey,
	FieldLicenseScore,
	model.FieldCopyright,
}

// ReadScanCode reads the file entries of a ScanCode JSON scan. Directories
// and files without license or copyright detections are skipped. License
// detections scoring below minScore are dropped.
func ReadScanCode(location string, minScore float64) (*Inventory, error) {
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", about.ErrInvalidInput, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %s is not valid JSON", about.ErrInvalidInput, location)
	}
	files := gjson.GetBytes(data, "files")
	if !files.IsArray() {
		return nil, fmt.Errorf("%w: %s is not a ScanCode scan: no \"files\" list", about.ErrInvalidInput, location)
	}

	inv := &Inventory{Columns: append([]string(nil), scanCodeColumns...)}
	for _, entry := range files.Array() {
		if entry.Get("type").String() == "directory" {
			continue
		}
		if row := scanCodeRow(entry, minScore); row != nil {
			inv.Rows = append(inv.Rows, row)
		}
	}
	return inv, nil
}

func scanCodeRow(entry gjson.Result, minScore float64) Row {
	p := entry.Get("path").String()
	name := entry.Get("name").String()
	if name == "" {
		name = path.Base(p)
	}

	var keys, names, spdx, scores []string
	seen := make(map[string]bool)
	for _, lic := range entry.Get("licenses").Array() {
		key := lic.Get("key").String()
		score := lic.Get("score").Float()
		if key == "" || score < minScore || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
		names = append(names, lic.Get("short_name").String())
		if n := lic.Get("name").String(); n != "" {
			names[len(names)-1] = n
		}
		spdx = append(spdx, lic.Get("spdx_license_key").String())
		scores = append(scores, strconv.FormatFloat(score, 'f', -1, 64))
	}

	expression := scanCodeExpression(entry, keys)
	copyrights := scanCodeCopyrights(entry)
	if expression == "" && len(keys) == 0 && len(copyrights) == 0 {
		return nil
	}

	row := Row{
		model.FieldAboutResource: p,
		model.FieldName:          name,
	}
	set := func(field string, values []string) {
		if len(values) > 0 {
			row[field] = strings.Join(values, "\n")
		}
	}
	if expression != "" {
		row[model.FieldLicenseExpression] = expression
	}
	set(model.FieldLicenseKey, keys)
	set(model.FieldLicenseName, names)
	set(model.FieldSPDXLicenseKey, spdx)
	set(FieldLicenseScore, scores)
	set(model.FieldCopyright, copyrights)
	return row
}

// scanCodeExpression prefers the kept detection keys, then the detected
// expressions of newer scans.
func scanCodeExpression(entry gjson.Result, keys []string) string {
	if entry.Get("licenses").IsArray() && len(entry.Get("licenses").Array()) > 0 {
		return strings.Join(keys, " AND ")
	}
	if expr := entry.Get("detected_license_expression").String(); expr != "" {
		return expr
	}
	var exprs []string
	for _, e := range entry.Get("license_expressions").Array() {
		if s := e.String(); s != "" {
			exprs = append(exprs, s)
		}
	}
	if len(exprs) > 1 {
		for i, e := range exprs {
			if strings.Contains(e, " ") {
				exprs[i] = "(" + e + ")"
			}
		}
	}
	return strings.Join(exprs, " AND ")
}

func scanCodeCopyrights(entry gjson.Result) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, c := range entry.Get("copyrights").Array() {
		switch {
		case c.Type == gjson.String:
			add(c.String())
		case c.Get("copyright").Exists():
			add(c.Get("copyright").String())
		case c.Get("value").Exists():
			add(c.Get("value").String())
		default:
			for _, s := range c.Get("statements").Array() {
				add(s.String())
			}
		}
	}
	return out
}

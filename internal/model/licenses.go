package model

import (
	"path"
	"strings"

	"github.com/aboutkit/aboutkit/internal/license"
)

// LicenseRefs returns the licenses declared by the record. Keys come from
// license_key, or from license_expression when license_key is absent. Names,
// URLs and SPDX keys align by index; files are matched by <key>.LICENSE name
// first, then by index.
func (r *Record) LicenseRefs() []*license.License {
	keys := r.Items(FieldLicenseKey)
	if len(keys) == 0 {
		keys, _ = license.KeysOf(r.Get(FieldLicenseExpression))
	}
	names := r.aligned(FieldLicenseName, len(keys))
	urls := r.aligned(FieldLicenseURL, len(keys))
	spdx := r.aligned(FieldSPDXLicenseKey, len(keys))

	fileField := r.fields[FieldLicenseFile]
	files := fileField.Items()
	texts := make(map[string]string)
	for _, pv := range fileField.paths {
		if pv.Loaded {
			texts[pv.Path] = pv.Text
		}
	}

	at := func(list []string, i int) string {
		if i < len(list) {
			return list[i]
		}
		return ""
	}

	used := make(map[string]bool)
	refs := make([]*license.License, 0, len(keys))
	for i, key := range keys {
		ref := &license.License{
			Key:     key,
			Name:    at(names, i),
			URL:     at(urls, i),
			SPDXKey: at(spdx, i),
		}
		for _, f := range files {
			if !used[f] && strings.EqualFold(path.Base(f), license.DefaultFilename(key)) {
				ref.Filename = f
				break
			}
		}
		if ref.Filename == "" && len(files) == len(keys) && !used[files[i]] {
			ref.Filename = files[i]
		}
		if ref.Filename != "" {
			used[ref.Filename] = true
			ref.Text = texts[ref.Filename]
		}
		refs = append(refs, ref)
	}
	return refs
}

// aligned returns the raw lines of name when there is one per license key,
// keeping blanks so that entries stay paired by index. Otherwise it returns
// the field items.
func (r *Record) aligned(name string, n int) []string {
	f := r.fields[name]
	if f == nil || !f.Present {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(f.raw, "\r\n", "\n"), "\n")
	if len(lines) == n {
		for i := range lines {
			lines[i] = strings.TrimSpace(lines[i])
		}
		return lines
	}
	return f.Items()
}

// LicenseNameExpression renders license_expression with each key replaced
// by its license name, or by the key when no name is known.
func (r *Record) LicenseNameExpression() string {
	expr := r.Get(FieldLicenseExpression)
	if expr == "" {
		return ""
	}
	parsed, err := license.ParseExpression(expr)
	if err != nil {
		return expr
	}
	names := make(map[string]string)
	for _, ref := range r.LicenseRefs() {
		if ref.Name != "" {
			names[ref.Key] = ref.Name
		}
	}
	return parsed.Render(func(key string) string {
		if n, ok := names[key]; ok {
			return n
		}
		return key
	})
}

// ApplyLicenses fills license_key, license_name, license_file, license_url
// and spdx_license_key from resolved licenses, in the order of refs.
// License files are named <key>.LICENSE unless a filename is already set.
func (r *Record) ApplyLicenses(refs []*license.License) {
	if len(refs) == 0 {
		return
	}
	var keys, names, files, urls, spdx []string
	for _, ref := range refs {
		keys = append(keys, ref.Key)
		names = append(names, ref.DisplayName())
		filename := ref.Filename
		if filename == "" && ref.Text != "" {
			filename = license.DefaultFilename(ref.Key)
		}
		if filename != "" {
			files = append(files, filename)
		}
		if ref.URL != "" {
			urls = append(urls, ref.URL)
		}
		if ref.SPDXKey != "" {
			spdx = append(spdx, ref.SPDXKey)
		}
	}
	r.SetItems(FieldLicenseKey, keys)
	r.SetItems(FieldLicenseName, names)
	if len(files) > 0 {
		r.SetItems(FieldLicenseFile, files)
	}
	if len(urls) > 0 {
		r.SetItems(FieldLicenseURL, urls)
	}
	if len(spdx) > 0 {
		r.SetItems(FieldSPDXLicenseKey, spdx)
		if !r.Has(FieldSPDXLicenseExpression) {
			r.setSPDXExpression(refs)
		}
	}
}

func (r *Record) setSPDXExpression(refs []*license.License) {
	parsed, err := license.ParseExpression(r.Get(FieldLicenseExpression))
	if err != nil {
		return
	}
	spdx := make(map[string]string)
	for _, ref := range refs {
		if ref.SPDXKey != "" {
			spdx[ref.Key] = ref.SPDXKey
		}
	}
	r.Set(FieldSPDXLicenseExpression, parsed.Render(func(key string) string {
		if s, ok := spdx[key]; ok {
			return s
		}
		return key
	}))
}

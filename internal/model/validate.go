package model

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/aboutkit/aboutkit/internal/checksum"
	"github.com/aboutkit/aboutkit/internal/files/filesystem"
	"github.com/aboutkit/aboutkit/internal/license"
	"github.com/aboutkit/aboutkit/pkg/about"
)

// ValidateOptions controls how paths are resolved during validation.
type ValidateOptions struct {
	// FS resolves paths. Defaults to the OS filesystem.
	FS filesystem.FileSystemProvider

	// BaseDir is the directory that relative paths resolve against, normally
	// the directory holding the ABOUT file. Empty means paths cannot be verified.
	BaseDir string

	// ReferenceDir is searched for license and notice files missing from BaseDir.
	ReferenceDir string

	// SkipChecksums disables checksum_* verification.
	SkipChecksums bool

	// AllowMissingResources reports a missing about_resource as INFO instead
	// of CRITICAL, for ABOUT files generated away from the code they describe.
	AllowMissingResources bool
}

var purlPattern = regexp.MustCompile(`^pkg:[A-Za-z.+-][A-Za-z0-9.+-]*/.+`)

// Validate checks every field and the record-level rules. It stores and
// returns the diagnostics; it never fails with an error.
func (r *Record) Validate(opts ValidateOptions) about.Diagnostics {
	if opts.FS == nil {
		opts.FS = filesystem.NewOSFileSystem()
	}

	var diags about.Diagnostics
	for _, f := range r.Fields(true, true) {
		diags.Extend(validateField(f, opts))
	}
	diags.Extend(r.validateLicenses())
	if !opts.SkipChecksums {
		diags.Extend(r.verifyChecksums(opts))
	}
	r.Errors = diags
	return diags
}

func validateField(f *Field, opts ValidateOptions) about.Diagnostics {
	var diags about.Diagnostics
	f.reset()
	f.validated = true

	if !f.Present {
		if f.Required {
			diags.Add(about.Critical, "Field %s is required", f.Name)
		}
		return diags
	}
	if !f.HasContent() {
		if f.Required {
			diags.Add(about.Critical, "Field %s is required and empty", f.Name)
		} else {
			diags.Add(about.Warning, "Field %s is present but empty.", f.Name)
		}
		if f.Kind == KindBoolean {
			diags.Add(about.Info, "Field %s: field is empty. Defaulting flag to no.", f.Name)
		}
		return diags
	}

	value := normalizeText(f.raw)
	f.text = value

	switch f.Kind {
	case KindText:
	case KindSingleLine:
		if strings.Contains(value, "\n") {
			diags.Add(about.Error, "Field %s: Cannot span multiple lines: %s", f.Name, value)
		}
	case KindURL:
		if strings.Contains(value, "\n") {
			diags.Add(about.Error, "Field %s: Cannot span multiple lines: %s", f.Name, value)
		}
		if !isValidURL(value) {
			diags.Add(about.Warning, "Field %s: Invalid URL: %s", f.Name, value)
		}
	case KindPackageURL:
		if !purlPattern.MatchString(value) {
			diags.Add(about.Warning, "Field %s: Invalid Package URL: %s", f.Name, value)
		}
	case KindList, KindURLList, KindPath, KindFileText:
		diags.Extend(validateList(f))
		if f.Kind == KindURLList {
			for _, u := range f.items {
				if !isValidURL(u) {
					diags.Add(about.Warning, "Field %s: Invalid URL: %s", f.Name, u)
				}
			}
		}
		if f.Kind == KindPath || f.Kind == KindFileText {
			diags.Extend(validatePaths(f, opts))
		}
	case KindBoolean:
		flag, ok := parseFlag(value)
		if !ok {
			diags.Add(about.Error, "Field %s: Invalid flag value: '%s' is not one of: %s", f.Name, value, FlagValues)
		}
		f.flag = flag
	}
	return diags
}

func validateList(f *Field) about.Diagnostics {
	var diags about.Diagnostics
	items, empties, duplicates := splitItems(f.raw)
	if empties > 0 {
		diags.Add(about.Info, "Field %s: ignored empty list value", f.Name)
	}
	for _, d := range duplicates {
		diags.Add(about.Warning, "Field %s: ignored duplicated list value: '%s'", f.Name, d)
	}
	f.items = items
	return diags
}

func validatePaths(f *Field, opts ValidateOptions) about.Diagnostics {
	var diags about.Diagnostics
	normalized := make([]string, 0, len(f.items))
	for _, item := range f.items {
		p := NormalizePath(item)
		normalized = append(normalized, p)
		pv := PathValue{Path: p}

		if opts.BaseDir == "" {
			diags.Add(about.Error, "Field %s: Unable to verify path: %s: No base directory provided", f.Name, p)
			f.paths = append(f.paths, pv)
			continue
		}

		location := filepath.Join(opts.BaseDir, filepath.FromSlash(p))
		found := filesystem.Exists(opts.FS, location)
		if !found && f.Kind == KindFileText && opts.ReferenceDir != "" {
			ref := filepath.Join(opts.ReferenceDir, path.Base(p))
			if filesystem.Exists(opts.FS, ref) {
				location, found = ref, true
			}
		}
		if !found && f.Name == FieldAboutResource && opts.AllowMissingResources {
			diags.Add(about.Info, "Field %s: %s does not exist", f.Name, filepath.ToSlash(location))
			f.paths = append(f.paths, pv)
			continue
		}
		if !found {
			diags.Add(about.Critical, "Field %s: Path %s not found", f.Name, filepath.ToSlash(location))
			f.paths = append(f.paths, pv)
			continue
		}
		pv.Location = location

		if f.Kind == KindFileText {
			content, err := opts.FS.ReadFile(location)
			if err != nil {
				msg := err.Error()
				if len(msg) > 100 {
					msg = msg[:100]
				}
				diags.Add(about.Error, "Field %s: Failed to load text at path: %s with error: %s", f.Name, p, msg)
			} else {
				pv.Text = strings.ToValidUTF8(string(content), "")
				pv.Loaded = true
			}
		}
		f.paths = append(f.paths, pv)
	}
	f.items = normalized
	return diags
}

func isValidURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https", "ftp":
	default:
		return false
	}
	return u.Host != ""
}

func (r *Record) validateLicenses() about.Diagnostics {
	var diags about.Diagnostics
	expr := r.Get(FieldLicenseExpression)
	if expr == "" {
		return diags
	}

	if chars := license.SpecialChars(expr); len(chars) > 0 {
		diags.Add(about.Error, "The following character(s) cannot be in the license_expression: [%s]", quoteJoin(chars))
		return diags
	}
	keys, err := license.KeysOf(expr)
	if err != nil {
		diags.Add(about.Error, "Field %s: %v", FieldLicenseExpression, err)
		return diags
	}

	declared := r.Items(FieldLicenseKey)
	if len(declared) > 0 && !sameSet(declared, keys) {
		diags.Add(about.Error, "Field %s does not match the keys of %s: %s vs %s",
			FieldLicenseKey, FieldLicenseExpression, strings.Join(declared, ", "), strings.Join(keys, ", "))
	}
	return diags
}

func (r *Record) verifyChecksums(opts ValidateOptions) about.Diagnostics {
	var diags about.Diagnostics
	paths := r.fields[FieldAboutResource].paths
	if len(paths) != 1 || paths[0].Location == "" {
		return diags
	}
	var wanted []checksum.Algorithm
	for _, a := range checksum.Algorithms {
		if r.Has(a.FieldName()) {
			wanted = append(wanted, a)
		}
	}
	if len(wanted) == 0 {
		return diags
	}

	info, err := opts.FS.Stat(paths[0].Location)
	if err != nil || info.IsDir() {
		return diags
	}
	content, err := opts.FS.ReadFile(paths[0].Location)
	if err != nil {
		return diags
	}
	digests := checksum.Calculate(content)
	for _, a := range wanted {
		if !digests.Matches(a, r.Get(a.FieldName())) {
			diags.Add(about.Warning, "Field %s: checksum mismatch for %s", a.FieldName(), paths[0].Path)
		}
	}
	return diags
}

func sameSet(a, b []string) bool {
	x := append([]string(nil), a...)
	y := append([]string(nil), b...)
	sort.Strings(x)
	sort.Strings(y)
	return strings.Join(x, "\x00") == strings.Join(y, "\x00")
}

func quoteJoin(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("'%s'", s)
	}
	return strings.Join(quoted, ", ")
}

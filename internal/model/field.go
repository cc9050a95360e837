package model

import (
	"strings"
)

// PathValue is one entry of a path or file text field after validation.
type PathValue struct {
	// Path is the normalized, slash-separated path as written in the record.
	Path string
	// Location is the resolved location, or "" when unverified or missing.
	Location string
	// Text is the loaded content for file text fields.
	Text string
	// Loaded reports whether Text was read successfully.
	Loaded bool
}

// Field is one named value of a record. The raw value is kept as written;
// validation derives the typed views returned by Text, Items, Paths and Flag.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Present  bool
	Custom   bool

	raw string

	validated bool
	text      string
	items     []string
	paths     []PathValue
	flag      *bool
}

func newField(spec FieldSpec) *Field {
	return &Field{Name: spec.Name, Kind: spec.Kind, Required: spec.Required}
}

func newCustomField(name string) *Field {
	return &Field{Name: name, Kind: KindText, Custom: true}
}

// Raw returns the value as written.
func (f *Field) Raw() string {
	return f.raw
}

// SetRaw marks the field present with value and clears validation results.
func (f *Field) SetRaw(value string) {
	f.raw = value
	f.Present = true
	f.reset()
}

// Clear marks the field absent.
func (f *Field) Clear() {
	f.raw = ""
	f.Present = false
	f.reset()
}

func (f *Field) reset() {
	f.validated = false
	f.text = ""
	f.items = nil
	f.paths = nil
	f.flag = nil
}

// HasContent reports whether the field is present with a non-blank value.
func (f *Field) HasContent() bool {
	return f.Present && strings.TrimSpace(f.raw) != ""
}

// Text returns the normalized text: trailing spaces removed from each line,
// then surrounding whitespace trimmed.
func (f *Field) Text() string {
	if f.validated && !f.Kind.IsList() && f.Kind != KindBoolean {
		return f.text
	}
	return normalizeText(f.raw)
}

// Items returns the non-empty, de-duplicated lines of a list-like field.
func (f *Field) Items() []string {
	if f.validated && f.items != nil {
		return append([]string(nil), f.items...)
	}
	items, _, _ := splitItems(f.raw)
	return items
}

// Paths returns the validated path entries of a path or file text field.
func (f *Field) Paths() []PathValue {
	return append([]PathValue(nil), f.paths...)
}

// Texts returns the loaded texts of a file text field, in path order.
func (f *Field) Texts() []string {
	var out []string
	for _, p := range f.paths {
		if p.Loaded {
			out = append(out, p.Text)
		}
	}
	return out
}

// Flag returns the boolean value and whether it is set.
func (f *Field) Flag() (value bool, ok bool) {
	if f.validated {
		if f.flag == nil {
			return false, false
		}
		return *f.flag, true
	}
	v, valid := parseFlag(f.raw)
	if !valid || v == nil {
		return false, false
	}
	return *v, true
}

// Value returns the serialized value: yes/no for flags, one item per line
// for list-like fields, normalized text otherwise.
func (f *Field) Value() string {
	switch {
	case f.Kind == KindBoolean:
		v, ok := f.Flag()
		if !ok {
			if f.validated {
				return ""
			}
			return strings.TrimSpace(f.raw)
		}
		return FormatFlag(v)
	case f.Kind.IsList():
		return strings.Join(f.Items(), "\n")
	default:
		return f.Text()
	}
}

// FormatFlag renders a boolean as yes or no.
func FormatFlag(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

var trueFlags = map[string]bool{"yes": true, "y": true, "true": true, "x": true}
var falseFlags = map[string]bool{"no": true, "n": true, "false": true}

// FlagValues lists the accepted flag spellings, in the order shown to users.
const FlagValues = "yes, y, true, x, no, n, false"

// parseFlag returns (nil, true) for an empty value, (v, true) for a known
// flag and (nil, false) for anything else.
func parseFlag(raw string) (*bool, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return nil, true
	}
	if trueFlags[s] {
		v := true
		return &v, true
	}
	if falseFlags[s] {
		v := false
		return &v, true
	}
	return nil, false
}

func normalizeText(raw string) string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// splitItems splits raw into trimmed lines, dropping empty and repeated
// entries. It reports how many empty entries and which duplicates were dropped.
func splitItems(raw string) (items []string, empties int, duplicates []string) {
	seen := make(map[string]struct{})
	for _, line := range strings.Split(normalizeText(raw), "\n") {
		item := strings.TrimSpace(line)
		if item == "" {
			empties++
			continue
		}
		if _, dup := seen[item]; dup {
			duplicates = append(duplicates, item)
			continue
		}
		seen[item] = struct{}{}
		items = append(items, item)
	}
	if len(items) == 0 && strings.TrimSpace(raw) == "" {
		empties = 0
	}
	return items, empties, duplicates
}

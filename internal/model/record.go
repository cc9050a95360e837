package model

import (
	"path"
	"strings"

	"github.com/aboutkit/aboutkit/pkg/about"
)

// Record is one ABOUT file: the standard fields in canonical order plus
// custom fields in the order they were first seen.
type Record struct {
	// AboutFilePath is the slash-separated path of the ABOUT file relative
	// to the collection root, e.g. "third_party/zlib.ABOUT".
	AboutFilePath string

	// Location is the ABOUT file location on disk, when known.
	Location string

	// Errors holds the diagnostics of the last load or validation.
	Errors about.Diagnostics

	fields map[string]*Field
	custom []string
}

// NewRecord creates an empty record for the ABOUT file at aboutFilePath.
func NewRecord(aboutFilePath string) *Record {
	r := &Record{
		AboutFilePath: aboutFilePath,
		fields:        make(map[string]*Field, len(standardFields)),
	}
	for _, spec := range standardFields {
		r.fields[spec.Name] = newField(spec)
	}
	return r
}

// Field returns the named field, or nil when it is neither standard nor a
// known custom field.
func (r *Record) Field(name string) *Field {
	return r.fields[name]
}

// Get returns the serialized value of name, or "" when absent.
func (r *Record) Get(name string) string {
	f := r.fields[name]
	if f == nil || !f.Present {
		return ""
	}
	return f.Value()
}

// Items returns the list items of name.
func (r *Record) Items(name string) []string {
	f := r.fields[name]
	if f == nil || !f.Present {
		return nil
	}
	return f.Items()
}

// Set assigns a raw value, creating a custom field for unknown names.
func (r *Record) Set(name, value string) {
	f := r.fields[name]
	if f == nil {
		f = newCustomField(name)
		r.fields[name] = f
		r.custom = append(r.custom, name)
	}
	f.SetRaw(value)
}

// SetItems assigns a list value, one item per line.
func (r *Record) SetItems(name string, items []string) {
	r.Set(name, strings.Join(items, "\n"))
}

// Has reports whether name is present with content.
func (r *Record) Has(name string) bool {
	f := r.fields[name]
	return f != nil && f.HasContent()
}

// Fields returns fields in canonical order, custom fields last.
// Required fields are always included. withAbsent includes fields that are
// not present; withEmpty includes present fields without content.
func (r *Record) Fields(withAbsent, withEmpty bool) []*Field {
	var out []*Field
	add := func(f *Field) {
		switch {
		case f.Required:
			out = append(out, f)
		case !f.Present:
			if withAbsent {
				out = append(out, f)
			}
		case !f.HasContent():
			if withEmpty {
				out = append(out, f)
			}
		default:
			out = append(out, f)
		}
	}
	for _, spec := range standardFields {
		add(r.fields[spec.Name])
	}
	for _, name := range r.custom {
		add(r.fields[name])
	}
	return out
}

// CustomFieldNames returns the custom field names in insertion order.
func (r *Record) CustomFieldNames() []string {
	return append([]string(nil), r.custom...)
}

// PresentFieldNames returns the names of fields present with content.
func (r *Record) PresentFieldNames() []string {
	var names []string
	for _, f := range r.Fields(false, false) {
		if f.HasContent() {
			names = append(names, f.Name)
		}
	}
	return names
}

// Name returns the component name.
func (r *Record) Name() string {
	return r.Get(FieldName)
}

// Version returns the component version.
func (r *Record) Version() string {
	return r.Get(FieldVersion)
}

func (r *Record) flag(name string) bool {
	v, ok := r.fields[name].Flag()
	return ok && v
}

// Redistribute reports whether redistribute is yes.
func (r *Record) Redistribute() bool { return r.flag(FieldRedistribute) }

// Attribute reports whether attribute is yes.
func (r *Record) Attribute() bool { return r.flag(FieldAttribute) }

// Modified reports whether modified is yes.
func (r *Record) Modified() bool { return r.flag(FieldModified) }

// TrackChanges reports whether track_changes is yes.
func (r *Record) TrackChanges() bool { return r.flag(FieldTrackChanges) }

// InternalUseOnly reports whether internal_use_only is yes.
func (r *Record) InternalUseOnly() bool { return r.flag(FieldInternalUseOnly) }

// Dir returns the slash-separated directory of the ABOUT file relative to the
// collection root, "" for the root itself.
func (r *Record) Dir() string {
	dir := path.Dir(r.AboutFilePath)
	if dir == "." || dir == "/" {
		return ""
	}
	return strings.Trim(dir, "/")
}

// ResolvedResources returns each about_resource joined with the ABOUT file
// directory. A "." resource resolves to the directory with a trailing "/".
func (r *Record) ResolvedResources() []string {
	var out []string
	for _, res := range r.Items(FieldAboutResource) {
		res = NormalizePath(res)
		if res == "." {
			dir := r.Dir()
			if dir == "" {
				out = append(out, "./")
				continue
			}
			out = append(out, dir+"/")
			continue
		}
		out = append(out, strings.TrimPrefix(path.Join(r.Dir(), res), "/"))
	}
	return out
}

// Clone returns a deep copy of r with validation results cleared.
func (r *Record) Clone() *Record {
	c := NewRecord(r.AboutFilePath)
	c.Location = r.Location
	for _, f := range r.Fields(false, true) {
		if f.Present {
			c.Set(f.Name, f.Raw())
		}
	}
	return c
}

// NormalizePath converts p to a relative slash path: backslashes become "/",
// leading and trailing separators are removed and a bare "/" becomes ".".
func NormalizePath(p string) string {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if p != "" && strings.Trim(p, "/") == "" {
		return "."
	}
	return strings.Trim(p, "/")
}

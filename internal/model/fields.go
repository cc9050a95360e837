package model

import (
	"regexp"
	"sort"
)

// Kind determines how a field value is validated and serialized.
type Kind int

const (
	// KindText is free text, possibly spanning lines.
	KindText Kind = iota
	// KindSingleLine is text that must not contain newlines.
	KindSingleLine
	// KindList holds one value per line.
	KindList
	// KindURL is a single URL.
	KindURL
	// KindURLList holds one URL per line.
	KindURLList
	// KindPackageURL is a purl such as pkg:npm/lodash@4.17.21.
	KindPackageURL
	// KindPath holds paths relative to the ABOUT file.
	KindPath
	// KindFileText holds paths to text files loaded during validation.
	KindFileText
	// KindBoolean is a yes/no flag.
	KindBoolean
)

// IsList reports whether values of this kind hold one item per line.
func (k Kind) IsList() bool {
	switch k {
	case KindList, KindURLList, KindPath, KindFileText:
		return true
	}
	return false
}

// FieldSpec describes a standard field.
type FieldSpec struct {
	Name     string
	Kind     Kind
	Required bool
}

const (
	FieldAboutResource         = "about_resource"
	FieldIgnoredResources      = "ignored_resources"
	FieldName                  = "name"
	FieldVersion               = "version"
	FieldDownloadURL           = "download_url"
	FieldDescription           = "description"
	FieldHomepageURL           = "homepage_url"
	FieldPackageURL            = "package_url"
	FieldNotes                 = "notes"
	FieldLicenseExpression     = "license_expression"
	FieldLicenseKey            = "license_key"
	FieldLicenseName           = "license_name"
	FieldLicenseFile           = "license_file"
	FieldLicenseURL            = "license_url"
	FieldSPDXLicenseExpression = "spdx_license_expression"
	FieldSPDXLicenseKey        = "spdx_license_key"
	FieldCopyright             = "copyright"
	FieldNoticeFile            = "notice_file"
	FieldNoticeURL             = "notice_url"
	FieldRedistribute          = "redistribute"
	FieldAttribute             = "attribute"
	FieldTrackChanges          = "track_changes"
	FieldModified              = "modified"
	FieldInternalUseOnly       = "internal_use_only"
	FieldChangelogFile         = "changelog_file"
	FieldOwner                 = "owner"
	FieldOwnerURL              = "owner_url"
	FieldContact               = "contact"
	FieldAuthor                = "author"
	FieldAuthorFile            = "author_file"
	FieldSpecVersion           = "spec_version"
	FieldLicenses              = "licenses"
)

// legacyFields are written by older inventories and ignored on read.
var legacyFields = map[string]bool{
	"about_file_path":     true,
	"about_resource_path": true,
}

// standardFields is the canonical field order used when writing records.
var standardFields = []FieldSpec{
	{FieldAboutResource, KindPath, true},
	{FieldIgnoredResources, KindPath, false},
	{FieldName, KindSingleLine, true},
	{FieldVersion, KindSingleLine, false},
	{FieldDownloadURL, KindURL, false},
	{FieldDescription, KindText, false},
	{FieldHomepageURL, KindURL, false},
	{FieldPackageURL, KindPackageURL, false},
	{FieldNotes, KindText, false},
	{FieldLicenseExpression, KindText, false},
	{FieldLicenseKey, KindList, false},
	{FieldLicenseName, KindList, false},
	{FieldLicenseFile, KindFileText, false},
	{FieldLicenseURL, KindURLList, false},
	{FieldSPDXLicenseExpression, KindText, false},
	{FieldSPDXLicenseKey, KindList, false},
	{FieldCopyright, KindText, false},
	{FieldNoticeFile, KindFileText, false},
	{FieldNoticeURL, KindURL, false},
	{FieldRedistribute, KindBoolean, false},
	{FieldAttribute, KindBoolean, false},
	{FieldTrackChanges, KindBoolean, false},
	{FieldModified, KindBoolean, false},
	{FieldInternalUseOnly, KindBoolean, false},
	{FieldChangelogFile, KindFileText, false},
	{FieldOwner, KindText, false},
	{FieldOwnerURL, KindURL, false},
	{FieldContact, KindList, false},
	{FieldAuthor, KindList, false},
	{FieldAuthorFile, KindFileText, false},
	{"vcs_tool", KindSingleLine, false},
	{"vcs_repository", KindSingleLine, false},
	{"vcs_path", KindSingleLine, false},
	{"vcs_tag", KindSingleLine, false},
	{"vcs_branch", KindSingleLine, false},
	{"vcs_revision", KindSingleLine, false},
	{"checksum_md5", KindSingleLine, false},
	{"checksum_sha1", KindSingleLine, false},
	{"checksum_sha256", KindSingleLine, false},
	{FieldSpecVersion, KindSingleLine, false},
}

var standardIndex = func() map[string]int {
	m := make(map[string]int, len(standardFields))
	for i, spec := range standardFields {
		m[spec.Name] = i
	}
	return m
}()

// licenseBlockFields maps the keys of a `licenses:` entry to flat fields.
var licenseBlockFields = []struct {
	Key   string
	Field string
}{
	{"key", FieldLicenseKey},
	{"name", FieldLicenseName},
	{"file", FieldLicenseFile},
	{"url", FieldLicenseURL},
	{"spdx_license_key", FieldSPDXLicenseKey},
}

var validFieldName = regexp.MustCompile(`^[a-z][0-9a-z_]*$`)

// StandardFields returns the standard fields in canonical order.
func StandardFields() []FieldSpec {
	out := make([]FieldSpec, len(standardFields))
	copy(out, standardFields)
	return out
}

// LookupField returns the definition of a standard field.
func LookupField(name string) (FieldSpec, bool) {
	i, ok := standardIndex[name]
	if !ok {
		return FieldSpec{}, false
	}
	return standardFields[i], true
}

// IsStandardField reports whether name is a standard field.
func IsStandardField(name string) bool {
	_, ok := standardIndex[name]
	return ok
}

// IsValidFieldName reports whether name is usable as a field name.
func IsValidFieldName(name string) bool {
	return validFieldName.MatchString(name)
}

// IsFileField reports whether name holds paths to text files.
func IsFileField(name string) bool {
	spec, ok := LookupField(name)
	return ok && spec.Kind == KindFileText
}

// IsListField reports whether name holds one value per line.
func IsListField(name string) bool {
	spec, ok := LookupField(name)
	return ok && spec.Kind.IsList()
}

// RequiredFieldNames returns the names of the required standard fields.
func RequiredFieldNames() []string {
	var names []string
	for _, spec := range standardFields {
		if spec.Required {
			names = append(names, spec.Name)
		}
	}
	return names
}

// OrderFieldNames sorts names with about_resource first, then standard
// fields in canonical order, then the rest alphabetically.
func OrderFieldNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	var standard []string
	var custom []string
	for _, n := range names {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		if IsStandardField(n) {
			standard = append(standard, n)
		} else {
			custom = append(custom, n)
		}
	}
	sort.SliceStable(standard, func(i, j int) bool {
		return standardIndex[standard[i]] < standardIndex[standard[j]]
	})
	sort.Strings(custom)
	return append(standard, custom...)
}

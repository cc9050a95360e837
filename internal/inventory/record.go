package inventory

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/aboutkit/aboutkit/internal/model"
	"github.com/aboutkit/aboutkit/pkg/about"
)

// AboutFilePath returns the ABOUT file path and about_resource value for an
// inventory about_resource. A directory resource "lib/zlib/" yields
// "lib/zlib/zlib.ABOUT" describing ".". An empty resource yields "" and ".".
func AboutFilePath(resource string) (aboutPath, value string) {
	resource = strings.TrimLeft(strings.TrimSpace(filepath.ToSlash(resource)), "/")
	switch {
	case resource == "":
		return "", "."
	case strings.HasSuffix(resource, "/"):
		dir := strings.TrimRight(resource, "/")
		return path.Join(dir, path.Base(dir)+about.AboutFileExtension), "."
	}
	return resource + about.AboutFileExtension, path.Base(resource)
}

// ToRecord hydrates a record from a normalized row. The about_resource is
// reduced to a base name, or "." for directories, and the ABOUT file path is
// derived from it. File fields holding comma separated lists are split.
func ToRecord(row Row, columns []string) (*model.Record, about.Diagnostics) {
	aboutPath, value := AboutFilePath(row[model.FieldAboutResource])
	record := model.NewRecord(aboutPath)

	order := make([]string, 0, len(columns))
	for _, c := range columns {
		if c != model.FieldAboutResource {
			order = append(order, c)
		}
	}
	diags := record.HydrateMap(row, order)
	record.Set(model.FieldAboutResource, value)

	for _, c := range order {
		if model.IsFileField(c) && record.Has(c) {
			record.SetItems(c, splitFileList(record.Field(c).Raw()))
		}
	}
	return record, diags
}

// splitFileList splits a comma or newline separated file list.
func splitFileList(raw string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '\n' }) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package model

import (
	"path/filepath"
	"strings"

	"github.com/aboutkit/aboutkit/internal/files/filesystem"
	"github.com/aboutkit/aboutkit/pkg/about"
)

// LoadResult is a loaded record and whether its file had duplicated keys.
type LoadResult struct {
	Record        *Record
	DuplicateKeys []string
}

// Load reads, parses, hydrates and validates the ABOUT file at location.
// aboutFilePath is the path reported in diagnostics and rows. Paths resolve
// against the directory of location unless opts.BaseDir is set.
func Load(location, aboutFilePath string, opts ValidateOptions) *LoadResult {
	if opts.FS == nil {
		opts.FS = filesystem.NewOSFileSystem()
	}
	record := NewRecord(aboutFilePath)
	record.Location = location
	result := &LoadResult{Record: record}

	content, err := opts.FS.ReadFile(location)
	if err != nil {
		record.Errors.Add(about.Critical, "Cannot load invalid ABOUT file: %s: %v", filepath.ToSlash(location), err)
		return result
	}

	if opts.BaseDir == "" {
		opts.BaseDir = filepath.Dir(location)
	}
	result.DuplicateKeys = record.LoadText(string(content), opts)
	return result
}

// LoadText parses text into r and validates it. Returns the duplicated keys;
// when there are any, the record is left unhydrated.
func (r *Record) LoadText(text string, opts ValidateOptions) []string {
	parsed, err := Parse(text, r.AboutFilePath)
	if err != nil {
		r.Errors.Add(about.Critical, "Cannot load invalid ABOUT file: %s: %v", r.AboutFilePath, err)
		return nil
	}
	if len(parsed.DuplicateKeys) > 0 {
		r.Errors.Add(about.Error, "Duplicated key name(s): %s", strings.Join(parsed.DuplicateKeys, ", "))
		return parsed.DuplicateKeys
	}

	diags := r.Hydrate(parsed.Pairs)
	diags.Extend(r.Validate(opts))
	r.Errors = diags
	return nil
}

package collector

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aboutkit/aboutkit/internal/files/filesystem"
	"github.com/aboutkit/aboutkit/internal/model"
	"github.com/aboutkit/aboutkit/pkg/about"
)

// Collector finds and loads ABOUT files.
// It is safe for concurrent use as long as the filesystem provider is.
type Collector struct {
	fsProvider   filesystem.FileSystemProvider
	excludes     []string
	referenceDir string
	logger       about.Logger
}

// Option configures a Collector.
type Option func(*Collector)

// WithFS sets the filesystem provider. Zip archives are always read from disk.
func WithFS(p filesystem.FileSystemProvider) Option {
	return func(c *Collector) { c.fsProvider = p }
}

// WithExcludes sets doublestar patterns matched against the slash path
// relative to the location, and against the base name.
func WithExcludes(patterns ...string) Option {
	return func(c *Collector) { c.excludes = append(c.excludes, patterns...) }
}

// WithReferenceDir sets the directory searched for license and notice files
// missing beside an ABOUT file.
func WithReferenceDir(dir string) Option {
	return func(c *Collector) { c.referenceDir = dir }
}

// WithLogger sets the logger used for progress messages.
func WithLogger(l about.Logger) Option {
	return func(c *Collector) { c.logger = l }
}

// New creates a collector over the OS filesystem.
// Panics if an option sets a nil filesystem provider.
func New(opts ...Option) *Collector {
	c := &Collector{fsProvider: filesystem.NewOSFileSystem()}
	for _, opt := range opts {
		opt(c)
	}
	if c.fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return c
}

// Result is the outcome of Collect.
type Result struct {
	// Root is the directory the ABOUT file paths are relative to.
	Root string

	// Records holds one record per ABOUT file, in path order.
	Records []*model.Record

	// Diagnostics holds file name checks followed by the prefixed record
	// diagnostics.
	Diagnostics about.Diagnostics

	// DuplicateKeys reports whether any file had duplicated field names.
	DuplicateKeys bool

	cleanup func()
}

// Close removes any temporary extraction directory.
func (r *Result) Close() error {
	if r.cleanup != nil {
		r.cleanup()
		r.cleanup = nil
	}
	return nil
}

// IsAboutFile reports whether name is an ABOUT file name. A file named only
// ".ABOUT" is not.
func IsAboutFile(name string) bool {
	base := path.Base(filepath.ToSlash(name))
	return len(base) > len(about.AboutFileExtension) &&
		strings.EqualFold(path.Ext(base), about.AboutFileExtension)
}

// Find returns the ABOUT files under location as paths relative to root.
// location may be a file or a directory.
func (c *Collector) Find(location string) (root string, relPaths []string, err error) {
	info, err := c.fsProvider.Stat(location)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s path does not exist", about.ErrInvalidInput, location)
	}

	if !info.IsDir() {
		if !IsAboutFile(location) {
			return "", nil, fmt.Errorf("%w: %s is not an ABOUT file", about.ErrInvalidInput, location)
		}
		return filepath.Dir(location), []string{filepath.Base(location)}, nil
	}

	dir, err := c.fsProvider.Open(location)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open directory: %w", err)
	}
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}
		if file.Info().IsDir() || !IsAboutFile(file.Info().Name()) {
			return nil
		}
		rel := file.RelativePath()
		if c.excluded(rel) {
			if c.logger != nil {
				c.logger.Verbose("Excluded %s", rel)
			}
			return nil
		}
		relPaths = append(relPaths, rel)
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	sort.Strings(relPaths)
	return location, relPaths, nil
}

func (c *Collector) excluded(rel string) bool {
	for _, pattern := range c.excludes {
		pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, path.Base(rel)); ok {
			return true
		}
	}
	return false
}

// Collect finds, checks and loads every ABOUT file under location.
// The caller must Close the result.
func (c *Collector) Collect(location string) (*Result, error) {
	result := &Result{}
	fsProvider := c.fsProvider

	if isZip(location) {
		dir, cleanup, err := ExtractZip(location)
		if err != nil {
			return nil, err
		}
		result.cleanup = cleanup
		location = dir
		fsProvider = filesystem.NewOSFileSystem()
	}

	finder := *c
	finder.fsProvider = fsProvider
	root, relPaths, err := finder.Find(location)
	if err != nil {
		_ = result.Close()
		return nil, err
	}
	result.Root = root

	result.Diagnostics.Extend(CheckFileNames(relPaths))
	for _, rel := range relPaths {
		if c.logger != nil {
			c.logger.Verbose("Loading %s", rel)
		}
		loaded := model.Load(filepath.Join(root, filepath.FromSlash(rel)), rel, model.ValidateOptions{
			FS:           fsProvider,
			ReferenceDir: c.referenceDir,
		})
		if len(loaded.DuplicateKeys) > 0 {
			result.DuplicateKeys = true
		}
		result.Records = append(result.Records, loaded.Record)
		result.Diagnostics.Extend(loaded.Record.Errors.WithPrefix(rel))
	}
	return result, nil
}

func isZip(location string) bool {
	return strings.EqualFold(filepath.Ext(location), ".zip")
}

// CheckFileNames reports unsupported characters in file names and paths
// whose names collide when case is ignored.
func CheckFileNames(relPaths []string) about.Diagnostics {
	var diags about.Diagnostics
	seen := make(map[string]string, len(relPaths))
	for _, rel := range relPaths {
		if chars := InvalidChars(path.Base(rel)); chars != "" {
			diags.Add(about.Critical, "Invalid characters '%s' in file name at: '%s'", chars, rel)
		}
		key := strings.ToLower(rel)
		if first, ok := seen[key]; ok {
			diags.Add(about.Critical, "Duplicate files: '%s' and '%s' have the same case-insensitive file name", first, rel)
			continue
		}
		seen[key] = rel
	}
	return diags
}

// InvalidChars returns the distinct characters of name outside
// [A-Za-z0-9_.-], in order of appearance.
func InvalidChars(name string) string {
	var b strings.Builder
	seen := make(map[rune]bool)
	for _, r := range name {
		if isValidNameChar(r) || seen[r] {
			continue
		}
		seen[r] = true
		b.WriteRune(r)
	}
	return b.String()
}

func isValidNameChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_', r == '.', r == '-':
		return true
	}
	return false
}

package redist

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aboutkit/aboutkit/internal/files/filesystem"
	"github.com/aboutkit/aboutkit/internal/model"
	"github.com/aboutkit/aboutkit/pkg/about"
)

// Options configures a collection.
type Options struct {
	// WithStructures keeps each resource's path relative to the source root.
	// Otherwise resources are placed directly in the output.
	WithStructures bool

	// Zip writes the output as a zip archive. The output must end in .zip.
	Zip bool

	Logger about.Logger
}

// Result is the outcome of Collect.
type Result struct {
	// Collected holds the relative paths of the copied resources.
	Collected   []string
	Diagnostics about.Diagnostics
}

// Select returns the records marked for redistribution.
func Select(records []*model.Record) []*model.Record {
	var out []*model.Record
	for _, r := range records {
		if r.Redistribute() {
			out = append(out, r)
		}
	}
	return out
}

// Collect copies the resources of redistributable records, resolved under
// root, to output.
func Collect(records []*model.Record, root, output string, opts Options) (*Result, error) {
	if opts.Zip && !strings.EqualFold(filepath.Ext(output), ".zip") {
		return nil, fmt.Errorf("%w: %s must end with .zip", about.ErrOutputLocation, output)
	}
	osfs := filesystem.NewOSFileSystem()
	if !filesystem.IsDir(osfs, root) {
		return nil, fmt.Errorf("%w: %s is not a directory", about.ErrInvalidInput, root)
	}

	target := output
	if opts.Zip {
		staging, err := os.MkdirTemp("", "about-redist-*")
		if err != nil {
			return nil, fmt.Errorf("failed to create staging directory: %w", err)
		}
		defer os.RemoveAll(staging)
		target = staging
	} else if err := os.MkdirAll(output, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", about.ErrOutputLocation, err)
	}

	c := &collection{root: root, target: target, opts: opts, fs: osfs, placed: make(map[string]string)}
	for _, record := range Select(records) {
		for _, res := range record.ResolvedResources() {
			c.copy(res)
		}
	}

	if opts.Zip {
		if err := WriteZip(target, output); err != nil {
			return nil, err
		}
	}
	return &Result{Collected: c.collected, Diagnostics: c.diags}, nil
}

type collection struct {
	root      string
	target    string
	opts      Options
	fs        filesystem.FileSystemProvider
	placed    map[string]string
	collected []string
	diags     about.Diagnostics
}

func (c *collection) copy(res string) {
	rel := strings.TrimSuffix(res, "/")
	if rel == "." {
		c.diags.Add(about.Error, "Cannot collect %s: the source root itself is not a component resource", res)
		return
	}
	src := filepath.Join(c.root, filepath.FromSlash(rel))
	if rel == "" || !filesystem.Exists(c.fs, src) {
		c.diags.Add(about.Error, "Resource not found: %s", res)
		return
	}

	dest := rel
	if !c.opts.WithStructures {
		dest = path.Base(rel)
	}
	key := strings.ToLower(dest)
	if prev, ok := c.placed[key]; ok {
		if prev != rel {
			c.diags.Add(about.Error, "Cannot collect %s: %s is already collected from %s", res, dest, prev)
		}
		return
	}
	c.placed[key] = rel

	dst := filepath.Join(c.target, filepath.FromSlash(dest))
	var err error
	if filesystem.IsDir(c.fs, src) {
		err = filesystem.CopyDir(src, dst)
	} else {
		err = filesystem.CopyFile(src, dst)
	}
	if err != nil {
		c.diags.Add(about.Error, "Cannot collect %s: %v", res, err)
		return
	}
	if c.opts.Logger != nil {
		c.opts.Logger.Verbose("Collected %s", res)
	}
	c.collected = append(c.collected, res)
}

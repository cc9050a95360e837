package gen

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aboutkit/aboutkit/internal/files/filesystem"
	"github.com/aboutkit/aboutkit/internal/inventory"
	"github.com/aboutkit/aboutkit/internal/license"
	"github.com/aboutkit/aboutkit/internal/model"
	"github.com/aboutkit/aboutkit/pkg/about"
)

// Options configures a Generator.
type Options struct {
	// OutputDir is the existing directory ABOUT files are written under.
	OutputDir string

	// ReferenceDir holds license and notice files to copy beside ABOUT files.
	ReferenceDir string

	// Library fetches license texts for license_expression keys. Nil disables fetching.
	Library license.Library

	// Android also writes MODULE_LICENSE_* and NOTICE files.
	Android bool

	Logger about.Logger
}

// Result is the outcome of Generate.
type Result struct {
	// Records holds the records whose ABOUT file was written.
	Records     []*model.Record
	Diagnostics about.Diagnostics

	// Aborted is set when the inventory checks failed and nothing was written.
	Aborted bool
}

// Generator writes ABOUT files from inventories.
type Generator struct {
	opts Options
	fs   filesystem.FileSystemProvider
}

// New creates a generator.
func New(opts Options) *Generator {
	return &Generator{opts: opts, fs: filesystem.NewOSFileSystem()}
}

// Load reads the inventory at location. Only .csv, .json and .xlsx are accepted.
func Load(location, worksheet string) (*inventory.Inventory, error) {
	if _, err := inventory.FormatOf(location); err != nil {
		return nil, err
	}
	return inventory.Read(location, inventory.ReadOptions{Worksheet: worksheet})
}

// Generate checks inv and writes one ABOUT file per row. Inventory problems
// are returned as diagnostics with no files written; the error is reserved
// for an unusable output directory.
func (g *Generator) Generate(ctx context.Context, inv *inventory.Inventory) (*Result, error) {
	if !filesystem.IsDir(g.fs, g.opts.OutputDir) {
		return nil, fmt.Errorf("%w: %s is not an existing directory", about.ErrOutputLocation, g.opts.OutputDir)
	}

	result := &Result{Diagnostics: CheckInventory(inv)}
	if result.Diagnostics.HasProblems() {
		result.Aborted = true
		return result, nil
	}
	norm := inv.Normalized()

	var fetched map[string]*license.License
	if g.opts.Library != nil {
		var diags about.Diagnostics
		fetched, diags = license.FetchAll(ctx, g.opts.Library, fetchKeys(norm))
		result.Diagnostics.Extend(diags)
	}

	notices := newNoticeSet()
	for _, row := range norm.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, diags := g.generateRow(row, norm.Columns, fetched)
		result.Diagnostics.Extend(diags)
		if record == nil {
			continue
		}
		result.Records = append(result.Records, record)
		if g.opts.Android {
			result.Diagnostics.Extend(writeModuleLicenses(record))
			notices.add(record)
		}
	}
	if g.opts.Android {
		result.Diagnostics.Extend(notices.write())
	}
	return result, nil
}

// fetchKeys returns the license_expression keys of rows that name no
// license file, in order of first appearance.
func fetchKeys(inv *inventory.Inventory) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, row := range inv.Rows {
		if strings.TrimSpace(row[model.FieldLicenseFile]) != "" {
			continue
		}
		found, err := license.KeysOf(row[model.FieldLicenseExpression])
		if err != nil {
			continue
		}
		for _, k := range found {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}

func (g *Generator) generateRow(row inventory.Row, columns []string, fetched map[string]*license.License) (*model.Record, about.Diagnostics) {
	var diags about.Diagnostics
	resource := strings.TrimSpace(row[model.FieldAboutResource])
	if resource == "" {
		diags.Add(about.Error, "Empty column: 'about_resource'. Cannot generate .ABOUT file.")
		return nil, diags
	}
	aboutPath, _ := inventory.AboutFilePath(resource)
	dumpLoc := filepath.Join(g.opts.OutputDir, filepath.FromSlash(aboutPath))

	for _, segment := range strings.Split(path.Dir(aboutPath), "/") {
		if strings.HasSuffix(segment, " ") {
			diags.Add(about.Error, "File path : %s contains directory name ends with spaces which is not allowed. Generation skipped.", filepath.ToSlash(dumpLoc))
			return nil, diags
		}
	}

	record, hydrateDiags := inventory.ToRecord(row, columns)
	record.Location = dumpLoc
	diags.Extend(hydrateDiags)

	dir := filepath.Dir(dumpLoc)
	if err := os.MkdirAll(dir, 0755); err != nil {
		diags.Add(about.Error, "Failed to write .ABOUT file at : %s with error: %v", filepath.ToSlash(dumpLoc), err)
		return nil, diags
	}
	diags.Extend(g.copyReferences(record, dir))
	if fetched != nil {
		diags.Extend(writeFetchedLicenses(record, dir, fetched))
	}

	validation := record.Validate(model.ValidateOptions{
		FS:                    g.fs,
		BaseDir:               dir,
		ReferenceDir:          g.opts.ReferenceDir,
		SkipChecksums:         true,
		AllowMissingResources: true,
	})
	diags.Extend(validation.WithPrefix(aboutPath))
	record.Errors = diags

	if err := record.WriteFile(dumpLoc, false, false); err != nil {
		diags.Add(about.Error, "Failed to write .ABOUT file at : %s with error: %v", filepath.ToSlash(dumpLoc), err)
		return nil, diags
	}
	if g.opts.Logger != nil {
		g.opts.Logger.Verbose("Generated %s", aboutPath)
	}
	return record, diags
}

// copyReferences copies file field entries missing from dir but present in
// the reference directory.
func (g *Generator) copyReferences(record *model.Record, dir string) about.Diagnostics {
	var diags about.Diagnostics
	if g.opts.ReferenceDir == "" {
		return diags
	}
	for _, name := range []string{model.FieldLicenseFile, model.FieldNoticeFile} {
		for _, item := range record.Items(name) {
			dst := filepath.Join(dir, filepath.FromSlash(model.NormalizePath(item)))
			if filesystem.Exists(g.fs, dst) {
				continue
			}
			src := filepath.Join(g.opts.ReferenceDir, path.Base(model.NormalizePath(item)))
			if !filesystem.Exists(g.fs, src) {
				continue
			}
			if err := filesystem.CopyFile(src, dst); err != nil {
				diags.Add(about.Error, "Cannot copy reference file %s: %v", item, err)
			}
		}
	}
	return diags
}

// writeFetchedLicenses writes <key>.LICENSE for each fetched key of a record
// without license files and fills its license fields.
func writeFetchedLicenses(record *model.Record, dir string, fetched map[string]*license.License) about.Diagnostics {
	var diags about.Diagnostics
	if record.Has(model.FieldLicenseFile) || !record.Has(model.FieldLicenseExpression) {
		return diags
	}
	keys, err := license.KeysOf(record.Get(model.FieldLicenseExpression))
	if err != nil {
		return diags
	}

	var refs []*license.License
	for _, key := range keys {
		lic, ok := fetched[key]
		if !ok {
			continue
		}
		ref := *lic
		ref.Filename = license.DefaultFilename(key)
		if err := os.WriteFile(filepath.Join(dir, ref.Filename), []byte(ref.Text), 0644); err != nil {
			diags.Add(about.Error, "Cannot write license file %s: %v", ref.Filename, err)
			continue
		}
		refs = append(refs, &ref)
	}
	record.ApplyLicenses(refs)
	return diags
}

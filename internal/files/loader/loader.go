package loader

import (
	"fmt"
	"path/filepath"

	"github.com/aboutkit/aboutkit/internal/files/collector"
	"github.com/aboutkit/aboutkit/internal/files/filesystem"
	"github.com/aboutkit/aboutkit/internal/inventory"
	"github.com/aboutkit/aboutkit/internal/model"
	"github.com/aboutkit/aboutkit/pkg/about"
)

// Options selects how an input location is read.
type Options struct {
	// ScanCode reads the location as a ScanCode JSON scan.
	ScanCode bool

	// MinLicenseScore drops ScanCode license detections scoring lower.
	MinLicenseScore float64

	// Worksheet names the XLSX sheet to read.
	Worksheet string

	// ReferenceDir is searched for license and notice files.
	ReferenceDir string

	// Excludes are doublestar patterns skipped when collecting ABOUT files.
	Excludes []string

	Logger about.Logger
}

// Kind identifies the input type that was loaded.
type Kind string

const (
	KindAbout     Kind = "about"
	KindInventory Kind = "inventory"
	KindScanCode  Kind = "scancode"
)

// Result holds the loaded records. Close releases temporary files.
type Result struct {
	Kind        Kind
	Records     []*model.Record
	Diagnostics about.Diagnostics

	// DuplicateKeys is set when an ABOUT file repeats a field name.
	DuplicateKeys bool

	collected *collector.Result
}

// Close removes temporary files created for zip inputs.
func (r *Result) Close() error {
	if r.collected != nil {
		return r.collected.Close()
	}
	return nil
}

// Loader reads records from input locations.
type Loader struct {
	opts Options
	fs   filesystem.FileSystemProvider
}

// NewLoader creates a loader over the OS filesystem.
func NewLoader(opts Options) *Loader {
	return &Loader{opts: opts, fs: filesystem.NewOSFileSystem()}
}

// Load reads location according to its type.
func (l *Loader) Load(location string) (*Result, error) {
	if !filesystem.Exists(l.fs, location) {
		return nil, fmt.Errorf("%w: %s path does not exist", about.ErrInvalidInput, location)
	}
	if l.opts.ScanCode {
		inv, err := inventory.ReadScanCode(location, l.opts.MinLicenseScore)
		if err != nil {
			return nil, err
		}
		return l.fromInventory(KindScanCode, location, inv), nil
	}
	if !filesystem.IsDir(l.fs, location) {
		if _, err := inventory.FormatOf(location); err == nil {
			inv, err := inventory.Read(location, inventory.ReadOptions{Worksheet: l.opts.Worksheet})
			if err != nil {
				return nil, err
			}
			return l.fromInventory(KindInventory, location, inv), nil
		}
	}

	c := collector.New(
		collector.WithFS(l.fs),
		collector.WithExcludes(l.opts.Excludes...),
		collector.WithReferenceDir(l.opts.ReferenceDir),
		collector.WithLogger(l.opts.Logger),
	)
	collected, err := c.Collect(location)
	if err != nil {
		return nil, err
	}
	return &Result{
		Kind:          KindAbout,
		Records:       collected.Records,
		Diagnostics:   collected.Diagnostics,
		DuplicateKeys: collected.DuplicateKeys,
		collected:     collected,
	}, nil
}

// fromInventory hydrates one record per row and validates it relative to
// the directory its ABOUT file would have beside the inventory.
func (l *Loader) fromInventory(kind Kind, location string, inv *inventory.Inventory) *Result {
	res := &Result{Kind: kind}
	norm := inv.Normalized()
	base := filepath.Dir(location)
	for _, row := range norm.Rows {
		record, diags := inventory.ToRecord(row, norm.Columns)
		diags.Extend(record.Validate(model.ValidateOptions{
			FS:                    l.fs,
			BaseDir:               filepath.Join(base, filepath.FromSlash(record.Dir())),
			ReferenceDir:          l.opts.ReferenceDir,
			SkipChecksums:         true,
			AllowMissingResources: true,
		}))
		if record.AboutFilePath != "" {
			diags = diags.WithPrefix(record.AboutFilePath)
		}
		record.Errors = diags
		res.Diagnostics.Extend(diags)
		res.Records = append(res.Records, record)
	}
	return res
}

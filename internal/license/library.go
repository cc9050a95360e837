package license

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aboutkit/aboutkit/pkg/about"
)

// ErrUnknownLicense indicates the library has no license for a key.
var ErrUnknownLicense = errors.New("unknown license")

// Library resolves license keys to reference license data.
type Library interface {
	// Name identifies the library in log messages.
	Name() string

	// Fetch returns the license for key. Unknown keys return an error
	// wrapping ErrUnknownLicense; rejected credentials wrap about.ErrUnauthorized.
	Fetch(ctx context.Context, key string) (*License, error)
}

// ReferenceLibrary reads <key>.LICENSE files from a local directory.
type ReferenceLibrary struct {
	dir string
}

// NewReferenceLibrary creates a library over dir.
func NewReferenceLibrary(dir string) *ReferenceLibrary {
	return &ReferenceLibrary{dir: dir}
}

func (r *ReferenceLibrary) Name() string {
	return "reference directory " + r.dir
}

func (r *ReferenceLibrary) Fetch(ctx context.Context, key string) (*License, error) {
	filename := DefaultFilename(key)
	text, err := os.ReadFile(filepath.Join(r.dir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownLicense, key)
		}
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return &License{Key: key, Name: key, Filename: filename, Text: string(text)}, nil
}

// Chain tries each library in order and returns the first license found.
type Chain []Library

func (c Chain) Name() string {
	if len(c) == 0 {
		return "empty library chain"
	}
	return c[0].Name()
}

func (c Chain) Fetch(ctx context.Context, key string) (*License, error) {
	lastErr := fmt.Errorf("%w: %s", ErrUnknownLicense, key)
	for _, lib := range c {
		lic, err := lib.Fetch(ctx, key)
		if err == nil {
			return lic, nil
		}
		if !errors.Is(err, ErrUnknownLicense) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// FetchAll fetches each key once. Failures become ERROR diagnostics; an
// authorization failure stops further fetching.
func FetchAll(ctx context.Context, lib Library, keys []string) (map[string]*License, about.Diagnostics) {
	licenses := make(map[string]*License)
	var diags about.Diagnostics
	for _, key := range keys {
		if _, done := licenses[key]; done {
			continue
		}
		lic, err := lib.Fetch(ctx, key)
		if err != nil {
			diags = append(diags, Diagnose(key, err))
			if errors.Is(err, about.ErrUnauthorized) || errors.Is(err, context.Canceled) {
				break
			}
			continue
		}
		licenses[key] = lic
	}
	return licenses, diags
}

// Diagnose converts a Fetch error into the diagnostic reported to users.
func Diagnose(key string, err error) about.Diagnostic {
	switch {
	case errors.Is(err, ErrUnknownLicense):
		return about.NewDiagnostic(about.Error, "Invalid 'license': %s", key)
	case errors.Is(err, about.ErrUnauthorized):
		return about.NewDiagnostic(about.Error, "Authorization denied. Invalid '--api_key'. License generation is skipped.")
	case errors.Is(err, about.ErrLicenseLibrary):
		return about.NewDiagnostic(about.Error, "Invalid '--api_url'. License generation is skipped: %v", err)
	default:
		return about.NewDiagnostic(about.Error, "Unable to fetch license %s: %v", key, err)
	}
}

package collector

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aboutkit/aboutkit/pkg/about"
)

// ExtractZip extracts the archive at location into a new temporary
// directory. The returned cleanup removes it.
func ExtractZip(location string) (dir string, cleanup func(), err error) {
	reader, err := zip.OpenReader(location)
	if err != nil {
		return "", nil, fmt.Errorf("%w: cannot open zip archive %s: %v", about.ErrInvalidInput, location, err)
	}
	defer reader.Close()

	dir, err = os.MkdirTemp("", "about-zip-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create extraction directory: %w", err)
	}
	cleanup = func() { _ = os.RemoveAll(dir) }

	for _, entry := range reader.File {
		if err := extractEntry(dir, entry); err != nil {
			cleanup()
			return "", nil, fmt.Errorf("failed to extract %s: %w", location, err)
		}
	}
	return dir, cleanup, nil
}

func extractEntry(dir string, entry *zip.File) error {
	target := filepath.Join(dir, filepath.FromSlash(entry.Name))
	if !strings.HasPrefix(target, filepath.Clean(dir)+string(os.PathSeparator)) {
		return fmt.Errorf("entry %q escapes the extraction directory", entry.Name)
	}
	if entry.FileInfo().IsDir() {
		return os.MkdirAll(target, 0755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

package redist

import (
	"archive/zip"
	"fmt"
	"io"
	"os"

	"github.com/aboutkit/aboutkit/internal/files/filesystem"
	"github.com/aboutkit/aboutkit/pkg/about"
)

// WriteZip archives the tree under dir into the zip file at location.
// Entry names are slash paths relative to dir.
func WriteZip(dir, location string) error {
	out, err := os.Create(location)
	if err != nil {
		return fmt.Errorf("%w: %v", about.ErrOutputLocation, err)
	}
	archive := zip.NewWriter(out)

	tree, err := filesystem.NewOSFileSystem().Open(dir)
	if err != nil {
		out.Close()
		return err
	}
	err = tree.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return err
		}
		if file.RelativePath() == "." {
			return nil
		}
		if file.Info().IsDir() {
			_, err := archive.Create(file.RelativePath() + "/")
			return err
		}
		return addFile(archive, file)
	})
	if err != nil {
		archive.Close()
		out.Close()
		return fmt.Errorf("failed to write %s: %w", location, err)
	}
	if err := archive.Close(); err != nil {
		out.Close()
		return fmt.Errorf("failed to write %s: %w", location, err)
	}
	return out.Close()
}

func addFile(archive *zip.Writer, file filesystem.File) error {
	header, err := zip.FileInfoHeader(file.Info())
	if err != nil {
		return err
	}
	header.Name = file.RelativePath()
	header.Method = zip.Deflate
	w, err := archive.CreateHeader(header)
	if err != nil {
		return err
	}
	in, err := os.Open(file.Path())
	if err != nil {
		return err
	}
	defer in.Close()
	_, err = io.Copy(w, in)
	return err
}

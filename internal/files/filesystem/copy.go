package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyFile copies the regular file src to dst, creating parent directories.
// An existing dst is overwritten.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dst, err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return out.Close()
}

// CopyDir copies the tree rooted at src into dst.
func CopyDir(src, dst string) error {
	dir, err := NewOSFileSystem().Open(src)
	if err != nil {
		return err
	}
	return dir.Walk(func(file File, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dst, filepath.FromSlash(file.RelativePath()))
		if file.Info().IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return CopyFile(file.Path(), target)
	})
}

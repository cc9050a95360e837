package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// File is a file or directory entry discovered while walking a Directory.
type File interface {
	// Path returns the full path of the entry.
	Path() string

	// RelativePath returns the slash-separated path relative to the walked root.
	// The root itself is ".".
	RelativePath() string

	// Info returns entry metadata.
	Info() FileInfo

	// ReadContent returns the file's bytes.
	ReadContent() ([]byte, error)
}

// Directory is a directory tree that can be traversed.
type Directory interface {
	// Path returns the full path of the directory.
	Path() string

	// Walk visits the directory and everything below it in lexical order.
	// If fn returns an error, walking stops and that error is returned.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider opens directories and reads individual paths.
type FileSystemProvider interface {
	// Open opens the directory at path.
	Open(path string) (Directory, error)

	// ReadFile reads the file at path.
	ReadFile(path string) ([]byte, error)

	// Stat returns metadata for path.
	Stat(path string) (FileInfo, error)
}

// Exists reports whether path can be stat'ed through p.
func Exists(p FileSystemProvider, path string) bool {
	_, err := p.Stat(path)
	return err == nil
}

// IsDir reports whether path exists through p and is a directory.
func IsDir(p FileSystemProvider, path string) bool {
	info, err := p.Stat(path)
	return err == nil && info.IsDir()
}

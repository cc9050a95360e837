package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

type ioFile struct {
	fsys    fs.FS
	absPath string
	relPath string
	info    fs.FileInfo
}

func (f *ioFile) Path() string         { return f.absPath }
func (f *ioFile) RelativePath() string { return f.relPath }
func (f *ioFile) Info() FileInfo       { return f.info }

func (f *ioFile) ReadContent() ([]byte, error) {
	return fs.ReadFile(f.fsys, f.absPath)
}

type ioDirectory struct {
	fsys    fs.FS
	absPath string
}

func (d *ioDirectory) Path() string { return d.absPath }

func (d *ioDirectory) Walk(fn func(File, error) error) error {
	return fs.WalkDir(d.fsys, d.absPath, func(filePath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fn(nil, err)
		}
		info, err := entry.Info()
		if err != nil {
			return fn(nil, fmt.Errorf("failed to stat %s: %w", filePath, err))
		}

		rel := "."
		if filePath != d.absPath {
			rel = strings.TrimPrefix(filePath, d.absPath+"/")
			if d.absPath == "." {
				rel = filePath
			}
		}
		return fn(&ioFile{fsys: d.fsys, absPath: filePath, relPath: rel, info: info}, nil)
	})
}

// IOFileSystem implements FileSystemProvider over a read-only fs.FS such as
// an embed.FS holding the built-in attribution templates.
type IOFileSystem struct {
	fsys fs.FS
	root string
}

// NewIOFileSystem wraps fsys, treating root as the top directory.
func NewIOFileSystem(fsys fs.FS, root string) *IOFileSystem {
	return &IOFileSystem{fsys: fsys, root: path.Clean(root)}
}

func (p *IOFileSystem) resolve(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if name == "" || name == "." {
		return p.root
	}
	return path.Clean(path.Join(p.root, strings.TrimPrefix(name, "/")))
}

func (p *IOFileSystem) Open(name string) (Directory, error) {
	abs := p.resolve(name)
	info, err := fs.Stat(p.fsys, abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", name, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", name)
	}
	return &ioDirectory{fsys: p.fsys, absPath: abs}, nil
}

func (p *IOFileSystem) ReadFile(name string) ([]byte, error) {
	content, err := fs.ReadFile(p.fsys, p.resolve(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", name, err)
	}
	return content, nil
}

func (p *IOFileSystem) Stat(name string) (FileInfo, error) {
	info, err := fs.Stat(p.fsys, p.resolve(name))
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %s: %w", name, err)
	}
	return info, nil
}

package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.mode.IsDir() }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryEntry struct {
	absPath string
	relPath string
	content []byte
	info    *memoryFileInfo
}

func (e *memoryEntry) Path() string                 { return e.absPath }
func (e *memoryEntry) RelativePath() string         { return e.relPath }
func (e *memoryEntry) Info() FileInfo               { return e.info }
func (e *memoryEntry) ReadContent() ([]byte, error) { return e.content, nil }

type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	var entries []*memoryEntry
	for p, e := range d.fs.entries {
		if p == d.absPath || strings.HasPrefix(p, strings.TrimSuffix(d.absPath, "/")+"/") {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].absPath < entries[j].absPath
	})

	for _, e := range entries {
		rel := "."
		if e.absPath != d.absPath {
			rel = strings.TrimPrefix(e.absPath, strings.TrimSuffix(d.absPath, "/")+"/")
		}
		view := &memoryEntry{absPath: e.absPath, relPath: rel, content: e.content, info: e.info}

		var callbackErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					callbackErr = fmt.Errorf("walk callback panicked at %s: %v", e.absPath, r)
				}
			}()
			callbackErr = fn(view, nil)
		}()
		if callbackErr != nil {
			return callbackErr
		}
	}
	return nil
}

// MemoryFileSystem implements FileSystemProvider in memory for tests.
// Paths are slash-separated; relative paths are resolved against the root.
type MemoryFileSystem struct {
	entries map[string]*memoryEntry
	root    string
}

// NewMemoryFileSystem creates an empty in-memory filesystem rooted at root.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	mfs := &MemoryFileSystem{
		entries: make(map[string]*memoryEntry),
		root:    path.Clean(filepath.ToSlash(root)),
	}
	mfs.AddDir(mfs.root)
	return mfs
}

// Root returns the root directory.
func (mfs *MemoryFileSystem) Root() string {
	return mfs.root
}

func (mfs *MemoryFileSystem) abs(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

// AddFile adds a file, creating missing parent directories.
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	abs := mfs.abs(filePath)
	mfs.entries[abs] = &memoryEntry{
		absPath: abs,
		content: []byte(content),
		info: &memoryFileInfo{
			name:    path.Base(abs),
			size:    int64(len(content)),
			mode:    0644,
			modTime: time.Now(),
		},
	}
	mfs.AddDir(path.Dir(abs))
}

// AddDir adds a directory and its parents.
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	abs := mfs.abs(dirPath)
	for {
		if _, ok := mfs.entries[abs]; ok {
			return
		}
		mfs.entries[abs] = &memoryEntry{
			absPath: abs,
			info: &memoryFileInfo{
				name:    path.Base(abs),
				mode:    0755 | fs.ModeDir,
				modTime: time.Now(),
			},
		}
		parent := path.Dir(abs)
		if parent == abs {
			return
		}
		abs = parent
	}
}

func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	abs := mfs.abs(openPath)
	e, ok := mfs.entries[abs]
	if !ok {
		return nil, fmt.Errorf("directory not found: %s", openPath)
	}
	if !e.info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}
	return &memoryDirectory{absPath: abs, fs: mfs}, nil
}

func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	e, ok := mfs.entries[mfs.abs(filePath)]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", filePath)
	}
	if e.info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	return e.content, nil
}

func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	e, ok := mfs.entries[mfs.abs(statPath)]
	if !ok {
		return nil, fmt.Errorf("path not found: %s", statPath)
	}
	return e.info, nil
}

package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
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

type memoryFile struct {
	absPath string
	relPath string
	content []byte
	info    *memoryFileInfo
}

func (f *memoryFile) Path() string         { return f.absPath }
func (f *memoryFile) RelativePath() string { return f.relPath }
func (f *memoryFile) Info() FileInfo       { return f.info }

func (f *memoryFile) ReadContent() ([]byte, error) {
	return append([]byte(nil), f.content...), nil
}

type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	entries := d.fs.entriesUnder(d.absPath)
	slices.SortFunc(entries, func(a, b *memoryFile) int {
		return strings.Compare(a.absPath, b.absPath)
	})

	for _, entry := range entries {
		view := *entry
		view.relPath = d.relative(entry.absPath)
		if err := visit(fn, &view, entry.absPath); err != nil {
			return err
		}
	}
	return nil
}

// relative returns absPath relative to the walked directory, as the OS
// implementation reports it.
func (d *memoryDirectory) relative(absPath string) string {
	if absPath == d.absPath {
		return "."
	}
	return strings.TrimPrefix(absPath, strings.TrimSuffix(d.absPath, "/")+"/")
}

// MemoryFileSystem implements FileSystemProvider in memory.
// Paths use forward slashes; relative paths resolve against the root.
// Safe for concurrent use.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string]*memoryFile
	root  string
}

// NewMemoryFileSystem creates an empty in-memory filesystem rooted at root.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		files: make(map[string]*memoryFile),
		root:  root,
	}
	mfs.files[root] = mfs.newDir(root)
	return mfs
}

// AddFile adds a file relative to the root (or at an absolute path).
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	if err := mfs.WriteFile(filePath, []byte(content), 0o644); err != nil {
		panic(err)
	}
}

func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

func (mfs *MemoryFileSystem) relative(absPath string) string {
	if absPath == mfs.root {
		return "."
	}
	if rel, ok := strings.CutPrefix(absPath, mfs.root+"/"); ok {
		return rel
	}
	return absPath
}

func (mfs *MemoryFileSystem) newDir(absPath string) *memoryFile {
	return &memoryFile{
		absPath: absPath,
		relPath: mfs.relative(absPath),
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			mode:    0o755 | fs.ModeDir,
			modTime: time.Now(),
		},
	}
}

// ensureParents must be called with mu held for writing.
func (mfs *MemoryFileSystem) ensureParents(absPath string) {
	for dir := path.Dir(absPath); dir != "/" && dir != "."; dir = path.Dir(dir) {
		if _, exists := mfs.files[dir]; exists {
			return
		}
		mfs.files[dir] = mfs.newDir(dir)
	}
}

func (mfs *MemoryFileSystem) entriesUnder(basePath string) []*memoryFile {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	prefix := strings.TrimSuffix(basePath, "/") + "/"
	var entries []*memoryFile
	for p, file := range mfs.files {
		if p == basePath || strings.HasPrefix(p, prefix) {
			entries = append(entries, file)
		}
	}
	return entries
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	absPath := mfs.resolve(openPath)

	mfs.mu.RLock()
	file, exists := mfs.files[absPath]
	mfs.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("directory not found: %s: %w", openPath, fs.ErrNotExist)
	}
	if !file.info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}
	return &memoryDirectory{absPath: absPath, fs: mfs}, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	absPath := mfs.resolve(filePath)

	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	file, exists := mfs.files[absPath]
	if !exists {
		return nil, fmt.Errorf("file not found: %s: %w", filePath, fs.ErrNotExist)
	}
	if file.info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	return file.ReadContent()
}

// WriteFile implements FileSystemProvider.WriteFile
func (mfs *MemoryFileSystem) WriteFile(filePath string, data []byte, perm fs.FileMode) error {
	absPath := mfs.resolve(filePath)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	if existing, ok := mfs.files[absPath]; ok {
		if existing.info.IsDir() {
			return fmt.Errorf("path is a directory, not a file: %s", filePath)
		}
		perm = existing.info.mode.Perm()
	}

	mfs.files[absPath] = &memoryFile{
		absPath: absPath,
		relPath: mfs.relative(absPath),
		content: append([]byte(nil), data...),
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(data)),
			mode:    perm.Perm(),
			modTime: time.Now(),
		},
	}
	mfs.ensureParents(absPath)
	return nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	absPath := mfs.resolve(statPath)

	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	file, exists := mfs.files[absPath]
	if !exists {
		return nil, fmt.Errorf("path not found: %s: %w", statPath, fs.ErrNotExist)
	}
	return file.info, nil
}

package filesystem

import (
	"fmt"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo.
type FileInfo = fs.FileInfo

// File is one entry met while walking a Directory.
type File interface {
	// Path returns the absolute path to the file
	Path() string

	// RelativePath returns the slash-separated path relative to the walked root
	RelativePath() string

	// Info returns file metadata
	Info() FileInfo

	// ReadContent returns the file's content
	ReadContent() ([]byte, error)
}

// Directory is a directory tree that can be traversed.
type Directory interface {
	// Path returns the absolute path to the directory
	Path() string

	// Walk calls fn for every file and directory below the root, in lexical
	// order. Walking stops at the first error returned by fn.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider gives access to directories and files.
type FileSystemProvider interface {
	// Open opens a directory at the specified path
	Open(path string) (Directory, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// WriteFile replaces the content of the file at path, creating it and
	// its parent directories when needed. Existing files keep their mode.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)
}

// visit calls fn for file and turns a panic inside fn into an error naming
// where the walk stopped.
func visit(fn func(File, error) error, file File, where string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("walk callback panicked at %s: %v", where, r)
		}
	}()
	return fn(file, nil)
}

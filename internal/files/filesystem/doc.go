// Package filesystem abstracts the file access usheader needs for a build:
// walking a bundler output directory, reading artifacts and writing rewritten
// entry files and source maps back.
//
// Implementations:
//   - OSFileSystem: the real filesystem; writes go through a temporary file
//     and a rename so an interrupted build never leaves a truncated bundle
//   - MemoryFileSystem: an in-memory tree for tests
//
// Errors for missing paths wrap fs.ErrNotExist in both implementations.
package filesystem

// Package scanner discovers bundler output artifacts in a directory tree.
//
// Every file with a generated code extension (.js, .mjs, .cjs) becomes an
// artifact whose ID is its slash-separated path relative to the scanned
// directory. An artifact is an entry when its ID matches one of the entry
// globs; globs use doublestar syntax, so "**/*.user.js" matches at any depth.
// A sibling file with the same name plus ".map" is reported as the
// artifact's source map.
//
// The scanner is filesystem-agnostic through filesystem.FileSystemProvider,
// so tests run against an in-memory tree.
package scanner

// Package files groups the file handling used by the build command.
//
// Sub-packages:
//   - filesystem: filesystem abstraction with OS and in-memory implementations
//   - scanner: discovery of bundler output artifacts in a dist directory
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/usheader/internal/files/filesystem"
//	    "github.com/vvka-141/usheader/internal/files/scanner"
//	)
//
//	s, err := scanner.NewScanner(checksum.New(), []string{"**/*.user.js"})
//	result, err := s.ScanDirectory("./dist")
//	artifacts := result.Artifacts()
package files

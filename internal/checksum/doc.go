// Package checksum provides content hashing for bundler artifacts.
//
// Two digests are offered:
//
//   - Raw checksum: hash of the exact bytes. The build command compares raw
//     checksums to skip rewriting entry files whose content did not change.
//   - Normalized checksum: hash after line ending and trailing whitespace
//     normalization. The grant scan cache is keyed by it, so the same bundle
//     built on Windows and Linux shares one cache entry.
//
// # Normalization Strategy
//
//  1. Drop a leading UTF-8 byte order mark
//  2. Convert CRLF and lone CR line endings to LF
//  3. Trim trailing spaces and tabs from every line
//  4. Trim trailing blank lines
//
// None of these steps can add or remove a grant call, so normalized content
// always scans to the same grant set as the original.
//
// # Example Usage
//
//	calculator := checksum.New()
//	raw := calculator.CalculateRaw(code)
//	key := calculator.CalculateNormalized(code)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum

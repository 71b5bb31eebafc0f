package checksum

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
)

// Calculator is an interface for computing content checksums.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculateNormalized computes a checksum of normalized content.
	CalculateNormalized(content []byte) string

	// CalculateString computes the normalized checksum of source text.
	CalculateString(source string) string
}

// SHA256 implements checksum calculation using SHA-256.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content.
func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// CalculateNormalized computes SHA-256 of normalized content.
func (c SHA256) CalculateNormalized(content []byte) string {
	hash := sha256.Sum256(c.normalize(content))
	return hex.EncodeToString(hash[:])
}

// CalculateString is a convenience wrapper over CalculateNormalized for
// source text held as a string.
func (c SHA256) CalculateString(source string) string {
	return c.CalculateNormalized([]byte(source))
}

var bom = []byte{0xEF, 0xBB, 0xBF}

func (c SHA256) normalize(content []byte) []byte {
	content = bytes.TrimPrefix(content, bom)

	out := make([]byte, 0, len(content))
	lineStart := 0
	for i := 0; i < len(content); i++ {
		ch := content[i]
		if ch != '\n' && ch != '\r' {
			continue
		}
		out = append(out, bytes.TrimRight(content[lineStart:i], " \t")...)
		out = append(out, '\n')
		if ch == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			i++
		}
		lineStart = i + 1
	}
	out = append(out, bytes.TrimRight(content[lineStart:], " \t")...)

	return bytes.TrimRight(out, "\n")
}

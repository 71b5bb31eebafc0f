package bundle

import (
	"strings"

	"github.com/vvka-141/usheader/pkg/usheader"
)

const (
	blockOpen  = "// ==UserScript=="
	blockClose = "// ==/UserScript=="
)

// Prepend joins header and code with the header separator.
func Prepend(header, code string) string {
	return header + usheader.HeaderSeparator + code
}

// StripHeader removes a userscript block at the very start of code together
// with the separator line that follows it. It reports whether a block was
// found. Code without a complete leading block is returned unchanged.
func StripHeader(code string) (string, bool) {
	body := strings.TrimPrefix(code, "\ufeff")
	if !strings.HasPrefix(body, blockOpen) {
		return code, false
	}

	idx := strings.Index(body, "\n"+blockClose)
	if idx < 0 {
		return code, false
	}
	rest := body[idx+1+len(blockClose):]

	rest = trimLineEnd(rest)
	rest = trimLineEnd(rest)
	return rest, true
}

// trimLineEnd drops one leading LF or CRLF.
func trimLineEnd(s string) string {
	if strings.HasPrefix(s, "\r\n") {
		return s[2:]
	}
	return strings.TrimPrefix(s, "\n")
}

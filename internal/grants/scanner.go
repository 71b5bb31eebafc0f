package grants

import (
	"regexp"

	"github.com/vvka-141/usheader/internal/metadata"
)

// callPattern matches a grant-like identifier followed by an opening
// parenthesis. The word boundary keeps myGM_info( and new_window.focus( out.
var callPattern = regexp.MustCompile(`\b(GM_[A-Za-z]+|GM\.[A-Za-z]+|window\.(?:focus|close))\s*\(`)

// Scanner finds the grants used by a piece of source code.
type Scanner interface {
	Scan(source string) metadata.GrantSet
}

// Func adapts an ordinary function to the Scanner interface.
type Func func(source string) metadata.GrantSet

// Scan calls f(source).
func (f Func) Scan(source string) metadata.GrantSet {
	return f(source)
}

// Result is the outcome of a detailed scan.
type Result struct {
	// Grants holds the recognized grants.
	Grants metadata.GrantSet
	// Ignored lists grant-like calls outside the vocabulary, sorted and distinct.
	Ignored []string
}

// Scan returns the set of known grants called in source. Unknown
// candidates are dropped silently.
func Scan(source string) metadata.GrantSet {
	return ScanDetailed(source).Grants
}

// ScanDetailed is Scan that also reports the candidates it dropped.
func ScanDetailed(source string) Result {
	found := metadata.NewGrantSet()
	ignored := metadata.NewSet[string]()

	for _, m := range callPattern.FindAllStringSubmatch(source, -1) {
		candidate := m[1]
		if g, ok := metadata.ParseGrant(candidate); ok {
			found.Add(g)
			continue
		}
		ignored.Add(candidate)
	}

	out := Result{Grants: found}
	if ignored.Len() > 0 {
		out.Ignored = ignored.Sorted()
	}
	return out
}

// Default is the package level scanner backed by Scan.
var Default Scanner = Func(Scan)

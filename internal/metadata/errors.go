package metadata

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMetadata matches every *ValidationError via errors.Is.
var ErrInvalidMetadata = errors.New("invalid userscript metadata")

// Issue is one violated rule.
type Issue struct {
	Path    string // dotted path below the metadata root, e.g. "localizedName.english"
	Message string // what is wrong
	Hint    string // actionable suggestion, optional
}

// QualifiedPath returns the path prefixed with the metadata root, as shown
// to users.
func (i Issue) QualifiedPath() string {
	if i.Path == "" {
		return "metadata"
	}
	return "metadata." + i.Path
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.QualifiedPath(), i.Message)
}

// ValidationError reports raw configuration that failed validation.
// It carries every issue found, in field declaration order.
type ValidationError struct {
	Source string // configuration source (usually a file path), optional
	Issues []Issue
}

// Error implements the error interface. It leads with the first issue.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("invalid userscript metadata")
	if e.Source != "" {
		b.WriteString(" in ")
		b.WriteString(e.Source)
	}
	if len(e.Issues) == 0 {
		return b.String()
	}
	b.WriteString(": ")
	b.WriteString(e.Issues[0].String())
	if n := len(e.Issues) - 1; n == 1 {
		b.WriteString(" (and 1 more issue)")
	} else if n > 1 {
		fmt.Fprintf(&b, " (and %d more issues)", n)
	}
	return b.String()
}

// Is makes errors.Is(err, ErrInvalidMetadata) hold.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidMetadata
}

// Paths returns the issue paths in order.
func (e *ValidationError) Paths() []string {
	out := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		out[i] = issue.Path
	}
	return out
}

// Detail renders every issue with its hint, one numbered entry per issue.
func (e *ValidationError) Detail() string {
	var msg strings.Builder
	if e.Source != "" {
		fmt.Fprintf(&msg, "invalid userscript metadata in %s:\n", e.Source)
	} else {
		msg.WriteString("invalid userscript metadata:\n")
	}
	for i, issue := range e.Issues {
		fmt.Fprintf(&msg, "  %d. %s\n", i+1, issue)
		if issue.Hint != "" {
			fmt.Fprintf(&msg, "     Hint: %s\n", issue.Hint)
		}
	}
	return msg.String()
}

// InvariantError reports a broken internal invariant. It signals a
// programming defect and is raised with panic, never returned.
type InvariantError struct {
	Op      string
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("internal invariant violated in %s: %s", e.Op, e.Message)
}

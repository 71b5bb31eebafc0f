package userscript

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vvka-141/usheader/internal/metadata"
)

const (
	headerOpen  = "// ==UserScript=="
	headerClose = "// ==/UserScript=="
)

// render builds the metadata block: scalars, then sets, then maps, each group
// in field table order. Every line ends with a single newline.
func render(meta *metadata.Metadata) string {
	var b strings.Builder
	b.WriteString(headerOpen)
	b.WriteByte('\n')

	for _, f := range metadata.Fields() {
		switch f.Kind() {
		case metadata.KindScalar:
			if value, ok := meta.Scalar(f); ok {
				writeLine(&b, f.HeaderKey(), value)
			}
		case metadata.KindSet:
			members, _ := meta.SetMembers(f)
			if f == metadata.FieldGrants && len(members) == 0 {
				writeLine(&b, f.HeaderKey(), metadata.GrantNone)
				continue
			}
			for _, m := range members {
				writeLine(&b, f.HeaderKey(), m)
			}
		case metadata.KindMap:
			entries := meta.MapEntries(f)
			slices.SortFunc(entries, func(a, b metadata.Entry) int {
				return strings.Compare(a.Key, b.Key)
			})
			for _, e := range entries {
				writeMapLine(&b, f, e)
			}
		default:
			panic(&metadata.InvariantError{Op: "render", Message: fmt.Sprintf("field %s has no group", f)})
		}
	}

	b.WriteString(headerClose)
	b.WriteByte('\n')
	return b.String()
}

func writeMapLine(b *strings.Builder, f metadata.Field, e metadata.Entry) {
	switch f {
	case metadata.FieldResources:
		writeLine(b, f.HeaderKey(), e.Key+" "+e.Value)
	default:
		writeLine(b, f.HeaderKey()+":"+e.Key, e.Value)
	}
}

// writeLine emits "// @key value".
func writeLine(b *strings.Builder, key, value string) {
	b.WriteString("// @")
	b.WriteString(key)
	b.WriteByte(' ')
	b.WriteString(value)
	b.WriteByte('\n')
}

// Keys returns the distinct header keys present in a rendered block, in the
// order they first appear. Localized keys are reported without their locale
// suffix.
func Keys(header string) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(header, "\n") {
		rest, ok := strings.CutPrefix(line, "// @")
		if !ok {
			continue
		}
		key, _, _ := strings.Cut(rest, " ")
		key, _, _ = strings.Cut(key, ":")
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys
}

// Package sourcemap keeps bundler source maps aligned with rewritten
// artifacts.
//
// Prepending a header of N lines moves every generated line down by N. In a
// v3 source map each generated line is one ';'-separated group of the
// "mappings" string, so the shift is N empty groups at the front. Index maps
// ("sections") are shifted by moving every section offset instead.
package sourcemap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupported is returned for documents that are not v3 source maps.
var ErrUnsupported = errors.New("unsupported source map")

// LineOffset returns how many lines prefix adds in front of existing code.
func LineOffset(prefix string) int {
	return strings.Count(prefix, "\n")
}

// SourceMap is a v3 source map document. Fields other than the ones the
// shift touches are kept verbatim.
type SourceMap struct {
	fields   map[string]json.RawMessage
	mappings string
	sections []section
	indexed  bool
}

type section struct {
	fields map[string]json.RawMessage
	line   int
	column int
}

// Parse decodes a v3 source map.
func Parse(data []byte) (*SourceMap, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse source map: %w", err)
	}

	var version int
	if raw, ok := fields["version"]; ok {
		if err := json.Unmarshal(raw, &version); err != nil {
			return nil, fmt.Errorf("%w: version is not a number", ErrUnsupported)
		}
	}
	if version != 3 {
		return nil, fmt.Errorf("%w: version %d", ErrUnsupported, version)
	}

	sm := &SourceMap{fields: fields}
	if raw, ok := fields["sections"]; ok {
		sm.indexed = true
		var sections []map[string]json.RawMessage
		if err := json.Unmarshal(raw, &sections); err != nil {
			return nil, fmt.Errorf("failed to parse sections: %w", err)
		}
		for i, s := range sections {
			var offset struct {
				Line   int `json:"line"`
				Column int `json:"column"`
			}
			if err := json.Unmarshal(s["offset"], &offset); err != nil {
				return nil, fmt.Errorf("failed to parse offset of section %d: %w", i, err)
			}
			sm.sections = append(sm.sections, section{fields: s, line: offset.Line, column: offset.Column})
		}
		return sm, nil
	}

	if raw, ok := fields["mappings"]; ok {
		if err := json.Unmarshal(raw, &sm.mappings); err != nil {
			return nil, fmt.Errorf("failed to parse mappings: %w", err)
		}
	}
	return sm, nil
}

// Mappings returns the encoded mappings of a regular map.
func (sm *SourceMap) Mappings() string {
	return sm.mappings
}

// Shift moves all generated positions by lines. A negative value removes
// leading empty lines, which undoes an earlier shift; it fails when the
// lines to remove carry mappings.
func (sm *SourceMap) Shift(lines int) error {
	if lines == 0 {
		return nil
	}

	if sm.indexed {
		for i := range sm.sections {
			if sm.sections[i].line+lines < 0 {
				return fmt.Errorf("cannot shift section %d above the first line", i)
			}
			sm.sections[i].line += lines
		}
		return nil
	}

	if lines > 0 {
		sm.mappings = strings.Repeat(";", lines) + sm.mappings
		return nil
	}
	remove := -lines
	if len(sm.mappings) < remove || strings.Count(sm.mappings[:remove], ";") != remove {
		return fmt.Errorf("cannot remove %d mapped line(s) from the start of the map", remove)
	}
	sm.mappings = sm.mappings[remove:]
	return nil
}

// Bytes encodes the document.
func (sm *SourceMap) Bytes() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(sm.fields))
	for k, v := range sm.fields {
		out[k] = v
	}

	if sm.indexed {
		sections := make([]map[string]json.RawMessage, len(sm.sections))
		for i, s := range sm.sections {
			fields := make(map[string]json.RawMessage, len(s.fields))
			for k, v := range s.fields {
				fields[k] = v
			}
			offset, err := marshal(map[string]int{"line": s.line, "column": s.column})
			if err != nil {
				return nil, err
			}
			fields["offset"] = offset
			sections[i] = fields
		}
		raw, err := marshal(sections)
		if err != nil {
			return nil, err
		}
		out["sections"] = raw
	} else {
		raw, err := marshal(sm.mappings)
		if err != nil {
			return nil, err
		}
		out["mappings"] = raw
	}

	return marshal(out)
}

// Shift parses data, shifts it by lines and encodes it again.
func Shift(data []byte, lines int) ([]byte, error) {
	sm, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := sm.Shift(lines); err != nil {
		return nil, err
	}
	return sm.Bytes()
}

func marshal(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode source map: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

package metadata

import (
	"fmt"
	"strconv"
)

// RunAt specifies when the script is injected into the page.
type RunAt string

const (
	// RunAtDocumentStart runs the script as soon as possible.
	RunAtDocumentStart RunAt = "document-start"
	// RunAtDocumentEnd runs the script when DOMContentLoaded fires.
	RunAtDocumentEnd RunAt = "document-end"
	// RunAtDocumentIdle runs the script after DOMContentLoaded.
	RunAtDocumentIdle RunAt = "document-idle"
)

// InjectInto selects the context the script is injected into.
type InjectInto string

const (
	// InjectIntoPage injects into the context of the web page.
	InjectIntoPage InjectInto = "page"
	// InjectIntoContent injects into the content script context.
	InjectIntoContent InjectInto = "content"
	// InjectIntoAuto tries the page first and falls back to content when CSP blocks it.
	InjectIntoAuto InjectInto = "auto"
)

var (
	runAtValues      = []string{string(RunAtDocumentEnd), string(RunAtDocumentStart), string(RunAtDocumentIdle)}
	injectIntoValues = []string{string(InjectIntoPage), string(InjectIntoContent), string(InjectIntoAuto)}
)

// Scalars holds single-valued fields. Empty strings and nil flags mean
// "absent"; the validator never produces an empty present value.
type Scalars struct {
	Name        string
	Namespace   string
	Version     string
	Description string
	Icon        string
	DownloadURL string
	SupportURL  string
	HomepageURL string
	RunAt       RunAt
	InjectInto  InjectInto
	NoFrames    *bool
	Unwrap      *bool
}

// Sets holds repeated fields. A nil set means the field was not configured.
type Sets struct {
	Match        StringSet
	ExcludeMatch StringSet
	Include      StringSet
	Exclude      StringSet
	Grants       GrantSet
	Require      StringSet
}

// Maps holds keyed fields. A nil map means the field was not configured.
type Maps struct {
	LocalizedName        *OrderedMap
	LocalizedDescription *OrderedMap
	Resources            *OrderedMap
}

// Metadata is the normalized, canonical form of a userscript declaration.
type Metadata struct {
	Scalars Scalars
	Sets    Sets
	Maps    Maps
}

// Entry is one key/value pair of a map field.
type Entry struct {
	Key   string
	Value string
}

// Clone returns a deep copy.
func (m *Metadata) Clone() *Metadata {
	out := &Metadata{Scalars: m.Scalars}
	out.Scalars.NoFrames = cloneFlag(m.Scalars.NoFrames)
	out.Scalars.Unwrap = cloneFlag(m.Scalars.Unwrap)
	out.Sets = Sets{
		Match:        cloneSet(m.Sets.Match),
		ExcludeMatch: cloneSet(m.Sets.ExcludeMatch),
		Include:      cloneSet(m.Sets.Include),
		Exclude:      cloneSet(m.Sets.Exclude),
		Grants:       cloneSet(m.Sets.Grants),
		Require:      cloneSet(m.Sets.Require),
	}
	out.Maps = Maps{
		LocalizedName:        m.Maps.LocalizedName.Clone(),
		LocalizedDescription: m.Maps.LocalizedDescription.Clone(),
		Resources:            m.Maps.Resources.Clone(),
	}
	return out
}

func cloneFlag(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

func cloneSet[T ~string](s Set[T]) Set[T] {
	if s == nil {
		return nil
	}
	return s.Clone()
}

// Scalar returns the rendered value of a scalar field and whether it is
// present. A configured flag renders as "true" or "false".
func (m *Metadata) Scalar(f Field) (string, bool) {
	s := &m.Scalars
	switch f {
	case FieldName:
		return s.Name, s.Name != ""
	case FieldNamespace:
		return s.Namespace, s.Namespace != ""
	case FieldVersion:
		return s.Version, s.Version != ""
	case FieldDescription:
		return s.Description, s.Description != ""
	case FieldIcon:
		return s.Icon, s.Icon != ""
	case FieldDownloadURL:
		return s.DownloadURL, s.DownloadURL != ""
	case FieldSupportURL:
		return s.SupportURL, s.SupportURL != ""
	case FieldHomepageURL:
		return s.HomepageURL, s.HomepageURL != ""
	case FieldRunAt:
		return string(s.RunAt), s.RunAt != ""
	case FieldInjectInto:
		return string(s.InjectInto), s.InjectInto != ""
	case FieldNoFrames:
		return flagValue(s.NoFrames)
	case FieldUnwrap:
		return flagValue(s.Unwrap)
	}
	panic(&InvariantError{Op: "scalar lookup", Message: fmt.Sprintf("%s is not a scalar field", f)})
}

// SetMembers returns the members of a set field in lexical order and
// whether the field is configured.
func (m *Metadata) SetMembers(f Field) ([]string, bool) {
	s := &m.Sets
	switch f {
	case FieldMatch:
		return s.Match.Strings(), s.Match != nil
	case FieldExcludeMatch:
		return s.ExcludeMatch.Strings(), s.ExcludeMatch != nil
	case FieldInclude:
		return s.Include.Strings(), s.Include != nil
	case FieldExclude:
		return s.Exclude.Strings(), s.Exclude != nil
	case FieldGrants:
		return s.Grants.Strings(), s.Grants != nil
	case FieldRequire:
		return s.Require.Strings(), s.Require != nil
	}
	panic(&InvariantError{Op: "set lookup", Message: fmt.Sprintf("%s is not a set field", f)})
}

// MapEntries returns the entries of a map field in key order.
func (m *Metadata) MapEntries(f Field) []Entry {
	var om *OrderedMap
	switch f {
	case FieldLocalizedName:
		om = m.Maps.LocalizedName
	case FieldLocalizedDescription:
		om = m.Maps.LocalizedDescription
	case FieldResources:
		om = m.Maps.Resources
	default:
		panic(&InvariantError{Op: "map lookup", Message: fmt.Sprintf("%s is not a map field", f)})
	}
	keys := om.Keys()
	out := make([]Entry, len(keys))
	for i, k := range keys {
		v, _ := om.Get(k)
		out[i] = Entry{Key: k, Value: v}
	}
	return out
}

// Summary renders the model as a flat key/value listing keyed by field name.
// It is meant for diagnostics (validate --json), not for the header.
func (m *Metadata) Summary() map[string]any {
	out := make(map[string]any)
	for _, f := range Fields() {
		switch f.Kind() {
		case KindScalar:
			if f == FieldNoFrames || f == FieldUnwrap {
				if _, on := m.Scalar(f); on {
					out[f.Name()] = true
				}
				continue
			}
			if v, ok := m.Scalar(f); ok {
				out[f.Name()] = v
			}
		case KindSet:
			if members, ok := m.SetMembers(f); ok {
				out[f.Name()] = members
			}
		case KindMap:
			entries := m.MapEntries(f)
			if len(entries) == 0 {
				continue
			}
			kv := make(map[string]string, len(entries))
			for _, e := range entries {
				kv[e.Key] = e.Value
			}
			out[f.Name()] = kv
		}
	}
	return out
}


func flagValue(b *bool) (string, bool) {
	if b == nil {
		return "", false
	}
	return strconv.FormatBool(*b), true
}

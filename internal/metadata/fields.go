package metadata

import "fmt"

// Field identifies one canonical metadata field.
// Fields are declared in rendering order: scalars, then sets, then maps.
type Field int

const (
	FieldName Field = iota
	FieldNamespace
	FieldVersion
	FieldDescription
	FieldIcon
	FieldDownloadURL
	FieldSupportURL
	FieldHomepageURL
	FieldRunAt
	FieldInjectInto
	FieldNoFrames
	FieldUnwrap

	FieldMatch
	FieldExcludeMatch
	FieldInclude
	FieldExclude
	FieldGrants
	FieldRequire

	FieldLocalizedName
	FieldLocalizedDescription
	FieldResources

	fieldCount
)

// FieldKind partitions fields into the three groups of the model.
type FieldKind int

const (
	KindScalar FieldKind = iota + 1
	KindSet
	KindMap
)

func (k FieldKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSet:
		return "set"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
}

type fieldSpec struct {
	name string // configuration key and validation path segment
	key  string // header key emitted after "@"
	kind FieldKind
}

// fieldTable owns the field name to header key mapping. The array is sized
// by fieldCount; init rejects any field left without an entry.
var fieldTable = [fieldCount]fieldSpec{
	FieldName:        {name: "name", key: "name", kind: KindScalar},
	FieldNamespace:   {name: "namespace", key: "namespace", kind: KindScalar},
	FieldVersion:     {name: "version", key: "version", kind: KindScalar},
	FieldDescription: {name: "description", key: "description", kind: KindScalar},
	FieldIcon:        {name: "icon", key: "icon", kind: KindScalar},
	FieldDownloadURL: {name: "downloadUrl", key: "downloadURL", kind: KindScalar},
	FieldSupportURL:  {name: "supportUrl", key: "supportURL", kind: KindScalar},
	FieldHomepageURL: {name: "homepageUrl", key: "homepageURL", kind: KindScalar},
	FieldRunAt:       {name: "runAt", key: "run-at", kind: KindScalar},
	FieldInjectInto:  {name: "injectInto", key: "inject-into", kind: KindScalar},
	FieldNoFrames:    {name: "noframes", key: "noframes", kind: KindScalar},
	FieldUnwrap:      {name: "unwrap", key: "unwrap", kind: KindScalar},

	FieldMatch:        {name: "match", key: "match", kind: KindSet},
	FieldExcludeMatch: {name: "excludeMatch", key: "exclude-match", kind: KindSet},
	FieldInclude:      {name: "include", key: "include", kind: KindSet},
	FieldExclude:      {name: "exclude", key: "exclude", kind: KindSet},
	FieldGrants:       {name: "grants", key: "grant", kind: KindSet},
	FieldRequire:      {name: "require", key: "require", kind: KindSet},

	FieldLocalizedName:        {name: "localizedName", key: "name", kind: KindMap},
	FieldLocalizedDescription: {name: "localizedDescription", key: "description", kind: KindMap},
	FieldResources:            {name: "resources", key: "resource", kind: KindMap},
}

var fieldsByName = func() map[string]Field {
	m := make(map[string]Field, fieldCount)
	for f := Field(0); f < fieldCount; f++ {
		m[fieldTable[f].name] = f
	}
	return m
}()

func init() {
	for f := Field(0); f < fieldCount; f++ {
		spec := fieldTable[f]
		if spec.name == "" || spec.key == "" || spec.kind == 0 {
			panic(&InvariantError{Op: "field table", Message: fmt.Sprintf("field %d has no complete entry", int(f))})
		}
	}
}

// Fields returns every field in rendering order.
func Fields() []Field {
	out := make([]Field, 0, fieldCount)
	for f := Field(0); f < fieldCount; f++ {
		out = append(out, f)
	}
	return out
}

// FieldByName looks up a field by its configuration key.
func FieldByName(name string) (Field, bool) {
	f, ok := fieldsByName[name]
	return f, ok
}

// HeaderKeys returns the distinct header keys of the field table, in
// rendering order of first use.
func HeaderKeys() []string {
	seen := make(map[string]bool, fieldCount)
	var out []string
	for f := Field(0); f < fieldCount; f++ {
		if k := fieldTable[f].key; !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

func (f Field) valid() bool { return f >= 0 && f < fieldCount }

// Name returns the configuration key of the field.
func (f Field) Name() string {
	if !f.valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldTable[f].name
}

// HeaderKey returns the key emitted in the header for the field.
// It panics with an InvariantError for fields outside the table.
func (f Field) HeaderKey() string {
	if !f.valid() {
		panic(&InvariantError{Op: "header key", Message: fmt.Sprintf("unknown field %d", int(f))})
	}
	return fieldTable[f].key
}

// Kind returns the group the field belongs to.
func (f Field) Kind() FieldKind {
	if !f.valid() {
		return 0
	}
	return fieldTable[f].kind
}

func (f Field) String() string { return f.Name() }

package metadata

import (
	"strings"

	"github.com/google/uuid"
)

// NamespaceScriptIdentity is the fixed UUID namespace for deriving
// userscript namespaces from script names. It is computed once at package
// load as uuid_v5(NameSpaceURL, "usheader/script-namespace/v1").
var NamespaceScriptIdentity = uuid.NewSHA1(uuid.NameSpaceURL, []byte("usheader/script-namespace/v1"))

// NamespaceFor derives a deterministic @namespace value from a script name.
//
// Violentmonkey identifies a script by the pair (@namespace, @name). Deriving
// the namespace from the normalized name keeps that pair stable across
// machines while staying unique to this tool.
//
// Examples:
//   - "My Script"   → "urn:uuid:" + uuid_v5(namespace, "my script")
//   - "  my script" → same value (case and surrounding space are ignored)
func NamespaceFor(name string) string {
	return "urn:uuid:" + uuid.NewSHA1(NamespaceScriptIdentity, []byte(normalizeName(name))).String()
}

// normalizeName lowercases and trims a script name and collapses inner
// whitespace runs into single spaces.
func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

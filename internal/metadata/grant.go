package metadata

import (
	"slices"
)

// Grant names one privileged API a userscript may call. The runtime sandboxes
// every API that is not granted.
type Grant string

// GrantNone is the value emitted on the single @grant line of a script that
// uses no privileged API. It is not part of the vocabulary.
const GrantNone = "none"

// grantVocabulary is the closed set of grants understood by Violentmonkey.
// Validation and code scanning both consult it.
var grantVocabulary = [...]Grant{
	"GM_info",
	"GM_getValue",
	"GM_setValue",
	"GM_deleteValue",
	"GM_listValues",
	"GM_addValueChangeListener",
	"GM_removeValueChangeListener",
	"GM_getResourceText",
	"GM_getResourceURL",
	"GM_addElement",
	"GM_addStyle",
	"GM_openInTab",
	"GM_registerMenuCommand",
	"GM_unregisterMenuCommand",
	"GM_notification",
	"GM_setClipboard",
	"GM_xmlhttpRequest",
	"GM_download",
	"GM.addStyle",
	"GM.addElement",
	"GM.registerMenuCommand",
	"GM.deleteValue",
	"GM.getResourceUrl",
	"GM.getValue",
	"GM.info",
	"GM.listValues",
	"GM.notification",
	"GM.openInTab",
	"GM.setClipboard",
	"GM.setValue",
	"GM.xmlHttpRequest",
	"window.close",
	"window.focus",
}

var knownGrants = func() map[Grant]struct{} {
	m := make(map[Grant]struct{}, len(grantVocabulary))
	for _, g := range grantVocabulary {
		m[g] = struct{}{}
	}
	return m
}()

// Grants returns the grant vocabulary in declaration order.
func Grants() []Grant {
	return slices.Clone(grantVocabulary[:])
}

// ParseGrant reports whether s names a known grant. Matching is exact and
// case-sensitive.
func ParseGrant(s string) (Grant, bool) {
	g := Grant(s)
	if _, ok := knownGrants[g]; !ok {
		return "", false
	}
	return g, true
}

// Valid reports whether g is part of the vocabulary.
func (g Grant) Valid() bool {
	_, ok := knownGrants[g]
	return ok
}

func (g Grant) String() string { return string(g) }

// Package grants discovers the privileged userscript APIs a bundle calls and
// merges them with the grants declared in configuration.
//
// Scanning is a regular expression pass over generated code. It recognizes
// calls of the form GM_name(...), GM.name(...), window.focus() and
// window.close(). Candidates that are not in the grant vocabulary of
// internal/metadata are dropped; ScanDetailed reports them for diagnostics.
//
// Discover scans many artifacts in parallel. Each scan writes only its own
// result slot; after all scans finish, a single goroutine unions the slots
// with the declared grants. The result does not depend on artifact order or
// on the concurrency level.
package grants

// Package metadata provides the userscript metadata model: the grant
// vocabulary, the canonical field table, and validation of loosely-typed
// configuration into a normalized Metadata value.
//
// # Overview
//
// A userscript declares its metadata in a comment block consumed by the
// userscript manager:
//
//	// ==UserScript==
//	// @name        My Script
//	// @run-at      document-end
//	// @grant       GM_getValue
//	// ==/UserScript==
//
// This package owns everything up to, but not including, rendering that
// block (see package userscript).
//
// # Model
//
// Metadata is partitioned into three disjoint groups:
//   - Scalars: name (required), namespace, version, description, icon,
//     downloadUrl, supportUrl, homepageUrl, runAt, injectInto, noframes, unwrap
//   - Sets: match, excludeMatch, include, exclude, grants, require
//   - Maps: localizedName, localizedDescription (locale tag → text),
//     resources (resource id → URL)
//
// Each field has one fixed header key owned by a static table indexed by
// Field (downloadUrl → downloadURL, excludeMatch → exclude-match,
// resources → resource, ...). The table is checked for completeness at
// package init.
//
// # Validation Rules
//
//   - name: required non-empty string
//   - namespace, version, description: non-empty strings
//   - icon, downloadUrl, supportUrl, homepageUrl, require[]: absolute URLs
//   - runAt: document-start | document-end | document-idle (default document-end)
//   - injectInto: page | content | auto (default page)
//   - noframes, unwrap: booleans
//   - match, excludeMatch, include, exclude: arrays of non-empty strings
//   - grants: array of grants from the closed vocabulary (see Grants)
//   - localizedName, localizedDescription: locale tag (xx-XX) → non-empty string
//   - resources: id without whitespace → URL
//
// Validation collects every issue. Paths are dotted below the metadata root:
// "name", "grants.2", "localizedName.english".
//
// # Usage
//
//	meta, err := metadata.Validate(raw)
//	var verr *metadata.ValidationError
//	if errors.As(err, &verr) {
//	    fmt.Fprint(os.Stderr, verr.Detail())
//	}
package metadata

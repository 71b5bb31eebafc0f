// Package userscript holds the normalized userscript model and renders it as a
// // ==UserScript== metadata block.
//
// A UserScript is built from validated metadata. Grants are the only mutable
// part of the model: the build pipeline replaces them once with the union of
// declared and discovered grants, freezes the script and renders the header.
//
// Rendering is cached. The script is either Dirty (the next Header call
// rebuilds the text) or Clean (Header returns the cached text). Only a
// SetGrants call that changes the grant set moves the script back to Dirty.
//
//	script := userscript.New(meta)
//	script.SetGrants(merged)
//	script.Freeze()
//	fmt.Print(script.Header())
package userscript

package usheader

// Artifact is one finished unit of bundler output.
//
// ID identifies the artifact within a build (for file based builds, the
// slash-separated path relative to the output directory). Code is the
// generated source text. IsEntry marks top-level scripts that receive the
// userscript header; shared chunks are scanned for grants but never rewritten.
type Artifact struct {
	ID      string
	Code    string
	IsEntry bool
}

// Entries returns the number of entry artifacts in the slice.
func Entries(artifacts []Artifact) int {
	n := 0
	for _, a := range artifacts {
		if a.IsEntry {
			n++
		}
	}
	return n
}

// ArtifactFile is an artifact discovered on disk together with the
// information needed to write it back.
type ArtifactFile struct {
	Artifact

	// Path is the absolute path of the artifact file.
	Path string

	// SourceMapPath is the path of the sibling source map, or empty when the
	// artifact has none.
	SourceMapPath string

	// Checksum is the raw content digest of the file as read.
	Checksum string
}

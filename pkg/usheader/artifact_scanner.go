package usheader

// ArtifactScanner discovers bundler output artifacts in a directory tree.
// Implementations must be safe for concurrent use by multiple goroutines.
type ArtifactScanner interface {
	// ScanDirectory walks distPath and returns every generated code file,
	// flagging entry artifacts. Files are returned in a stable order.
	ScanDirectory(distPath string) (ArtifactScanResult, error)
}

// ArtifactScanResult contains the results of scanning an output directory.
type ArtifactScanResult struct {
	Files []ArtifactFile
}

// Artifacts returns the plain artifacts in scan order.
func (r ArtifactScanResult) Artifacts() []Artifact {
	out := make([]Artifact, len(r.Files))
	for i, f := range r.Files {
		out[i] = f.Artifact
	}
	return out
}

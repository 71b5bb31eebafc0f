package scanner

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/vvka-141/usheader/internal/checksum"
	"github.com/vvka-141/usheader/internal/files/filesystem"
	"github.com/vvka-141/usheader/pkg/usheader"
)

// Scanner discovers artifacts in an output directory.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided calculator and fsProvider are also thread-safe.
type Scanner struct {
	calculator checksum.Calculator
	fsProvider filesystem.FileSystemProvider
	entries    []string
}

// NewScanner creates a scanner on the OS filesystem. An empty pattern list
// selects usheader.DefaultEntryPatterns.
// Panics if calculator is nil.
func NewScanner(calculator checksum.Calculator, entryPatterns []string) (*Scanner, error) {
	return NewScannerWithFS(calculator, filesystem.NewOSFileSystem(), entryPatterns)
}

// NewScannerWithFS creates a scanner with a custom filesystem provider.
// Panics if calculator or fsProvider is nil.
func NewScannerWithFS(calculator checksum.Calculator, fsProvider filesystem.FileSystemProvider, entryPatterns []string) (*Scanner, error) {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}

	if len(entryPatterns) == 0 {
		entryPatterns = usheader.DefaultEntryPatterns
	}
	patterns := make([]string, 0, len(entryPatterns))
	for _, p := range entryPatterns {
		p = strings.TrimPrefix(path.Clean(strings.ReplaceAll(p, "\\", "/")), "./")
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: invalid entry pattern %q", usheader.ErrUsage, p)
		}
		patterns = append(patterns, p)
	}

	return &Scanner{
		calculator: calculator,
		fsProvider: fsProvider,
		entries:    patterns,
	}, nil
}

// EntryPatterns returns the normalized entry globs.
func (s *Scanner) EntryPatterns() []string {
	return slices.Clone(s.entries)
}

// IsEntry reports whether the slash-separated id matches an entry glob.
func (s *Scanner) IsEntry(id string) bool {
	for _, p := range s.entries {
		if matched, err := doublestar.Match(p, id); err == nil && matched {
			return true
		}
	}
	return false
}

// ScanDirectory walks distPath and returns its artifacts sorted by ID.
func (s *Scanner) ScanDirectory(distPath string) (usheader.ArtifactScanResult, error) {
	dir, err := s.fsProvider.Open(distPath)
	if err != nil {
		return usheader.ArtifactScanResult{}, fmt.Errorf("failed to open directory: %w", err)
	}

	var files []usheader.ArtifactFile
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}
		if file.Info().IsDir() || !isArtifactExtension(path.Ext(file.RelativePath())) {
			return nil
		}

		artifact, err := s.processFile(file)
		if err != nil {
			return fmt.Errorf("failed to process file %s: %w", file.RelativePath(), err)
		}
		files = append(files, artifact)
		return nil
	})
	if err != nil {
		return usheader.ArtifactScanResult{}, err
	}

	slices.SortFunc(files, func(a, b usheader.ArtifactFile) int {
		return strings.Compare(a.ID, b.ID)
	})
	return usheader.ArtifactScanResult{Files: files}, nil
}

func (s *Scanner) processFile(file filesystem.File) (usheader.ArtifactFile, error) {
	content, err := file.ReadContent()
	if err != nil {
		return usheader.ArtifactFile{}, fmt.Errorf("failed to read file: %w", err)
	}

	id := file.RelativePath()
	out := usheader.ArtifactFile{
		Artifact: usheader.Artifact{
			ID:      id,
			Code:    string(content),
			IsEntry: s.IsEntry(id),
		},
		Path:     file.Path(),
		Checksum: s.calculator.CalculateRaw(content),
	}

	mapPath := file.Path() + usheader.SourceMapExtension
	if info, err := s.fsProvider.Stat(mapPath); err == nil && !info.IsDir() {
		out.SourceMapPath = mapPath
	}
	return out, nil
}

func isArtifactExtension(ext string) bool {
	return slices.Contains(usheader.ArtifactExtensions, strings.ToLower(ext))
}

var _ usheader.ArtifactScanner = (*Scanner)(nil)

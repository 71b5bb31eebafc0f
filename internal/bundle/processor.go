// Package bundle runs the header pipeline over a finished build: validate the
// configuration, discover grants in every artifact, render the header once and
// prepend it to each entry artifact.
package bundle

import (
	"context"
	"errors"
	"fmt"

	"github.com/vvka-141/usheader/internal/grants"
	"github.com/vvka-141/usheader/internal/metadata"
	"github.com/vvka-141/usheader/internal/userscript"
	"github.com/vvka-141/usheader/pkg/usheader"
)

// Result is the outcome of a successful Process call.
type Result struct {
	// Artifacts holds every input artifact in input order. Entry artifacts
	// carry the header; all others are unchanged.
	Artifacts []usheader.Artifact

	// Header is the rendered metadata block.
	Header string

	// Grants is the merged grant set written to the header.
	Grants metadata.GrantSet

	// Entries is the number of artifacts that received the header.
	Entries int
}

// Option configures a Processor.
type Option func(*Processor)

// WithConcurrency bounds the number of artifacts scanned at once.
func WithConcurrency(n int) Option {
	return func(p *Processor) {
		p.concurrency = n
	}
}

// WithSource names the configuration the metadata was read from. Validation
// errors report it.
func WithSource(source string) Option {
	return func(p *Processor) {
		p.source = source
	}
}

// Processor applies the userscript header to a set of artifacts.
// A Processor holds no per-build state and may be reused.
type Processor struct {
	logger      usheader.Logger
	scanner     grants.Scanner
	concurrency int
	source      string
}

// NewProcessor creates a Processor. It panics when logger or scanner is nil.
func NewProcessor(logger usheader.Logger, scanner grants.Scanner, opts ...Option) *Processor {
	if logger == nil {
		panic("logger cannot be nil")
	}
	if scanner == nil {
		panic("scanner cannot be nil")
	}

	p := &Processor{
		logger:      logger,
		scanner:     scanner,
		concurrency: usheader.DefaultScanConcurrency,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ValidateConfig validates raw metadata read from source. The error matches
// usheader.ErrInvalidConfig, unwraps to *metadata.ValidationError and names
// source in its message.
func ValidateConfig(raw any, source string) (*metadata.Metadata, error) {
	meta, err := metadata.Validate(raw)
	if err == nil {
		return meta, nil
	}
	var verr *metadata.ValidationError
	if errors.As(err, &verr) && verr.Source == "" {
		verr.Source = source
	}
	return nil, fmt.Errorf("%w: %w", usheader.ErrInvalidConfig, err)
}

// Process validates raw, scans all artifacts for grants and prepends the
// header to every entry artifact.
//
// A validation failure aborts the build before any artifact is touched. The
// returned error matches usheader.ErrInvalidConfig and unwraps to
// *metadata.ValidationError.
func (p *Processor) Process(ctx context.Context, raw any, artifacts []usheader.Artifact) (*Result, error) {
	meta, err := ValidateConfig(raw, p.source)
	if err != nil {
		return nil, err
	}
	p.logger.Verbose("Validated metadata for %q", meta.Scalars.Name)

	script := userscript.New(meta)
	declared, _ := script.Grants()

	sources := make([]string, len(artifacts))
	for i, a := range artifacts {
		sources[i] = a.Code
	}

	merged, err := grants.Discover(ctx, p.scanner, sources, declared, p.concurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to discover grants: %w", err)
	}
	p.logger.Verbose("Scanned %d artifact(s): %d declared grant(s), %d after merge", len(artifacts), declared.Len(), merged.Len())

	script.SetGrants(merged)
	script.Freeze()
	header := script.Header()

	out := make([]usheader.Artifact, len(artifacts))
	entries := 0
	for i, a := range artifacts {
		if a.IsEntry {
			a.Code = Prepend(header, a.Code)
			entries++
			p.logger.Verbose("Prepended header to %s", a.ID)
		}
		out[i] = a
	}

	return &Result{
		Artifacts: out,
		Header:    header,
		Grants:    merged,
		Entries:   entries,
	}, nil
}

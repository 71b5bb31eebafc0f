package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/usheader/internal/bundle"
	"github.com/vvka-141/usheader/internal/checksum"
	"github.com/vvka-141/usheader/internal/config"
	"github.com/vvka-141/usheader/internal/files/filesystem"
	"github.com/vvka-141/usheader/internal/files/scanner"
	"github.com/vvka-141/usheader/internal/grants"
	"github.com/vvka-141/usheader/internal/metadata"
	"github.com/vvka-141/usheader/internal/sourcemap"
	"github.com/vvka-141/usheader/pkg/usheader"
)

var buildCmd = &cobra.Command{
	Use:   "build [dist]",
	Short: "Prepend the userscript header to every entry artifact",
	Long: `Validate the metadata in usheader.yaml, scan every generated file in the
output directory for GM_* calls and prepend the header to each entry artifact.

Entry artifacts are selected with build.entries (doublestar globs relative to
the output directory, default **/*.user.js). Shared chunks are scanned but
never rewritten. Headers written by an earlier run are replaced, files whose
content would not change are left alone and sibling .map files are shifted
by the number of lines the header adds.

Examples:
  usheader build                     # output directory from build.dist
  usheader build ./out --dry-run     # print the header, write nothing
  usheader build --entry "*.user.js" --entry "admin/*.js"`,
	Args: OptionalDist,
	RunE: runBuild,
}

// buildFlags holds the flag values of the build command.
var buildFlags struct {
	dryRun      bool
	entries     []string
	concurrency int
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().BoolVar(&buildFlags.dryRun, "dry-run", false, "Print the header and the files that would change without writing")
	buildCmd.Flags().StringArrayVar(&buildFlags.entries, "entry", nil, "Entry artifact glob, repeatable (overrides build.entries)")
	buildCmd.Flags().IntVar(&buildFlags.concurrency, "concurrency", 0, "Artifacts scanned at once (overrides build.concurrency)")
}

// buildOptions is the resolved input of one build.
type buildOptions struct {
	dist        string
	entries     []string
	concurrency int
	cacheSize   int
	sourceMaps  bool
	dryRun      bool
	verbose     bool
	source      string
}

// buildReport describes what a build did.
type buildReport struct {
	Header     string
	Grants     metadata.GrantSet
	Artifacts  int
	Entries    []string
	Written    []string
	Unchanged  []string
	SourceMaps []string
	CacheHits  int64
}

func runBuild(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	projectCfg, err := loadProjectConfig(cmd, logger)
	if err != nil {
		return err
	}

	opts := resolveBuildOptions(projectCfg, args)
	opts.verbose = logger.IsVerbose()

	report, err := executeBuild(commandContext(cmd), logger, filesystem.NewOSFileSystem(), projectCfg.Metadata, opts)
	if err != nil {
		return reportValidation(logger, err)
	}

	if opts.dryRun {
		out := cmd.OutOrStdout()
		styles := newStyles(out)
		fmt.Fprintln(out, styles.Header(report.Header))
		for _, id := range report.Entries {
			fmt.Fprintf(out, "%s %s\n", styles.Render(styles.Muted, "would write"), id)
		}
		return nil
	}

	styles := newStyles(cmd.ErrOrStderr())
	logger.Info("%s", styles.Check(fmt.Sprintf("Header applied to %d entry artifact(s) in %s (%d unchanged, %d artifact(s) scanned)",
		len(report.Written), opts.dist, len(report.Unchanged), report.Artifacts)))
	if report.Grants.Len() > 0 {
		logger.Info("  Grants: %s", strings.Join(report.Grants.Strings(), ", "))
	}
	for _, m := range report.SourceMaps {
		logger.Verbose("Shifted source map %s", m)
	}
	logger.Verbose("Grant scan cache: %d hit(s)", report.CacheHits)
	return nil
}

// resolveBuildOptions merges the config file with flags and arguments.
// Flags win over the file.
func resolveBuildOptions(projectCfg *config.ProjectConfig, args []string) buildOptions {
	opts := buildOptions{
		dist:        projectCfg.DistPath(),
		entries:     projectCfg.Build.Entries,
		concurrency: projectCfg.Build.Concurrency,
		cacheSize:   projectCfg.Build.CacheSize,
		sourceMaps:  projectCfg.SourceMapsEnabled(),
		dryRun:      buildFlags.dryRun,
		source:      projectCfg.Path(),
	}
	if len(args) == 1 {
		opts.dist = args[0]
	}
	if len(buildFlags.entries) > 0 {
		opts.entries = buildFlags.entries
	}
	if buildFlags.concurrency > 0 {
		opts.concurrency = buildFlags.concurrency
	}
	if opts.concurrency <= 0 {
		opts.concurrency = usheader.DefaultScanConcurrency
	}
	return opts
}

// executeBuild runs the whole build against fsProvider: validate the
// metadata, discover artifacts, strip stale headers, apply the new header and
// write what changed.
func executeBuild(ctx context.Context, logger usheader.Logger, fsProvider filesystem.FileSystemProvider, raw any, opts buildOptions) (*buildReport, error) {
	if _, err := bundle.ValidateConfig(raw, opts.source); err != nil {
		return nil, err
	}

	calc := checksum.New()

	artifactScanner, err := scanner.NewScannerWithFS(calc, fsProvider, opts.entries)
	if err != nil {
		return nil, err
	}
	scan, err := artifactScanner.ScanDirectory(opts.dist)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", opts.dist, err)
	}
	if usheader.Entries(scan.Artifacts()) == 0 {
		return nil, fmt.Errorf("%w in %s (%d artifact(s), entry patterns: %s)",
			usheader.ErrNoEntries, opts.dist, len(scan.Files), strings.Join(artifactScanner.EntryPatterns(), ", "))
	}

	oldPrefixLines := make([]int, len(scan.Files))
	artifacts := make([]usheader.Artifact, len(scan.Files))
	for i, f := range scan.Files {
		a := f.Artifact
		if a.IsEntry {
			if stripped, ok := bundle.StripHeader(a.Code); ok {
				oldPrefixLines[i] = sourcemap.LineOffset(a.Code[:len(a.Code)-len(stripped)])
				a.Code = stripped
				logger.Verbose("Replacing existing header in %s", a.ID)
			}
		}
		if opts.verbose {
			if ignored := grants.ScanDetailed(a.Code).Ignored; len(ignored) > 0 {
				logger.Verbose("%s: ignoring unknown grant-like call(s): %s", a.ID, strings.Join(ignored, ", "))
			}
		}
		artifacts[i] = a
	}

	cache, err := grants.NewCachingScanner(grants.Default, opts.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create scan cache: %w", err)
	}
	processor := bundle.NewProcessor(logger, cache, bundle.WithConcurrency(opts.concurrency), bundle.WithSource(opts.source))

	result, err := processor.Process(ctx, raw, artifacts)
	if err != nil {
		return nil, err
	}

	hits, _ := cache.Stats()
	report := &buildReport{
		Header:    result.Header,
		Grants:    result.Grants,
		Artifacts: len(artifacts),
		CacheHits: hits,
	}
	newPrefixLines := sourcemap.LineOffset(result.Header + usheader.HeaderSeparator)

	for i, a := range result.Artifacts {
		if !a.IsEntry {
			continue
		}
		file := scan.Files[i]
		report.Entries = append(report.Entries, a.ID)
		if opts.dryRun {
			continue
		}

		if calc.CalculateRaw([]byte(a.Code)) == file.Checksum {
			report.Unchanged = append(report.Unchanged, a.ID)
			logger.Verbose("Unchanged: %s", a.ID)
			continue
		}
		if err := fsProvider.WriteFile(file.Path, []byte(a.Code), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", file.Path, err)
		}
		report.Written = append(report.Written, a.ID)
		logger.Verbose("Wrote %s", a.ID)

		delta := newPrefixLines - oldPrefixLines[i]
		if !opts.sourceMaps || file.SourceMapPath == "" || delta == 0 {
			continue
		}
		if err := shiftSourceMap(fsProvider, file.SourceMapPath, delta); err != nil {
			return nil, err
		}
		report.SourceMaps = append(report.SourceMaps, file.SourceMapPath)
	}

	return report, nil
}

// shiftSourceMap rewrites the map at path so its mappings follow code that
// moved down by delta lines.
func shiftSourceMap(fsProvider filesystem.FileSystemProvider, path string, delta int) error {
	data, err := fsProvider.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read source map %s: %w", path, err)
	}
	shifted, err := sourcemap.Shift(data, delta)
	if err != nil {
		return fmt.Errorf("failed to shift source map %s: %w", path, err)
	}
	if err := fsProvider.WriteFile(path, shifted, 0o644); err != nil {
		return fmt.Errorf("failed to write source map %s: %w", path, err)
	}
	return nil
}

// commandContext returns the command's context, or Background when the
// command was not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

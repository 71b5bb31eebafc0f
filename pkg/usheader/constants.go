package usheader

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess       = 0  // Header generation completed successfully
	ExitGeneralError  = 1  // Unknown or unclassified error
	ExitUsageError    = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic         = 3  // Internal panic (unexpected crash or broken invariant)
	ExitConfigError   = 10 // Invalid configuration or userscript metadata
	ExitNoEntryOutput = 11 // The output directory contains no entry artifacts
)

const (
	// DefaultConfigFileName is the project configuration file looked up in the
	// working directory (or the directory passed to --config).
	DefaultConfigFileName = "usheader.yaml"

	// DefaultDistDir is the bundler output directory used when the config does
	// not name one.
	DefaultDistDir = "dist"

	// DefaultScanConcurrency bounds the number of artifacts scanned for grants
	// at the same time.
	DefaultScanConcurrency = 8

	// DefaultScanCacheSize is the number of scan results kept by the
	// content-addressed grant scan cache.
	DefaultScanCacheSize = 512

	// HeaderSeparator sits between the generated header and the original code
	// of an entry artifact.
	HeaderSeparator = "\n"

	// SourceMapExtension is appended to an artifact path to find its source map.
	SourceMapExtension = ".map"
)

// DefaultEntryPatterns selects entry artifacts when the config has no
// build.entries list. Bundlers emitting userscripts conventionally name the
// installable file *.user.js.
var DefaultEntryPatterns = []string{"**/*.user.js"}

// ArtifactExtensions lists the file extensions treated as generated code.
var ArtifactExtensions = []string{".js", ".mjs", ".cjs"}

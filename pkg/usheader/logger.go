package usheader

// Logger receives progress and diagnostics from the header pipeline.
// The pipeline may call it from several goroutines at once.
type Logger interface {
	// Verbose reports detail such as skipped files or ignored grant-like
	// calls. Implementations may drop it unless verbose output was asked for.
	Verbose(format string, args ...interface{})

	// Info reports the outcome of an operation.
	Info(format string, args ...interface{})

	// Error reports a failure the user must act on.
	Error(format string, args ...interface{})
}

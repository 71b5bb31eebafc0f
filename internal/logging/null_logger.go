package logging

// NullLogger drops every message. Library callers that do not want build
// diagnostics pass it to bundle.NewProcessor or scaffold.NewScaffolder.
type NullLogger struct{}

// NewNullLogger returns a logger that discards everything.
func NewNullLogger() *NullLogger { return &NullLogger{} }

func (*NullLogger) Verbose(string, ...interface{}) {}
func (*NullLogger) Info(string, ...interface{})    {}
func (*NullLogger) Error(string, ...interface{})   {}

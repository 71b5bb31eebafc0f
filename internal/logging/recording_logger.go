package logging

import (
	"fmt"
	"strings"
	"sync"
)

// Level identifies which Logger method produced a record.
type Level string

const (
	LevelVerbose Level = "verbose"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Record is one captured log message.
type Record struct {
	Level   Level
	Message string
}

// RecordingLogger keeps every message in memory.
// Safe for concurrent use by multiple goroutines.
type RecordingLogger struct {
	mu      sync.Mutex
	records []Record
}

// NewRecordingLogger creates an empty RecordingLogger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

// Verbose records a verbose message.
func (l *RecordingLogger) Verbose(format string, args ...interface{}) {
	l.add(LevelVerbose, format, args)
}

// Info records an informational message.
func (l *RecordingLogger) Info(format string, args ...interface{}) {
	l.add(LevelInfo, format, args)
}

// Error records an error message.
func (l *RecordingLogger) Error(format string, args ...interface{}) {
	l.add(LevelError, format, args)
}

func (l *RecordingLogger) add(level Level, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	l.mu.Lock()
	l.records = append(l.records, Record{Level: level, Message: msg})
	l.mu.Unlock()
}

// Records returns a copy of the captured messages in arrival order.
func (l *RecordingLogger) Records() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Contains reports whether any message at level contains substr.
func (l *RecordingLogger) Contains(level Level, substr string) bool {
	for _, r := range l.Records() {
		if r.Level == level && strings.Contains(r.Message, substr) {
			return true
		}
	}
	return false
}

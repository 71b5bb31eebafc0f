package usheader_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vvka-141/usheader/pkg/usheader"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, usheader.ExitSuccess},
		{"invalid config", usheader.ErrInvalidConfig, usheader.ExitConfigError},
		{"wrapped invalid config", fmt.Errorf("usheader.yaml: %w", usheader.ErrInvalidConfig), usheader.ExitConfigError},
		{"config not found", usheader.ErrConfigNotFound, usheader.ExitConfigError},
		{"no entries", usheader.ErrNoEntries, usheader.ExitNoEntryOutput},
		{"usage sentinel", usheader.ErrUsage, usheader.ExitUsageError},
		{"unknown flag", errors.New("unknown flag: --foo"), usheader.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x' in -x"), usheader.ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 0"), usheader.ExitUsageError},
		{"general error", errors.New("something went wrong"), usheader.ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := usheader.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/usheader/pkg/usheader"
)

func TestRequireScriptName(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "missing", args: nil, wantErr: "missing required argument: <name>"},
		{name: "name only", args: []string{"My Script"}},
		{name: "name and dir", args: []string{"My Script", "./dir"}},
		{name: "too many", args: []string{"a", "b", "c"}, wantErr: "accepts between 1 and 2 arg(s), received 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireScriptName(initCmd, tt.args)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, usheader.ExitUsageError, usheader.ExitCodeForError(err))
		})
	}
}

func TestRequireScriptName_ShowsUsage(t *testing.T) {
	err := RequireScriptName(initCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), initCmd.UseLine())
	assert.Contains(t, err.Error(), "Example:")
}

func TestRequireSourceFiles(t *testing.T) {
	err := RequireSourceFiles(grantsCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required argument: <file>")
	assert.Equal(t, usheader.ExitUsageError, usheader.ExitCodeForError(err))

	assert.NoError(t, RequireSourceFiles(grantsCmd, []string{"a.js", "b.js"}))
}

func TestOptionalDist(t *testing.T) {
	assert.NoError(t, OptionalDist(buildCmd, nil))
	assert.NoError(t, OptionalDist(buildCmd, []string{"dist"}))

	err := OptionalDist(buildCmd, []string{"a", "b"})
	require.Error(t, err)
	assert.Equal(t, usheader.ExitUsageError, usheader.ExitCodeForError(err))
}

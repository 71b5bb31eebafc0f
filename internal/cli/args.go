package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireScriptName validates the <name> [dir] arguments of init.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireScriptName(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <name>

Usage: %s

Example:
  %s "My Script" ./my-script

Use --template to pick a starter (usheader init --help lists them).`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 2 {
		return fmt.Errorf("accepts between 1 and 2 arg(s), received %d", len(args))
	}
	return nil
}

// RequireSourceFiles validates that at least one file argument is provided.
func RequireSourceFiles(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <file>

Usage: %s

Example:
  %s dist/main.user.js dist/chunk-1.js`, cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}

// OptionalDist validates the optional [dist] argument of build.
func OptionalDist(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("accepts at most 1 arg(s), received %d", len(args))
	}
	return nil
}

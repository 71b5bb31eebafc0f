package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/usheader/internal/bundle"
	"github.com/vvka-141/usheader/internal/grants"
	"github.com/vvka-141/usheader/internal/metadata"
	"github.com/vvka-141/usheader/internal/tui"
)

var grantsCmd = &cobra.Command{
	Use:   "grants <file>...",
	Short: "List the grants used by source files",
	Long: `Scan source files for GM_* calls and list the grants each one needs.

Calls that look like grants but are not recognized are reported separately;
they never reach a header.

Examples:
  usheader grants dist/main.user.js
  usheader grants dist/*.js --json
  usheader grants --known          # list every recognized grant`,
	Args: func(cmd *cobra.Command, args []string) error {
		if grantsKnown {
			return nil
		}
		return RequireSourceFiles(cmd, args)
	},
	RunE: runGrants,
}

var (
	grantsJSON  bool
	grantsKnown bool
)

func init() {
	rootCmd.AddCommand(grantsCmd)

	grantsCmd.Flags().BoolVar(&grantsJSON, "json", false, "Output results as JSON")
	grantsCmd.Flags().BoolVar(&grantsKnown, "known", false, "List the recognized grant vocabulary")
}

// fileGrants is the scan result of one file.
type fileGrants struct {
	File    string   `json:"file"`
	Grants  []string `json:"grants"`
	Ignored []string `json:"ignored,omitempty"`
}

func runGrants(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if grantsKnown {
		return printKnownGrants(out)
	}

	results := make([]fileGrants, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		code, _ := bundle.StripHeader(string(data))
		scan := grants.ScanDetailed(code)
		results = append(results, fileGrants{
			File:    path,
			Grants:  scan.Grants.Strings(),
			Ignored: scan.Ignored,
		})
	}

	if grantsJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	styles := newStyles(out)
	for _, r := range results {
		fmt.Fprintln(out, styles.Render(styles.Path, r.File))
		if len(r.Grants) == 0 {
			fmt.Fprintf(out, "  %s\n", styles.Render(styles.Muted, "(no grants)"))
		}
		for _, g := range r.Grants {
			fmt.Fprintf(out, "  %s %s\n", tui.SymbolBullet, g)
		}
		for _, g := range r.Ignored {
			fmt.Fprintf(out, "  %s\n", styles.Render(styles.Warning, "ignored: "+g))
		}
	}
	return nil
}

// printKnownGrants lists the vocabulary in columns sized to the terminal.
func printKnownGrants(out io.Writer) error {
	if grantsJSON {
		data, err := json.MarshalIndent(metadata.Grants(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	vocabulary := metadata.Grants()
	width := 0
	for _, g := range vocabulary {
		width = max(width, len(g))
	}
	width += 2

	perLine := max(1, tui.TerminalWidth(out, 80)/width)
	var line strings.Builder
	for i, g := range vocabulary {
		fmt.Fprintf(&line, "%-*s", width, g)
		if (i+1)%perLine == 0 || i == len(vocabulary)-1 {
			fmt.Fprintln(out, strings.TrimRight(line.String(), " "))
			line.Reset()
		}
	}
	return nil
}

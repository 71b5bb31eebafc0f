package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/usheader/internal/bundle"
	"github.com/vvka-141/usheader/internal/grants"
	"github.com/vvka-141/usheader/internal/userscript"
	"github.com/vvka-141/usheader/pkg/usheader"
)

var headerCmd = &cobra.Command{
	Use:   "header",
	Short: "Print the userscript header for the current configuration",
	Long: `Render the metadata in usheader.yaml as a userscript header and print it.

Without --scan the header carries only the grants declared in the config.
Each --scan file is searched for GM_* calls and the grants it uses are added.

Examples:
  usheader header
  usheader header --scan dist/main.user.js --scan dist/chunk-1.js
  usheader header -c ./packages/admin`,
	Args: cobra.NoArgs,
	RunE: runHeader,
}

var headerScan []string

func init() {
	rootCmd.AddCommand(headerCmd)

	headerCmd.Flags().StringArrayVar(&headerScan, "scan", nil, "Source file to scan for grants, repeatable")
}

func runHeader(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	projectCfg, err := loadProjectConfig(cmd, logger)
	if err != nil {
		return err
	}

	artifacts := make([]usheader.Artifact, 0, len(headerScan))
	for _, path := range headerScan {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		code, _ := bundle.StripHeader(string(data))
		if ignored := grants.ScanDetailed(code).Ignored; len(ignored) > 0 {
			logger.Verbose("%s: ignoring unknown grant-like call(s): %s", path, strings.Join(ignored, ", "))
		}
		artifacts = append(artifacts, usheader.Artifact{ID: path, Code: code})
	}

	processor := bundle.NewProcessor(logger, grants.Default, bundle.WithSource(projectCfg.Path()))
	result, err := processor.Process(commandContext(cmd), projectCfg.Metadata, artifacts)
	if err != nil {
		return reportValidation(logger, err)
	}

	logger.Verbose("Header keys: %s", strings.Join(userscript.Keys(result.Header), ", "))

	out := cmd.OutOrStdout()
	fmt.Fprint(out, newStyles(out).Header(result.Header))
	return nil
}

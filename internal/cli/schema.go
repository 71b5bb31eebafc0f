package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/usheader/internal/metadata"
	"github.com/vvka-141/usheader/pkg/usheader"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the metadata section",
	Long: `Print the JSON Schema describing the metadata section of usheader.yaml.
Point your editor's YAML language server at it for completion and inline
errors.

With --check the metadata of the current configuration is validated against
the schema instead.

Examples:
  usheader schema > usheader.schema.json
  usheader schema --check -c ./packages/admin`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

var schemaCheck bool

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().BoolVar(&schemaCheck, "check", false, "Validate the configuration against the schema")
}

func runSchema(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if !schemaCheck {
		_, err := out.Write(metadata.Schema())
		return err
	}

	logger := newLogger(cmd)
	projectCfg, err := loadProjectConfig(cmd, logger)
	if err != nil {
		return err
	}
	if err := metadata.CheckSchema(projectCfg.Metadata); err != nil {
		return fmt.Errorf("%w: %s does not match %s: %w", usheader.ErrInvalidConfig, projectCfg.Path(), metadata.SchemaURL, err)
	}

	fmt.Fprintln(out, newStyles(out).Check(fmt.Sprintf("Metadata in %s matches the schema", projectCfg.Path())))
	return nil
}

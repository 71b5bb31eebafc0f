package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/usheader/internal/metadata"
	"github.com/vvka-141/usheader/pkg/usheader"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the userscript metadata in usheader.yaml",
	Long: `Validate the metadata section of usheader.yaml without touching any build
output. Every problem is reported with its field path and a hint.

Examples:
  usheader validate
  usheader validate -c ./packages/admin/usheader.yaml
  usheader validate --json | jq '.issues'`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

var validateJSON bool

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output results as JSON")
}

// validateIssue is the JSON form of metadata.Issue.
type validateIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// validateReport is the JSON output of validate.
type validateReport struct {
	Config   string          `json:"config"`
	Valid    bool            `json:"valid"`
	Issues   []validateIssue `json:"issues"`
	Metadata map[string]any  `json:"metadata,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	projectCfg, err := loadProjectConfig(cmd, logger)
	if err != nil {
		return err
	}

	meta, verr := metadata.Validate(projectCfg.Metadata)

	report := validateReport{
		Config: projectCfg.Path(),
		Valid:  verr == nil,
		Issues: []validateIssue{},
	}
	var validationErr *metadata.ValidationError
	if errors.As(verr, &validationErr) {
		validationErr.Source = projectCfg.Path()
		for _, issue := range validationErr.Issues {
			report.Issues = append(report.Issues, validateIssue{
				Path:    issue.QualifiedPath(),
				Message: issue.Message,
				Hint:    issue.Hint,
			})
		}
	} else if verr != nil {
		return verr
	}
	if meta != nil {
		report.Metadata = meta.Summary()
	}

	out := cmd.OutOrStdout()
	if validateJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else {
		styles := newStyles(out)
		if report.Valid {
			fmt.Fprintln(out, styles.Check(fmt.Sprintf("Metadata in %s is valid", report.Config)))
			logger.Verbose("Script %q with %d declared grant(s)", meta.Scalars.Name, meta.Sets.Grants.Len())
		} else {
			fmt.Fprintln(out, styles.Cross(fmt.Sprintf("Metadata in %s has %d issue(s):", report.Config, len(report.Issues))))
			for i, issue := range report.Issues {
				fmt.Fprintf(out, "  %d. %s: %s\n", i+1, styles.Render(styles.Key, issue.Path), issue.Message)
				if issue.Hint != "" {
					fmt.Fprintf(out, "     %s\n", styles.Render(styles.Muted, "Hint: "+issue.Hint))
				}
			}
		}
	}

	if verr != nil {
		return fmt.Errorf("%w: %w", usheader.ErrInvalidConfig, verr)
	}
	return nil
}

package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vvka-141/usheader/internal/scaffold"
	"github.com/vvka-141/usheader/pkg/usheader"
)

var initCmd = &cobra.Command{
	Use:   "init <name> [dir]",
	Short: "Create a starter usheader.yaml",
	Long: `Write a usheader.yaml for a new userscript into dir (default: current
directory). The @namespace is derived from the name, so running init twice
with the same name yields the same namespace.

An existing usheader.yaml is never overwritten unless --force is given.

Available templates:
  basic  - name, namespace, version and a match pattern
  full   - localized name, declared grants, resources, build settings and .env.example

Examples:
  usheader init "My Script"
  usheader init "My Script" ./my-script --template full
  usheader init --list`,
	Args: func(cmd *cobra.Command, args []string) error {
		if initList {
			return nil
		}
		return RequireScriptName(cmd, args)
	},
	RunE: runInit,
}

var (
	initTemplate string
	initDist     string
	initForce    bool
	initList     bool
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&initTemplate, "template", "t", scaffold.DefaultTemplate, "Template to use (basic, full)")
	initCmd.Flags().StringVar(&initDist, "dist", usheader.DefaultDistDir, "Bundler output directory written to build.dist")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing usheader.yaml")
	initCmd.Flags().BoolVar(&initList, "list", false, "List available templates")
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if initList {
		templates, err := scaffold.ListTemplates()
		if err != nil {
			return fmt.Errorf("failed to list templates: %w", err)
		}
		for _, t := range templates {
			fmt.Fprintln(out, t)
		}
		return nil
	}

	name := args[0]
	targetPath := "."
	if len(args) == 2 {
		targetPath = args[1]
	}

	logger := newLogger(cmd)
	scaffolder := scaffold.NewScaffolder(logger)

	written, err := scaffolder.CreateProject(targetPath, scaffold.Options{
		Name:     name,
		Template: initTemplate,
		Dist:     initDist,
		Force:    initForce,
	})
	if err != nil {
		if errors.Is(err, scaffold.ErrConfigExists) {
			return fmt.Errorf("%w: %w", usheader.ErrUsage, err)
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	styles := newStyles(out)
	fmt.Fprintln(out, styles.Check(fmt.Sprintf("Initialized '%s' using template '%s'", name, initTemplate)))
	for _, path := range written {
		fmt.Fprintf(out, "  %s\n", styles.Render(styles.Path, path))
	}

	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintf(out, "  edit %s\n", filepath.Join(targetPath, usheader.DefaultConfigFileName))
	if targetPath != "." {
		fmt.Fprintf(out, "  cd %s\n", targetPath)
	}
	fmt.Fprintln(out, "  usheader build --dry-run")
	return nil
}

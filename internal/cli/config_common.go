package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/usheader/internal/config"
	"github.com/vvka-141/usheader/internal/logging"
	"github.com/vvka-141/usheader/internal/metadata"
	"github.com/vvka-141/usheader/internal/tui"
	"github.com/vvka-141/usheader/pkg/usheader"
)

// resolveConfigPath turns the --config value into a config file path. An
// empty value or a directory selects usheader.yaml inside it.
func resolveConfigPath(flagValue string) string {
	if flagValue == "" {
		return config.ConfigFileName
	}
	if info, err := os.Stat(flagValue); err == nil && info.IsDir() {
		return filepath.Join(flagValue, config.ConfigFileName)
	}
	return flagValue
}

// loadProjectConfig loads .env from the config directory, then the project
// configuration. Variables already present in the environment win over .env.
func loadProjectConfig(cmd *cobra.Command, logger usheader.Logger) (*config.ProjectConfig, error) {
	path := resolveConfigPath(getConfigFlag(cmd))

	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envPath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envPath, err)
		}
	} else {
		logger.Verbose("Loaded environment from %s", envPath)
	}

	projectCfg, err := config.LoadFile(path)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w\n\nRun 'usheader init <name>' to create one", err)
		}
		return nil, fmt.Errorf("%w: %w", usheader.ErrInvalidConfig, err)
	}
	logger.Verbose("Loaded configuration from %s", projectCfg.Path())
	return projectCfg, nil
}

// reportValidation logs every issue of a metadata validation failure.
// The error is returned unchanged.
func reportValidation(logger usheader.Logger, err error) error {
	var verr *metadata.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	logger.Error("%s", strings.TrimRight(verr.Detail(), "\n"))
	return err
}

// newLogger writes diagnostics to the command's error stream.
func newLogger(cmd *cobra.Command) *logging.ConsoleLogger {
	return logging.NewWriterLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
}

// newStyles styles output written to w.
func newStyles(w io.Writer) *tui.Styles {
	return tui.NewStyles(tui.ColorEnabled(w))
}

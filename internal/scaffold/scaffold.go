// Package scaffold writes starter usheader configurations from embedded
// templates.
package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/usheader/internal/config"
	"github.com/vvka-141/usheader/internal/files/filesystem"
	"github.com/vvka-141/usheader/internal/metadata"
	"github.com/vvka-141/usheader/pkg/usheader"
)

//go:embed all:templates
var templatesFS embed.FS

// DefaultTemplate is used when no template is named.
const DefaultTemplate = "basic"

// ErrConfigExists is returned when the target already holds a config file.
var ErrConfigExists = errors.New("config file already exists")

// Options describes the project to create.
type Options struct {
	// Name is the script name written to metadata.name.
	Name string
	// Template selects the embedded template; DefaultTemplate when empty.
	Template string
	// Dist is the bundler output directory; usheader.DefaultDistDir when empty.
	Dist string
	// Force overwrites existing files.
	Force bool
}

// Scaffolder handles project initialization from templates.
type Scaffolder struct {
	logger usheader.Logger
	fs     filesystem.FileSystemProvider
}

// NewScaffolder creates a Scaffolder writing to the OS filesystem.
func NewScaffolder(logger usheader.Logger) *Scaffolder {
	return NewScaffolderWithFS(logger, filesystem.NewOSFileSystem())
}

// NewScaffolderWithFS creates a Scaffolder writing through fsProvider.
// Panics if logger or fsProvider is nil.
func NewScaffolderWithFS(logger usheader.Logger, fsProvider filesystem.FileSystemProvider) *Scaffolder {
	if logger == nil {
		panic("logger cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scaffolder{logger: logger, fs: fsProvider}
}

// CreateProject writes the files of the selected template into targetPath
// and returns their paths. It refuses to overwrite an existing config unless
// opts.Force is set. The generated config is validated before anything is
// written.
func (s *Scaffolder) CreateProject(targetPath string, opts Options) ([]string, error) {
	if strings.TrimSpace(opts.Name) == "" {
		return nil, fmt.Errorf("%w: script name must not be empty", usheader.ErrUsage)
	}
	if opts.Template == "" {
		opts.Template = DefaultTemplate
	}
	if opts.Dist == "" {
		opts.Dist = usheader.DefaultDistDir
	}

	templatePath := path.Join("templates", opts.Template)
	if _, err := fs.ReadDir(templatesFS, templatePath); err != nil {
		available, _ := ListTemplates()
		return nil, fmt.Errorf("%w: template '%s' not found (available: %s)", usheader.ErrUsage, opts.Template, strings.Join(available, ", "))
	}

	configPath := filepath.Join(targetPath, config.ConfigFileName)
	if _, err := s.fs.Stat(configPath); err == nil && !opts.Force {
		return nil, fmt.Errorf("%w: %s\n\nUse --force to overwrite it", ErrConfigExists, configPath)
	}

	vars, err := templateVars(opts)
	if err != nil {
		return nil, err
	}

	files, err := renderTemplate(templatePath, vars)
	if err != nil {
		return nil, err
	}
	if err := checkGeneratedConfig(files[config.ConfigFileName]); err != nil {
		return nil, err
	}

	s.logger.Verbose("Creating '%s' at %s with template '%s'", opts.Name, targetPath, opts.Template)

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	written := make([]string, 0, len(names))
	for _, name := range names {
		target := filepath.Join(targetPath, filepath.FromSlash(name))
		if _, err := s.fs.Stat(target); err == nil && !opts.Force && name != config.ConfigFileName {
			s.logger.Verbose("Skipping existing file: %s", name)
			continue
		}
		if err := s.fs.WriteFile(target, files[name], 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", target, err)
		}
		s.logger.Verbose("Created file: %s", name)
		written = append(written, target)
	}
	return written, nil
}

// ListTemplates returns available template names.
func ListTemplates() ([]string, error) {
	entries, err := templatesFS.ReadDir("templates")
	if err != nil {
		return nil, err
	}

	var templates []string
	for _, entry := range entries {
		if entry.IsDir() {
			templates = append(templates, entry.Name())
		}
	}
	return templates, nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns a script name into a file name stem.
func Slug(name string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if slug == "" {
		return "userscript"
	}
	return slug
}

func templateVars(opts Options) (map[string]string, error) {
	name, err := yamlScalar(opts.Name)
	if err != nil {
		return nil, err
	}
	description, err := yamlScalar(opts.Name + " userscript")
	if err != nil {
		return nil, err
	}
	dist, err := yamlScalar(filepath.ToSlash(opts.Dist))
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"{{PROJECT_NAME}}": name,
		"{{DESCRIPTION}}":  description,
		"{{NAMESPACE}}":    metadata.NamespaceFor(opts.Name),
		"{{DIST}}":         dist,
		"{{SLUG}}":         Slug(opts.Name),
	}, nil
}

// yamlScalar encodes s as a single-line YAML scalar, quoting when needed.
func yamlScalar(s string) (string, error) {
	node := yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	if strings.ContainsAny(s, "\n\r") {
		node.Style = yaml.DoubleQuotedStyle
	}
	out, err := yaml.Marshal(&node)
	if err != nil {
		return "", fmt.Errorf("failed to encode %q: %w", s, err)
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}

func renderTemplate(templatePath string, vars map[string]string) (map[string][]byte, error) {
	files := make(map[string][]byte)
	err := fs.WalkDir(templatesFS, templatePath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		content, err := templatesFS.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", p, err)
		}
		text := string(content)
		for k, v := range vars {
			text = strings.ReplaceAll(text, k, v)
		}
		files[strings.TrimPrefix(p, templatePath+"/")] = []byte(text)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}
	if _, ok := files[config.ConfigFileName]; !ok {
		return nil, fmt.Errorf("template %s has no %s", templatePath, config.ConfigFileName)
	}
	return files, nil
}

// checkGeneratedConfig parses the rendered config and validates its
// metadata, with ${VAR} references replaced by placeholder URLs.
func checkGeneratedConfig(data []byte) error {
	cfg, err := config.Parse(data)
	if err != nil {
		return fmt.Errorf("generated config is not valid YAML: %w", err)
	}
	raw := config.ExpandEnv(cfg.Metadata, func(string) (string, bool) {
		return "https://example.com", true
	})
	if _, err := metadata.Validate(raw); err != nil {
		return fmt.Errorf("generated config is invalid: %w", err)
	}
	return nil
}

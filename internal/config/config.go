// Package config loads the usheader.yaml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/usheader/pkg/usheader"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = usheader.ErrConfigNotFound

// ConfigFileName is the file Load looks for.
const ConfigFileName = usheader.DefaultConfigFileName

// BuildConfig controls how the build command finds and rewrites artifacts.
type BuildConfig struct {
	Dist        string   `yaml:"dist,omitempty"`
	Entries     []string `yaml:"entries,omitempty"`
	Concurrency int      `yaml:"concurrency,omitempty"`
	CacheSize   int      `yaml:"cacheSize,omitempty"`
	SourceMaps  *bool    `yaml:"sourcemaps,omitempty"`
}

// ProjectConfig is the parsed project file. Metadata is kept loosely typed;
// internal/metadata validates it.
type ProjectConfig struct {
	Metadata map[string]any `yaml:"metadata"`
	Build    BuildConfig    `yaml:"build,omitempty"`

	path string
}

// Load reads ConfigFileName from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads the config file at path. String values under metadata have
// ${VAR} references replaced from the process environment.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, err
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.Metadata = ExpandEnv(cfg.Metadata, os.LookupEnv).(map[string]any)

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	cfg.path = abs
	return cfg, nil
}

// Parse decodes a config document without touching the environment.
// JSON documents are accepted since JSON is valid YAML.
func Parse(data []byte) (*ProjectConfig, error) {
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Metadata == nil {
		cfg.Metadata = map[string]any{}
	}
	return &cfg, nil
}

// Path returns the absolute path of the loaded file, or "" for parsed configs.
func (c *ProjectConfig) Path() string {
	return c.path
}

// Dir returns the directory holding the config file.
func (c *ProjectConfig) Dir() string {
	if c.path == "" {
		return "."
	}
	return filepath.Dir(c.path)
}

// DistPath resolves build.dist relative to the config file.
func (c *ProjectConfig) DistPath() string {
	dist := c.Build.Dist
	if dist == "" {
		dist = usheader.DefaultDistDir
	}
	if filepath.IsAbs(dist) {
		return filepath.Clean(dist)
	}
	return filepath.Join(c.Dir(), dist)
}

// SourceMapsEnabled reports whether sibling source maps are shifted. It
// defaults to true.
func (c *ProjectConfig) SourceMapsEnabled() bool {
	return c.Build.SourceMaps == nil || *c.Build.SourceMaps
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandEnv returns a copy of v with ${VAR} references in every string
// replaced using lookup. Unset variables expand to the empty string. Map
// keys are left untouched.
func ExpandEnv(v any, lookup func(string) (string, bool)) any {
	switch t := v.(type) {
	case string:
		return envRef.ReplaceAllStringFunc(t, func(ref string) string {
			value, _ := lookup(envRef.FindStringSubmatch(ref)[1])
			return value
		})
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = ExpandEnv(item, lookup)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = ExpandEnv(item, lookup)
		}
		return out
	default:
		return v
	}
}

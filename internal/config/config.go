// Package config loads the refdoc.yaml site description, applies defaults
// and validates it before generation starts.
package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/refdoc/internal/foundation/errors"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "refdoc.yaml"

// Config describes one documentation site. A plain config.json with only
// page_groups and external_refs is accepted too, since YAML reads JSON.
type Config struct {
	SourceDir    string            `yaml:"source_dir"`
	OutputDir    string            `yaml:"output_dir"`
	Template     string            `yaml:"template,omitempty"`
	Doclets      string            `yaml:"doclets"`
	PageGroups   []PageGroup       `yaml:"page_groups"`
	ExternalRefs map[string]string `yaml:"external_refs,omitempty"`
	VerifyLinks  bool              `yaml:"verify_links,omitempty"`
	MetricsFile  string            `yaml:"metrics_file,omitempty"`
	Manifest     string            `yaml:"manifest,omitempty"`
	Watch        WatchConfig       `yaml:"watch,omitempty"`

	// baseDir anchors relative paths; it is the config file's directory.
	baseDir string
}

// PageGroup is a titled navigation section listing hand-written pages.
type PageGroup struct {
	Name  string `yaml:"name"`
	Pages []Page `yaml:"pages"`
}

// Page is a navigation entry. An http(s) URL makes it link-only; anything
// else names a file in the source directory.
type Page struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// WatchConfig tunes `refdoc watch`. Durations use time.ParseDuration syntax.
type WatchConfig struct {
	Debounce      string `yaml:"debounce,omitempty"`
	Interval      string `yaml:"interval,omitempty"` // empty disables periodic rebuilds
	MetricsListen string `yaml:"metrics_listen,omitempty"`
}

// Load reads, expands, defaults and validates the configuration at path.
// Environment files are loaded first so ${VAR} references can use them.
func Load(path string) (*Config, error) {
	if name, err := loadEnvFile(); err == nil {
		slog.Debug("Loaded environment file", slog.String("file", name))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").
				WithCause(err).
				WithContext("path", path).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			Fatal().
			WithContext("path", path).
			Build()
	}

	cfg, err := Parse(data, filepath.Dir(path))
	if err != nil {
		if classified, ok := errors.AsClassified(err); ok {
			return nil, classified.WithContext("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes configuration text. Relative paths resolve against baseDir.
func Parse(data []byte, baseDir string) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").
			Fatal().
			UserAction().
			Build()
	}
	cfg.baseDir = baseDir

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Resolve makes p absolute-or-relative to the config file's directory.
func (c *Config) Resolve(p string) string {
	if p == "" || p == "-" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.baseDir, p)
}

func (c *Config) SourcePath() string   { return c.Resolve(c.SourceDir) }
func (c *Config) OutputPath() string   { return c.Resolve(c.OutputDir) }
func (c *Config) TemplatePath() string { return c.Resolve(c.Template) }
func (c *Config) DocletsPath() string  { return c.Resolve(c.Doclets) }

// BaseDir is the directory relative paths are anchored to.
func (c *Config) BaseDir() string { return c.baseDir }

package config

import "path/filepath"

const (
	defaultSourceDir    = "source"
	defaultOutputDir    = "site"
	defaultTemplateName = "Template.html"
	defaultDoclets      = "doclets.json"
	defaultDebounce     = "300ms"
)

func applyDefaults(cfg *Config) {
	if cfg.SourceDir == "" {
		cfg.SourceDir = defaultSourceDir
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = defaultOutputDir
	}
	if cfg.Template == "" {
		cfg.Template = filepath.Join(cfg.SourceDir, defaultTemplateName)
	}
	if cfg.Doclets == "" {
		cfg.Doclets = defaultDoclets
	}
	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = defaultDebounce
	}
}

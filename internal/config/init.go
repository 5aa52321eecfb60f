package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/refdoc/internal/foundation/errors"
)

// Init writes an example configuration file to path.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}

	example := Config{
		SourceDir: defaultSourceDir,
		OutputDir: defaultOutputDir,
		Doclets:   defaultDoclets,
		PageGroups: []PageGroup{
			{
				Name: "Getting Started",
				Pages: []Page{
					{Name: "Home", URL: "index.html"},
					{Name: "Usage", URL: "usage.md"},
				},
			},
			{
				Name:  "Links",
				Pages: []Page{{Name: "GitHub", URL: "https://github.com/example/project"}},
			},
		},
		ExternalRefs: map[string]string{
			"Promise": "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Global_Objects/Promise",
		},
		VerifyLinks: true,
		Watch:       WatchConfig{Debounce: defaultDebounce},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Fatal().Build()
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return nil
}

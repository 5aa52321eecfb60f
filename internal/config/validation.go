package config

import (
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/refdoc/internal/foundation/errors"
)

// Validate checks the structural rules generation depends on. Name clashes
// between pages, entities and external refs are left to the registry.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validatePageGroups(); err != nil {
		return err
	}
	if err := c.validateExternalRefs(); err != nil {
		return err
	}
	return c.validateWatch()
}

func (c *Config) validatePaths() error {
	if filepath.Clean(c.SourcePath()) == filepath.Clean(c.OutputPath()) {
		return errors.ConfigError("output_dir must differ from source_dir").
			WithContext("output_dir", c.OutputDir).
			Build()
	}
	return nil
}

func (c *Config) validatePageGroups() error {
	for i, group := range c.PageGroups {
		if strings.TrimSpace(group.Name) == "" {
			return errors.ConfigError("page group name cannot be empty").
				WithContext("index", i).
				Build()
		}
		for _, page := range group.Pages {
			if page.Name == "" || page.URL == "" {
				return errors.ConfigError("page requires name and url").
					WithContext("group", group.Name).
					WithContext("page", page.Name).
					Build()
			}
			if isExternal(page.URL) {
				continue
			}
			if filepath.Base(page.URL) != page.URL || page.URL == ".." {
				return errors.ConfigError("page url must be a file name in source_dir").
					WithContext("group", group.Name).
					WithContext("page", page.Name).
					WithContext("url", page.URL).
					Build()
			}
		}
	}
	return nil
}

func (c *Config) validateExternalRefs() error {
	for name, url := range c.ExternalRefs {
		if name == "" || url == "" {
			return errors.ConfigError("external ref requires name and url").
				WithContext("name", name).
				Build()
		}
	}
	return nil
}

func (c *Config) validateWatch() error {
	debounce, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || debounce < 0 {
		return errors.ConfigError("invalid watch.debounce").
			WithContext("value", c.Watch.Debounce).
			Build()
	}
	if c.Watch.Interval != "" {
		interval, err := time.ParseDuration(c.Watch.Interval)
		if err != nil || interval <= 0 {
			return errors.ConfigError("invalid watch.interval").
				WithContext("value", c.Watch.Interval).
				Build()
		}
	}
	return nil
}

// DebounceDuration is the parsed watch.debounce. Validate guarantees it parses.
func (w WatchConfig) DebounceDuration() time.Duration {
	d, _ := time.ParseDuration(w.Debounce)
	return d
}

// IntervalDuration is the parsed watch.interval, zero when unset.
func (w WatchConfig) IntervalDuration() time.Duration {
	if w.Interval == "" {
		return 0
	}
	d, _ := time.ParseDuration(w.Interval)
	return d
}

func isExternal(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

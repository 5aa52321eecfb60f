// Package commands holds the refdoc subcommands.
package commands

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/refdoc/internal/config"
	"git.home.luguber.info/inful/refdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/refdoc/internal/metrics"
)

// Global is shared state passed to every subcommand.
type Global struct {
	Logger  *slog.Logger
	Context context.Context
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"refdoc.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" default:"withargs" help:"Generate the reference site from doclets"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
	Verify   VerifyCmd   `cmd:"" help:"Check relative links in a generated site"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate the site whenever its inputs change"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	if g != nil {
		g.Logger = logger
	}
	return nil
}

// Overrides replace config paths for a single run. Paths are relative to the
// working directory.
type Overrides struct {
	Output  string `short:"o" help:"Output directory (overrides output_dir)"`
	Doclets string `short:"d" help:"Doclets JSON file, - for stdin (overrides doclets)"`
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(path string, o Overrides) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if o.Output != "" {
		if cfg.OutputDir, err = absPath(o.Output); err != nil {
			return nil, err
		}
	}
	if o.Doclets != "" {
		cfg.Doclets = o.Doclets
		if o.Doclets != "-" {
			if cfg.Doclets, err = absPath(o.Doclets); err != nil {
				return nil, err
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func absPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryConfig, "invalid path").
			WithContext("path", p).
			Build()
	}
	return abs, nil
}

func contextOf(g *Global) context.Context {
	if g == nil || g.Context == nil {
		return context.Background()
	}
	return g.Context
}

func loggerOf(g *Global) *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// newRecorder returns a Prometheus recorder when metrics are exported,
// otherwise a no-op recorder.
func newRecorder(export bool) (metrics.Recorder, *metrics.PrometheusRecorder) {
	if !export {
		return metrics.NoopRecorder{}, nil
	}
	prom := metrics.NewPrometheusRecorder(nil)
	return prom, prom
}

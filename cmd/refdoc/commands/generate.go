package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/refdoc/internal/build"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Overrides `embed:""`

	Verify      bool   `help:"Check relative links after generation"`
	Strict      bool   `help:"Fail when links are broken (implies --verify)"`
	Manifest    string `help:"Write a JSON manifest of the run to this path"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in text format to this path"`
}

func (g *GenerateCmd) Run(global *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config, g.Overrides)
	if err != nil {
		return err
	}

	recorder, _ := newRecorder(g.MetricsFile != "" || cfg.MetricsFile != "")
	svc := build.NewBuildService().WithRecorder(recorder).WithLogger(loggerOf(global))

	result, err := svc.Run(contextOf(global), build.BuildRequest{
		Config:     cfg,
		ConfigPath: root.Config,
		Options: build.BuildOptions{
			VerifyLinks:  g.Verify || g.Strict,
			StrictLinks:  g.Strict,
			ManifestPath: g.Manifest,
			MetricsFile:  g.MetricsFile,
		},
	})
	if err != nil {
		return err
	}

	loggerOf(global).Info("Generation complete",
		slog.String("status", string(result.Status)),
		slog.Int("files", len(result.Generation.Files)),
		slog.Int("dropped", len(result.Generation.Dropped)),
		slog.Duration("duration", result.Duration))
	fmt.Printf("Generated %d files in %s\n", len(result.Generation.Files), cfg.OutputPath())
	if result.Status == build.BuildStatusWarning {
		fmt.Printf("Warning: %d broken links\n", len(result.Links.Broken))
	}
	return nil
}

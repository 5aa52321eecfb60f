package build

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/refdoc/internal/config"
	"git.home.luguber.info/inful/refdoc/internal/doclet"
	"git.home.luguber.info/inful/refdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/refdoc/internal/generator"
	"git.home.luguber.info/inful/refdoc/internal/git"
	"git.home.luguber.info/inful/refdoc/internal/linkverify"
	"git.home.luguber.info/inful/refdoc/internal/logfields"
	"git.home.luguber.info/inful/refdoc/internal/manifest"
	"git.home.luguber.info/inful/refdoc/internal/metrics"
	"git.home.luguber.info/inful/refdoc/internal/version"
)

// DefaultBuildService is the standard implementation of BuildService.
type DefaultBuildService struct {
	recorder metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewBuildService creates a DefaultBuildService with no metrics.
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		now:      time.Now,
	}
}

// WithRecorder injects a metrics recorder. A *metrics.PrometheusRecorder
// also enables the metrics textfile.
func (s *DefaultBuildService) WithRecorder(r metrics.Recorder) *DefaultBuildService {
	if r != nil {
		s.recorder = r
	}
	return s
}

// WithLogger replaces the default logger.
func (s *DefaultBuildService) WithLogger(l *slog.Logger) *DefaultBuildService {
	if l != nil {
		s.logger = l
	}
	return s
}

// Run executes the complete build pipeline.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	result := &BuildResult{StartTime: s.now()}
	finish := func(status BuildStatus, err error) (*BuildResult, error) {
		result.Status = status
		result.EndTime = s.now()
		result.Duration = result.EndTime.Sub(result.StartTime)
		s.writeMetrics(req)
		return result, err
	}

	if req.Config == nil {
		return finish(BuildStatusFailed, errors.ConfigError("config required").Build())
	}
	cfg := req.Config

	doclets, err := doclet.Load(cfg.DocletsPath())
	if err != nil {
		s.recorder.IncGenerationOutcome(metrics.OutcomeFailed)
		return finish(BuildStatusFailed, err)
	}
	s.logger.Debug("Loaded doclets", logfields.Path(cfg.DocletsPath()), logfields.Count(len(doclets)))

	gen := generator.New(cfg, s.recorder, s.logger)
	genResult, err := gen.Generate(ctx, generator.Input{Doclets: doclets})
	result.Generation = genResult
	if err != nil {
		if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			return finish(BuildStatusCancelled, err)
		}
		return finish(BuildStatusFailed, err)
	}

	status := BuildStatusSuccess
	if req.Options.VerifyLinks || cfg.VerifyLinks {
		report, err := s.verify(ctx, cfg.OutputPath(), genResult)
		result.Links = report
		if err != nil {
			return finish(BuildStatusFailed, err)
		}
		if !report.OK() {
			if req.Options.StrictLinks {
				return finish(BuildStatusFailed, brokenLinksError(len(report.Broken), report.Broken[0].URL))
			}
			status = BuildStatusWarning
		}
	}

	if path := optionOrConfig(req.Options.ManifestPath, cfg, cfg.Manifest); path != "" {
		m, err := s.writeManifest(path, req, genResult, status, result.StartTime)
		if err != nil {
			return finish(BuildStatusFailed, err)
		}
		result.Manifest = m
	}

	return finish(status, nil)
}

func (s *DefaultBuildService) verify(ctx context.Context, outputDir string, gen *generator.Result) (*linkverify.Report, error) {
	pages := make([]string, 0, len(gen.Files))
	for _, f := range gen.Files {
		pages = append(pages, f.Location)
	}

	report, err := linkverify.NewVerifier(outputDir, s.logger).Verify(ctx, pages)
	if err != nil {
		return report, err
	}
	s.recorder.IncBrokenLinks(len(report.Broken))
	s.logger.Info("Link verification complete",
		slog.Int("pages", report.Pages),
		slog.Int("checked", report.Checked),
		slog.Int("broken", len(report.Broken)))
	return report, nil
}

func (s *DefaultBuildService) writeManifest(path string, req BuildRequest, gen *generator.Result, status BuildStatus, start time.Time) (*manifest.GenerationManifest, error) {
	cfg := req.Config
	m := manifest.New(version.Version, start)
	m.Status = string(status)
	m.Duration = s.now().Sub(start).Milliseconds()
	m.Outputs.Links = gen.Links
	m.Outputs.Dropped = len(gen.Dropped)

	var err error
	if cfg.DocletsPath() != "-" {
		if m.Inputs.DocletsHash, err = manifest.HashFile(cfg.DocletsPath()); err != nil {
			return nil, manifestError(err, cfg.DocletsPath())
		}
	}
	if req.ConfigPath != "" {
		if m.Inputs.ConfigHash, err = manifest.HashFile(req.ConfigPath); err != nil {
			return nil, manifestError(err, req.ConfigPath)
		}
	}
	if m.Inputs.TemplateHash, err = manifest.HashFile(cfg.TemplatePath()); err != nil {
		return nil, manifestError(err, cfg.TemplatePath())
	}

	rev, err := git.SourceRevision(cfg.SourcePath())
	if err != nil {
		s.logger.Debug("Source revision unavailable", logfields.Path(cfg.SourcePath()), logfields.Error(err))
	}
	m.Inputs.SourceRevision = rev

	for _, f := range gen.Files {
		sum, err := manifest.HashFile(f.Path)
		if err != nil {
			return nil, manifestError(err, f.Path)
		}
		m.Outputs.Files = append(m.Outputs.Files, manifest.Artifact{Path: f.Location, Kind: string(f.Kind), SHA256: sum})
	}

	if err := m.Write(path); err != nil {
		return nil, manifestError(err, path)
	}
	s.logger.Info("Manifest written", logfields.Path(path), slog.String("id", m.ID))
	return m, nil
}

func (s *DefaultBuildService) writeMetrics(req BuildRequest) {
	path := req.Options.MetricsFile
	if path == "" && req.Config != nil {
		path = optionOrConfig("", req.Config, req.Config.MetricsFile)
	}
	if path == "" {
		return
	}
	prom, ok := s.recorder.(*metrics.PrometheusRecorder)
	if !ok {
		s.logger.Warn("Metrics file requested without a Prometheus recorder", logfields.Path(path))
		return
	}
	if err := metrics.WriteTextfile(path, prom.Registry()); err != nil {
		s.logger.Warn("Failed to write metrics file", logfields.Path(path), logfields.Error(err))
	}
}

func manifestError(err error, path string) error {
	return errors.WrapError(err, errors.CategoryFileSystem, "failed to record manifest").
		Fatal().
		WithContext("path", path).
		Build()
}

// optionOrConfig prefers a command-line path as given over a config path,
// which is relative to the config file.
func optionOrConfig(option string, cfg *config.Config, configured string) string {
	if option != "" {
		return option
	}
	return cfg.Resolve(configured)
}

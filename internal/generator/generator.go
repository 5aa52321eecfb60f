// Package generator turns a doclet dump and a site configuration into the
// flat directory of HTML reference pages.
package generator

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"git.home.luguber.info/inful/refdoc/internal/config"
	"git.home.luguber.info/inful/refdoc/internal/doclet"
	"git.home.luguber.info/inful/refdoc/internal/entity"
	"git.home.luguber.info/inful/refdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/refdoc/internal/logfields"
	"git.home.luguber.info/inful/refdoc/internal/metrics"
	"git.home.luguber.info/inful/refdoc/internal/registry"
)

// Stage names, as reported to logs and metrics.
const (
	StageLoadTemplate   = "load_template"
	StageBuildRegistry  = "build_registry"
	StageNavigation     = "navigation"
	StageRenderPages    = "render_pages"
	StageRenderEntities = "render_entities"
)

// Input is what a single run renders.
type Input struct {
	Doclets []doclet.Doclet
}

// OutputFile is one written page.
type OutputFile struct {
	Name     string
	Kind     entity.Kind
	Location string // relative to the output directory
	Path     string
}

// Result summarizes a run. On failure it holds whatever was written before
// the run stopped.
type Result struct {
	Files    []OutputFile
	Links    int
	Dropped  []doclet.Orphan
	EOL      string
	Duration time.Duration
}

// Generator renders a configured site. A Generator may be reused; every
// Generate call rebuilds the model from scratch.
type Generator struct {
	cfg      *config.Config
	recorder metrics.Recorder
	logger   *slog.Logger
}

func New(cfg *config.Config, recorder metrics.Recorder, logger *slog.Logger) *Generator {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{cfg: cfg, recorder: recorder, logger: logger}
}

// run carries the state passed between stages.
type run struct {
	tmpl       *Template
	reg        *registry.Registry
	navigation string
	result     *Result
}

// Generate performs every stage in order and stops at the first error.
func (g *Generator) Generate(ctx context.Context, in Input) (*Result, error) {
	start := time.Now()
	r := &run{result: &Result{}}

	stages := []struct {
		name string
		fn   func(context.Context, *run, Input) error
	}{
		{StageLoadTemplate, g.loadTemplate},
		{StageBuildRegistry, g.buildRegistry},
		{StageNavigation, g.buildNavigation},
		{StageRenderPages, g.renderPages},
		{StageRenderEntities, g.renderEntities},
	}

	for _, stage := range stages {
		if err := g.runStage(ctx, stage.name, func(ctx context.Context) error {
			return stage.fn(ctx, r, in)
		}); err != nil {
			r.result.Duration = time.Since(start)
			g.recorder.ObserveGenerationDuration(r.result.Duration)
			if isCanceled(err) {
				g.recorder.IncGenerationOutcome(metrics.OutcomeCanceled)
			} else {
				g.recorder.IncGenerationOutcome(metrics.OutcomeFailed)
			}
			return r.result, err
		}
	}

	r.result.Duration = time.Since(start)
	g.recorder.ObserveGenerationDuration(r.result.Duration)
	g.recorder.IncGenerationOutcome(metrics.OutcomeSuccess)
	g.logger.Info("Generation complete",
		logfields.Count(len(r.result.Files)),
		logfields.DurationMS(float64(r.result.Duration.Microseconds())/1000),
		logfields.Path(g.cfg.OutputPath()))
	return r.result, nil
}

func (g *Generator) runStage(ctx context.Context, name string, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		g.recorder.IncStageResult(name, metrics.ResultCanceled)
		return err
	}

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	g.recorder.ObserveStageDuration(name, elapsed)

	switch {
	case err == nil:
		g.recorder.IncStageResult(name, metrics.ResultSuccess)
		g.logger.Debug("Stage complete", logfields.Stage(name), logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	case isCanceled(err):
		g.recorder.IncStageResult(name, metrics.ResultCanceled)
		g.logger.Warn("Stage canceled", logfields.Stage(name))
	default:
		g.recorder.IncStageResult(name, metrics.ResultFatal)
		g.logger.Error("Stage failed", logfields.Stage(name), logfields.Error(err))
	}
	return err
}

func (g *Generator) loadTemplate(_ context.Context, r *run, _ Input) error {
	tmpl, err := LoadTemplate(g.cfg.TemplatePath())
	if err != nil {
		return err
	}
	r.tmpl = tmpl
	r.result.EOL = tmpl.EOL()
	g.logger.Debug("Template loaded", logfields.Path(tmpl.Path()), logfields.EOL(tmpl.EOL()))
	return nil
}

// buildRegistry registers page groups, classes, functions, enums and then
// external refs, in that order. External refs go in name order.
func (g *Generator) buildRegistry(_ context.Context, r *run, in Input) error {
	hierarchy, err := doclet.Build(in.Doclets)
	if err != nil {
		return err
	}
	for _, o := range hierarchy.Dropped {
		g.recorder.IncDroppedDoclets(o.Kind.String())
		g.logger.Debug("Dropped doclet with unknown parent",
			logfields.Entity(o.Name),
			logfields.Kind(o.Kind.String()),
			logfields.MemberOf(o.MemberOf))
	}
	r.result.Dropped = hierarchy.Dropped

	reg := registry.New()
	sourceDir := g.cfg.SourcePath()
	for _, pg := range g.cfg.PageGroups {
		group := entity.NewPageGroup(pg.Name)
		for _, p := range pg.Pages {
			group.AddPage(entity.NewPage(p.Name, p.URL, sourceDir))
		}
		if err := reg.AddPageGroup(group); err != nil {
			return err
		}
	}
	for _, c := range hierarchy.Classes {
		if err := reg.AddClass(c); err != nil {
			return err
		}
	}
	for _, fn := range hierarchy.Functions {
		if err := reg.AddFunction(fn); err != nil {
			return err
		}
	}
	for _, e := range hierarchy.Enums {
		if err := reg.AddEnum(e); err != nil {
			return err
		}
	}
	for _, name := range slices.Sorted(maps.Keys(g.cfg.ExternalRefs)) {
		if err := reg.AddEntityLink(name, g.cfg.ExternalRefs[name]); err != nil {
			return err
		}
	}

	r.reg = reg
	r.result.Links = len(reg.Links())
	g.recorder.SetLinkTableSize(r.result.Links)
	g.logger.Info("Registry built",
		slog.Int("classes", len(hierarchy.Classes)),
		slog.Int("functions", len(hierarchy.Functions)),
		slog.Int("enums", len(hierarchy.Enums)),
		slog.Int("links", r.result.Links),
		slog.Int("dropped", len(hierarchy.Dropped)))
	return nil
}

func (g *Generator) buildNavigation(_ context.Context, r *run, _ Input) error {
	r.navigation = BuildNavigation(r.reg, r.tmpl.EOL())
	return nil
}

func (g *Generator) renderPages(ctx context.Context, r *run, _ Input) error {
	if err := g.ensureOutputDir(); err != nil {
		return err
	}
	for _, group := range r.reg.PageGroups() {
		for _, page := range group.Pages {
			if page.Kind() == entity.PageExternal {
				continue
			}
			if err := g.write(ctx, r, page); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Generator) renderEntities(ctx context.Context, r *run, _ Input) error {
	if err := g.ensureOutputDir(); err != nil {
		return err
	}
	for _, e := range r.reg.Entities() {
		if err := g.write(ctx, r, e); err != nil {
			return err
		}
	}
	return nil
}

// write renders one entity through the template into the output directory.
func (g *Generator) write(ctx context.Context, r *run, e entity.Entity) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	kind, ok := entity.KindOf(e)
	if !ok {
		return errors.UnsupportedEntity(e.Name(), fmt.Sprintf("%T", e))
	}

	body, err := e.Render(r.reg.Links(), r.tmpl.EOL())
	if err != nil {
		if classified, ok := errors.AsClassified(err); ok {
			return classified.WithContext("entity", e.Name())
		}
		return err
	}

	location := e.Location()
	path := filepath.Join(g.cfg.OutputPath(), location)
	content := r.tmpl.Execute(e.Name(), r.navigation, body)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write output file").
			Fatal().
			WithContext("entity", e.Name()).
			WithContext("path", path).
			Build()
	}

	r.result.Files = append(r.result.Files, OutputFile{Name: e.Name(), Kind: kind, Location: location, Path: path})
	g.recorder.IncFilesWritten(string(kind))
	g.logger.Debug("Wrote file", logfields.Entity(e.Name()), logfields.Kind(string(kind)), logfields.File(location))
	return nil
}

func (g *Generator) ensureOutputDir() error {
	dir := g.cfg.OutputPath()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
			Fatal().
			WithContext("path", dir).
			Build()
	}
	return nil
}

func isCanceled(err error) bool {
	return stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded)
}

// Package watch regenerates the site whenever its inputs change.
//
// Every trigger, whether a filesystem event or a scheduled tick, runs a full
// build. Failed builds are logged and the watcher keeps going.
package watch

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/refdoc/internal/build"
	"git.home.luguber.info/inful/refdoc/internal/config"
	"git.home.luguber.info/inful/refdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/refdoc/internal/logfields"
)

// Options configures a Watcher beyond what the config file holds.
type Options struct {
	// ConfigPath is watched and reloaded before each build when set.
	ConfigPath string

	// Build is passed through to every build request.
	Build build.BuildOptions

	// MetricsHandler is served on the configured metrics address when both are set.
	MetricsHandler http.Handler
}

// Watcher rebuilds the site on change.
type Watcher struct {
	service build.BuildService
	opts    Options
	logger  *slog.Logger

	mu  sync.Mutex
	cfg *config.Config
}

// New creates a Watcher for cfg.
func New(cfg *config.Config, service build.BuildService, opts Options, logger *slog.Logger) (*Watcher, error) {
	if cfg == nil {
		return nil, errors.ConfigError("config required").Build()
	}
	if service == nil {
		return nil, errors.ValidationError("build service required").Build()
	}
	if cfg.DocletsPath() == "-" {
		return nil, errors.ConfigError("watch cannot read doclets from stdin").
			WithContext("doclets", cfg.Doclets).
			Build()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{service: service, opts: opts, logger: logger, cfg: cfg}, nil
}

// Run builds once, then watches until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	cfg := w.config()
	debounce := cfg.Watch.DebounceDuration()

	fsw, err := w.setupFileWatcher(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = fsw.Close() }()

	rebuildReq, trigger, stop := setupRebuildDebouncer(debounce)
	defer stop()

	sched, err := w.startScheduler(cfg, rebuildReq)
	if err != nil {
		return err
	}
	if sched != nil {
		defer func() { _ = sched.Stop() }()
	}

	srv, err := w.startMetricsServer(cfg)
	if err != nil {
		return err
	}
	if srv != nil {
		defer w.stopMetricsServer(srv)
	}

	// The worker stops with the loop, whatever ends it.
	workerCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.rebuildWorker(workerCtx, rebuildReq)
	}()
	defer func() {
		cancel()
		wg.Wait()
	}()

	// Initial build.
	requestRebuild(rebuildReq)

	w.logger.Info("Watching for changes",
		logfields.Path(cfg.SourcePath()),
		slog.Duration("debounce", debounce))

	return w.loop(ctx, fsw, trigger)
}

func (w *Watcher) config() *config.Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cfg
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, trigger func()) error {
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopping watcher")
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleFileEvent(fsw, ev, trigger)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// setupFileWatcher watches the source tree recursively and the directories
// holding the template, the doclets and the config file.
func (w *Watcher) setupFileWatcher(cfg *config.Config) (*fsnotify.Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to create file watcher").Fatal().Build()
	}

	if err := addDirsRecursive(fsw, cfg.SourcePath(), w.logger); err != nil {
		_ = fsw.Close()
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to watch source directory").
			Fatal().
			WithContext("path", cfg.SourcePath()).
			Build()
	}
	for _, file := range w.watchedFiles(cfg) {
		dir := filepath.Dir(file)
		if isWithin(cfg.SourcePath(), dir) {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			w.logger.Warn("Watch add failed", logfields.Path(dir), logfields.Error(err))
		}
	}
	return fsw, nil
}

func (w *Watcher) watchedFiles(cfg *config.Config) []string {
	files := []string{cfg.TemplatePath()}
	if cfg.DocletsPath() != "-" {
		files = append(files, cfg.DocletsPath())
	}
	if w.opts.ConfigPath != "" {
		files = append(files, w.opts.ConfigPath)
	}
	return files
}

// relevant reports whether a change to path affects the generated site.
// Events in the source tree always count; outside it only the watched files do.
func (w *Watcher) relevant(path string) bool {
	cfg := w.config()
	if isWithin(cfg.OutputPath(), path) {
		return false
	}
	if isWithin(cfg.SourcePath(), path) {
		return true
	}
	for _, file := range w.watchedFiles(cfg) {
		if sameFile(file, path) {
			return true
		}
	}
	return false
}

func (w *Watcher) handleFileEvent(fsw *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if shouldIgnoreEvent(ev.Name) || ev.Op == fsnotify.Chmod || !w.relevant(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(fsw, ev.Name, w.logger)
		}
	}
	w.logger.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

// rebuildWorker runs one build per request. Requests arriving during a build
// collapse into a single follow-up.
func (w *Watcher) rebuildWorker(ctx context.Context, rebuildReq chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-rebuildReq:
			w.rebuild(ctx)
		}
	}
}

func (w *Watcher) rebuild(ctx context.Context) {
	if w.opts.ConfigPath != "" {
		if err := w.reloadConfig(); err != nil {
			w.logger.Warn("Config reload failed; keeping previous config",
				logfields.Path(w.opts.ConfigPath), logfields.Error(err))
		}
	}

	w.logger.Info("Change detected; regenerating site")
	result, err := w.service.Run(ctx, build.BuildRequest{
		Config:     w.config(),
		ConfigPath: w.opts.ConfigPath,
		Options:    w.opts.Build,
	})
	switch {
	case err != nil && stderrors.Is(err, context.Canceled):
		w.logger.Debug("Build canceled")
	case err != nil:
		w.logger.Warn("Build failed", logfields.Error(err))
	case result != nil && result.Generation != nil:
		w.logger.Info("Site regenerated",
			slog.String("status", string(result.Status)),
			logfields.Count(len(result.Generation.Files)),
			logfields.DurationMS(float64(result.Duration.Milliseconds())))
	}
}

func (w *Watcher) reloadConfig() error {
	cfg, err := config.Load(w.opts.ConfigPath)
	if err != nil {
		return err
	}
	if cfg.DocletsPath() == "-" {
		return errors.ConfigError("watch cannot read doclets from stdin").
			WithContext("path", w.opts.ConfigPath).
			Build()
	}
	w.mu.Lock()
	w.cfg = cfg
	w.mu.Unlock()
	return nil
}

// setupRebuildDebouncer returns the rebuild channel, a trigger that fires it
// once the quiet window has passed, and a stop func for the pending timer.
func setupRebuildDebouncer(quiet time.Duration) (chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(quiet, func() { requestRebuild(rebuildReq) })
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return rebuildReq, trigger, stop
}

func requestRebuild(rebuildReq chan struct{}) {
	select {
	case rebuildReq <- struct{}{}:
	default:
	}
}

func addDirsRecursive(w *fsnotify.Watcher, root string, logger *slog.Logger) error {
	if _, err := os.Stat(root); err != nil {
		return err
	}
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() != "." && strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			if err := w.Add(path); err != nil {
				logger.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for filesystem events that should not trigger rebuilds.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	// Hidden files, including .#lock files
	if strings.HasPrefix(base, ".") {
		return true
	}

	// Editor temp/swap files
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	return base == "Thumbs.db"
}

func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(absolute(dir), absolute(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func sameFile(a, b string) bool {
	return absolute(a) == absolute(b)
}

func absolute(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

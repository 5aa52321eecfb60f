package watch

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/refdoc/internal/config"
	"git.home.luguber.info/inful/refdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/refdoc/internal/logfields"
)

// Scheduler wraps a gocron scheduler holding the periodic regeneration job.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
}

// NewScheduler creates a scheduler that requests a rebuild every interval.
func NewScheduler(interval time.Duration, rebuildReq chan struct{}, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to create scheduler").Fatal().Build()
	}
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(requestRebuild, rebuildReq),
		gocron.WithName("periodic-regeneration"),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to create periodic regeneration job").
			Fatal().
			WithContext("interval", interval.String()).
			Build()
	}
	return &Scheduler{scheduler: s, logger: logger}, nil
}

// Start begins the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("Starting scheduler")
	s.scheduler.Start()
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() error {
	s.logger.Info("Stopping scheduler")
	return s.scheduler.Shutdown()
}

func (w *Watcher) startScheduler(cfg *config.Config, rebuildReq chan struct{}) (*Scheduler, error) {
	interval := cfg.Watch.IntervalDuration()
	if interval == 0 {
		return nil, nil
	}
	s, err := NewScheduler(interval, rebuildReq, w.logger)
	if err != nil {
		return nil, err
	}
	s.Start()
	w.logger.Info("Periodic regeneration enabled", slog.Duration("interval", interval))
	return s, nil
}

func (w *Watcher) startMetricsServer(cfg *config.Config) (*http.Server, error) {
	addr := cfg.Watch.MetricsListen
	if addr == "" || w.opts.MetricsHandler == nil {
		return nil, nil
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to bind metrics listener").
			Fatal().
			WithContext("address", addr).
			Build()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", w.opts.MetricsHandler)
	srv := &http.Server{Handler: mux, ReadTimeout: 30 * time.Second, WriteTimeout: 30 * time.Second, IdleTimeout: 120 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			w.logger.Error("Metrics server error", logfields.Error(err))
		}
	}()
	w.logger.Info("Metrics server listening", slog.String("address", ln.Addr().String()))
	return srv, nil
}

func (w *Watcher) stopMetricsServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		w.logger.Warn("Metrics server shutdown error", logfields.Error(err))
	}
}

package commands

import (
	"net/http"

	"git.home.luguber.info/inful/refdoc/internal/build"
	"git.home.luguber.info/inful/refdoc/internal/metrics"
	"git.home.luguber.info/inful/refdoc/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Overrides `embed:""`

	Verify        bool   `help:"Check relative links after every generation"`
	MetricsListen string `name:"metrics-listen" help:"Serve Prometheus metrics on this address (overrides watch.metrics_listen)"`
}

func (w *WatchCmd) Run(global *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config, w.Overrides)
	if err != nil {
		return err
	}
	if w.MetricsListen != "" {
		cfg.Watch.MetricsListen = w.MetricsListen
	}

	recorder, prom := newRecorder(cfg.Watch.MetricsListen != "" || cfg.MetricsFile != "")
	var handler http.Handler
	if prom != nil {
		handler = metrics.HTTPHandler(prom.Registry())
	}

	logger := loggerOf(global)
	svc := build.NewBuildService().WithRecorder(recorder).WithLogger(logger)
	watcher, err := watch.New(cfg, svc, watch.Options{
		// Overrides would be lost on reload.
		ConfigPath:     reloadPath(root.Config, w.Overrides),
		Build:          build.BuildOptions{VerifyLinks: w.Verify},
		MetricsHandler: handler,
	}, logger)
	if err != nil {
		return err
	}
	return watcher.Run(contextOf(global))
}

func reloadPath(configPath string, o Overrides) string {
	if o.Output != "" || o.Doclets != "" {
		return ""
	}
	return configPath
}

// Package metrics provides the observability hooks of a generation run.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no call site needs a nil check:
//
//	gen := generator.New(cfg, metrics.NoopRecorder{}, logger)
//
// When a metrics file or listen address is configured the CLI swaps in a
// PrometheusRecorder. Its registry can be written as a textfile after a run
// (WriteTextfile) or served over HTTP while watching (HTTPHandler).
package metrics

package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "refdoc"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry           *prom.Registry
	stageDuration      *prom.HistogramVec
	generationDuration prom.Histogram
	stageResults       *prom.CounterVec
	outcomes           *prom.CounterVec
	filesWritten       *prom.CounterVec
	linkTableSize      prom.Gauge
	droppedDoclets     *prom.CounterVec
	brokenLinks        prom.Counter
}

// NewPrometheusRecorder constructs the collectors and registers them on reg,
// or on a fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual generation stages",
		Buckets:   prom.DefBuckets,
	}, []string{"stage"})
	pr.generationDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "generation_duration_seconds",
		Help:      "Total generation duration",
		Buckets:   prom.DefBuckets,
	})
	pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "stage_results_total",
		Help:      "Stage result counts by outcome",
	}, []string{"stage", "result"})
	pr.outcomes = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "generation_outcomes_total",
		Help:      "Generation runs by final status",
	}, []string{"outcome"})
	pr.filesWritten = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "files_written_total",
		Help:      "Output files written by entity kind",
	}, []string{"kind"})
	pr.linkTableSize = prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "link_table_entries",
		Help:      "Names registered in the link table of the last run",
	})
	pr.droppedDoclets = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "dropped_doclets_total",
		Help:      "Doclets dropped because their parent was never declared",
	}, []string{"kind"})
	pr.brokenLinks = prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "broken_links_total",
		Help:      "Internal links pointing at missing output files",
	})
	reg.MustRegister(
		pr.stageDuration, pr.generationDuration, pr.stageResults, pr.outcomes,
		pr.filesWritten, pr.linkTableSize, pr.droppedDoclets, pr.brokenLinks,
	)
	return pr
}

// Registry is the registry the collectors live on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.registry }

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveGenerationDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.generationDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncGenerationOutcome(outcome OutcomeLabel) {
	if p == nil {
		return
	}
	p.outcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncFilesWritten(kind string) {
	if p == nil {
		return
	}
	p.filesWritten.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) SetLinkTableSize(n int) {
	if p == nil {
		return
	}
	p.linkTableSize.Set(float64(n))
}

func (p *PrometheusRecorder) IncDroppedDoclets(kind string) {
	if p == nil {
		return
	}
	p.droppedDoclets.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) IncBrokenLinks(n int) {
	if p == nil {
		return
	}
	p.brokenLinks.Add(float64(n))
}

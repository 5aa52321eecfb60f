package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("render_entities", 150*time.Millisecond)
	pr.ObserveGenerationDuration(500 * time.Millisecond)
	pr.IncStageResult("render_entities", ResultSuccess)
	pr.IncGenerationOutcome(OutcomeSuccess)
	pr.IncFilesWritten("class")
	pr.IncFilesWritten("class")
	pr.SetLinkTableSize(7)
	pr.IncDroppedDoclets("member")
	pr.IncBrokenLinks(2)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)

	values := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				values[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[mf.GetName()] = m.GetGauge().GetValue()
			}
		}
	}
	require.InDelta(t, 2, values["refdoc_files_written_total"], 0)
	require.InDelta(t, 7, values["refdoc_link_table_entries"], 0)
	require.InDelta(t, 2, values["refdoc_broken_links_total"], 0)
	require.InDelta(t, 1, values["refdoc_dropped_doclets_total"], 0)
	require.Same(t, reg, pr.Registry())
}

func TestNilPrometheusRecorder(t *testing.T) {
	var pr *PrometheusRecorder
	require.NotPanics(t, func() {
		pr.ObserveStageDuration("navigation", time.Second)
		pr.IncFilesWritten("page")
		pr.IncGenerationOutcome(OutcomeFailed)
	})
}

func TestWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncGenerationOutcome(OutcomeSuccess)

	path := filepath.Join(t.TempDir(), "refdoc.prom")
	require.NoError(t, WriteTextfile(path, pr.Registry()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `refdoc_generation_outcomes_total{outcome="success"} 1`)
}

func TestHTTPHandler(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.SetLinkTableSize(3)

	rec := httptest.NewRecorder()
	HTTPHandler(pr.Registry()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "refdoc_link_table_entries 3")
}

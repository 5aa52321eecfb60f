package metrics

import "time"

type testRecorder struct {
	stageDurations map[string]int
	stageResults   map[string]map[ResultLabel]int
	outcomes       map[OutcomeLabel]int
	files          map[string]int
	dropped        map[string]int
	links          int
	broken         int
	generations    int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{
		stageDurations: map[string]int{},
		stageResults:   map[string]map[ResultLabel]int{},
		outcomes:       map[OutcomeLabel]int{},
		files:          map[string]int{},
		dropped:        map[string]int{},
	}
}

func (t *testRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	t.stageDurations[stage]++
}
func (t *testRecorder) ObserveGenerationDuration(_ time.Duration) { t.generations++ }
func (t *testRecorder) IncStageResult(stage string, result ResultLabel) {
	m, ok := t.stageResults[stage]
	if !ok {
		m = map[ResultLabel]int{}
		t.stageResults[stage] = m
	}
	m[result]++
}
func (t *testRecorder) IncGenerationOutcome(outcome OutcomeLabel) { t.outcomes[outcome]++ }
func (t *testRecorder) IncFilesWritten(kind string)               { t.files[kind]++ }
func (t *testRecorder) SetLinkTableSize(n int)                    { t.links = n }
func (t *testRecorder) IncDroppedDoclets(kind string)             { t.dropped[kind]++ }
func (t *testRecorder) IncBrokenLinks(n int)                      { t.broken += n }

var (
	_ Recorder = (*testRecorder)(nil)
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)

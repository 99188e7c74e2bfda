package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once             sync.Once
	stageDuration    *prom.HistogramVec
	pipelineDuration prom.Histogram
	stageResults     *prom.CounterVec
	pipelineOutcome  *prom.CounterVec
	stageChanges     *prom.CounterVec
	violations       prom.Counter
	filesSelected    prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docpolish",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual pipeline stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.pipelineDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docpolish",
			Name:      "pipeline_duration_seconds",
			Help:      "Total pipeline duration",
			Buckets:   prom.DefBuckets,
		})
		pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docpolish",
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"})
		pr.pipelineOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docpolish",
			Name:      "pipeline_outcomes_total",
			Help:      "Pipeline outcomes by final status",
		}, []string{"outcome"})
		pr.stageChanges = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docpolish",
			Name:      "stage_changes_total",
			Help:      "Document substitutions applied per stage",
		}, []string{"stage"})
		pr.violations = prom.NewCounter(prom.CounterOpts{
			Namespace: "docpolish",
			Name:      "validation_violations_total",
			Help:      "Residual inline styles found by the validation gate",
		})
		pr.filesSelected = prom.NewGauge(prom.GaugeOpts{
			Namespace: "docpolish",
			Name:      "files_selected",
			Help:      "Documents selected for the last pipeline run",
		})
		reg.MustRegister(pr.stageDuration, pr.pipelineDuration, pr.stageResults, pr.pipelineOutcome, pr.stageChanges, pr.violations, pr.filesSelected)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObservePipelineDuration(d time.Duration) {
	if p == nil || p.pipelineDuration == nil {
		return
	}
	p.pipelineDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncPipelineOutcome(outcome string) {
	if p == nil || p.pipelineOutcome == nil {
		return
	}
	p.pipelineOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) AddStageChanges(stage string, n int) {
	if p == nil || p.stageChanges == nil {
		return
	}
	p.stageChanges.WithLabelValues(stage).Add(float64(n))
}

func (p *PrometheusRecorder) AddValidationViolations(n int) {
	if p == nil || p.violations == nil {
		return
	}
	p.violations.Add(float64(n))
}

func (p *PrometheusRecorder) SetFilesSelected(n int) {
	if p == nil || p.filesSelected == nil {
		return
	}
	p.filesSelected.Set(float64(n))
}

package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("transform_styles", 150*time.Millisecond)
	pr.ObservePipelineDuration(500 * time.Millisecond)
	pr.IncStageResult("transform_styles", ResultSuccess)
	pr.IncPipelineOutcome("success")
	pr.AddStageChanges("transform_styles", 7)
	pr.AddValidationViolations(2)
	pr.SetFilesSelected(3)
	// Basic scrape to ensure metrics encode without panic
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Fatalf("expected metrics, got none")
	}
}

func TestNoopRecorderIsSafe(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("x", time.Second)
	r.ObservePipelineDuration(time.Second)
	r.IncStageResult("x", ResultFatal)
	r.IncPipelineOutcome("failed")
	r.AddStageChanges("x", 1)
	r.AddValidationViolations(1)
	r.SetFilesSelected(1)
}

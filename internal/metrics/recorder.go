// Package metrics provides observability hooks for pipeline runs.
//
// Components receive a Recorder through dependency injection; the default
// NoopRecorder does nothing, so metrics collection is opt-in without nil
// checks at call sites. The Prometheus implementation is activated when
// metrics are enabled in configuration.
package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultWarning  ResultLabel = "warning"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// Recorder defines observability hooks for pipeline and stage metrics.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObservePipelineDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncPipelineOutcome(outcome string) // outcome: success|failed|canceled
	AddStageChanges(stage string, n int)
	AddValidationViolations(n int)
	SetFilesSelected(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObservePipelineDuration(time.Duration)      {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncPipelineOutcome(string)                  {}
func (NoopRecorder) AddStageChanges(string, int)                {}
func (NoopRecorder) AddValidationViolations(int)                {}
func (NoopRecorder) SetFilesSelected(int)                       {}

package pipeline

import (
	"fmt"
	"io"
	"time"

	"git.home.luguber.info/inful/docpolish/internal/htmlops"
	"git.home.luguber.info/inful/docpolish/internal/metrics"
)

// Report aggregates per-stage outcomes for a single pipeline run. Change
// counts are operator-facing only; control flow depends solely on stage
// error classification.
type Report struct {
	RunID    string
	Started  time.Time
	Finished time.Time

	Files       int
	Token       string
	SkippedRefs int

	Order           []StageName // stages in execution order
	StageDurations  map[StageName]time.Duration
	StageErrorKinds map[StageName]StageErrorKind
	Changes         map[StageName]int

	Validation *htmlops.ValidationResult
	Warnings   []error
	Errors     []error
}

func newReport(runID string) *Report {
	return &Report{
		RunID:           runID,
		Started:         time.Now(),
		StageDurations:  make(map[StageName]time.Duration),
		StageErrorKinds: make(map[StageName]StageErrorKind),
		Changes:         make(map[StageName]int),
	}
}

// recordStage stores timing and classification for one stage and emits metrics.
func (r *Report) recordStage(stage StageName, dur time.Duration, se *StageError, rec metrics.Recorder) {
	r.Order = append(r.Order, stage)
	r.StageDurations[stage] = dur
	rec.ObserveStageDuration(string(stage), dur)
	if se == nil {
		rec.IncStageResult(string(stage), metrics.ResultSuccess)
		return
	}
	r.StageErrorKinds[stage] = se.Kind
	switch se.Kind {
	case StageErrorWarning:
		r.Warnings = append(r.Warnings, se)
		rec.IncStageResult(string(stage), metrics.ResultWarning)
	case StageErrorCanceled:
		r.Errors = append(r.Errors, se)
		rec.IncStageResult(string(stage), metrics.ResultCanceled)
	default:
		r.Errors = append(r.Errors, se)
		rec.IncStageResult(string(stage), metrics.ResultFatal)
	}
}

func (r *Report) finish() {
	r.Finished = time.Now()
}

// Duration returns the wall-clock duration of the run.
func (r *Report) Duration() time.Duration {
	if r.Finished.IsZero() {
		return time.Since(r.Started)
	}
	return r.Finished.Sub(r.Started)
}

// TotalChanges sums substitution counts across all stages.
func (r *Report) TotalChanges() int {
	total := 0
	for _, n := range r.Changes {
		total += n
	}
	return total
}

// Write prints a human-readable per-stage summary.
func (r *Report) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Run %s: %d files, %d changes in %s\n",
		r.RunID, r.Files, r.TotalChanges(), r.Duration().Round(time.Millisecond)); err != nil {
		return err
	}
	for _, s := range r.Order {
		status := "ok"
		if kind, failed := r.StageErrorKinds[s]; failed {
			status = string(kind)
		}
		if _, err := fmt.Fprintf(w, "  %-20s %-8s changes=%d duration=%s\n",
			s, status, r.Changes[s], r.StageDurations[s].Round(time.Millisecond)); err != nil {
			return err
		}
	}
	if r.Validation != nil && !r.Validation.Pass() {
		if _, err := fmt.Fprintf(w, "Residual inline styles (%d):\n", len(r.Validation.Violations)); err != nil {
			return err
		}
		for _, v := range r.Validation.Violations {
			if _, err := fmt.Fprintf(w, "  %s: %s\n", v.Path, v.Snippet); err != nil {
				return err
			}
		}
	}
	return nil
}

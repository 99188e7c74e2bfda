// Package pipeline sequences the documentation post-processing stages:
// external generation, inline-style rewriting, accessibility fixes, the
// style-removal validation gate, and cache-token injection. Stages run
// strictly in order; the first fatal stage aborts the run.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docpolish/internal/config"
	"git.home.luguber.info/inful/docpolish/internal/metrics"
	"git.home.luguber.info/inful/docpolish/internal/patterns"
)

// Pipeline orchestrates a post-processing run over the generated site.
type Pipeline struct {
	cfg      *config.Config
	lib      *patterns.Library
	recorder metrics.Recorder
}

// Option configures optional pipeline collaborators.
type Option func(*Pipeline)

// WithRecorder injects a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// WithLibrary overrides the default pattern library.
func WithLibrary(lib *patterns.Library) Option {
	return func(p *Pipeline) { p.lib = lib }
}

// New constructs a Pipeline for the given configuration.
func New(cfg *config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:      cfg,
		lib:      patterns.Default(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// defaultStages is the full build order.
func defaultStages() []StageDef {
	return []StageDef{
		{Name: StageRunGenerator, Fn: stageRunGenerator},
		{Name: StageSelectFiles, Fn: stageSelectFiles},
		{Name: StageTransformStyles, Fn: stageTransformStyles},
		{Name: StageFixAccessibility, Fn: stageFixAccessibility},
		{Name: StageValidateStyles, Fn: stageValidateStyles},
		{Name: StageInjectCacheTokens, Fn: stageInjectCacheTokens},
	}
}

// polishStages skips the external generator, post-processing the existing tree.
func polishStages() []StageDef {
	return defaultStages()[1:]
}

// Run executes the full pipeline including generator invocation.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	return p.run(ctx, defaultStages())
}

// Polish executes only the post-processing stages against an already
// generated site tree.
func (p *Pipeline) Polish(ctx context.Context) (*Report, error) {
	return p.run(ctx, polishStages())
}

// Validate executes only selection and the style-removal gate, mutating nothing.
func (p *Pipeline) Validate(ctx context.Context) (*Report, error) {
	return p.run(ctx, []StageDef{
		{Name: StageSelectFiles, Fn: stageSelectFiles},
		{Name: StageValidateStyles, Fn: stageValidateStyles},
	})
}

func (p *Pipeline) run(ctx context.Context, stages []StageDef) (*Report, error) {
	st := &State{
		Config:   p.cfg,
		Library:  p.lib,
		Report:   newReport(uuid.NewString()),
		recorder: p.recorder,
	}
	slog.Info("Starting pipeline run", "run_id", st.Report.RunID, "site", p.cfg.Site.Directory)
	err := runStages(ctx, st, stages)
	st.Report.finish()
	p.recorder.ObservePipelineDuration(st.Report.Duration())
	if err != nil {
		outcome := "failed"
		if se, ok := err.(*StageError); ok && se.Kind == StageErrorCanceled {
			outcome = "canceled"
		}
		p.recorder.IncPipelineOutcome(outcome)
		return st.Report, err
	}
	p.recorder.IncPipelineOutcome("success")
	slog.Info("Pipeline run complete",
		"run_id", st.Report.RunID,
		"files", st.Report.Files,
		"changes", st.Report.TotalChanges(),
		"duration", st.Report.Duration())
	return st.Report, nil
}

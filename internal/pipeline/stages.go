package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docpolish/internal/config"
	"git.home.luguber.info/inful/docpolish/internal/generator"
	"git.home.luguber.info/inful/docpolish/internal/htmlops"
	"git.home.luguber.info/inful/docpolish/internal/metrics"
	"git.home.luguber.info/inful/docpolish/internal/patterns"
	"git.home.luguber.info/inful/docpolish/internal/selection"
)

// Stage is a discrete unit of work in the pipeline run.
type Stage func(ctx context.Context, st *State) error

// StageName identifies a pipeline stage in reports, logs and metrics.
type StageName string

const (
	StageRunGenerator      StageName = "run_generator"
	StageSelectFiles       StageName = "select_files"
	StageTransformStyles   StageName = "transform_styles"
	StageFixAccessibility  StageName = "fix_accessibility"
	StageValidateStyles    StageName = "validate_styles"
	StageInjectCacheTokens StageName = "inject_cache_tokens"
)

// StageDef pairs a stage name with its implementation.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Run must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}
func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}
func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// State carries mutable state across stages for a single run.
type State struct {
	Config   *config.Config
	Library  *patterns.Library
	Files    []string
	Token    string
	Report   *Report
	recorder metrics.Recorder
}

// stageRunGenerator invokes the external static-site generator. Its failure
// is fatal before any transformation has touched the output.
func stageRunGenerator(ctx context.Context, st *State) error {
	runner := generator.NewRunner(st.Config.Generator)
	if !runner.ShouldRun() {
		slog.Info("Generator invocation skipped", "command", st.Config.Generator.Command)
		return nil
	}
	if err := runner.Run(ctx); err != nil {
		return newFatalStageError(StageRunGenerator, fmt.Errorf("%w: %v", ErrGenerator, err))
	}
	return nil
}

// stageSelectFiles resolves the file-selection policy against the site tree.
func stageSelectFiles(_ context.Context, st *State) error {
	files, err := selection.Select(st.Config.Site.Directory, st.Config.Select)
	if err != nil {
		return newFatalStageError(StageSelectFiles, fmt.Errorf("%w: %v", ErrSelection, err))
	}
	st.Files = files
	st.Report.Files = len(files)
	st.recorder.SetFilesSelected(len(files))
	if len(files) == 0 {
		return newWarnStageError(StageSelectFiles, fmt.Errorf("%w: no documents matched the selection policy", ErrSelection))
	}
	return nil
}

func stageTransformStyles(ctx context.Context, st *State) error {
	return st.mutateEach(ctx, StageTransformStyles, func(doc *htmlops.Document) int {
		return htmlops.RewriteInlineStyles(doc, st.Library)
	})
}

func stageFixAccessibility(ctx context.Context, st *State) error {
	return st.mutateEach(ctx, StageFixAccessibility, func(doc *htmlops.Document) int {
		return htmlops.FixAccessibility(doc, st.Library)
	})
}

// stageValidateStyles is the gate: any residual in-scope inline style aborts
// the pipeline so unconverted markup is never shipped silently.
func stageValidateStyles(ctx context.Context, st *State) error {
	result := &htmlops.ValidationResult{}
	for _, path := range st.Files {
		select {
		case <-ctx.Done():
			return newCanceledStageError(StageValidateStyles, ctx.Err())
		default:
		}
		doc, err := htmlops.Load(path)
		if err != nil {
			if serr := st.fileError(StageValidateStyles, err); serr != nil {
				return serr
			}
			continue
		}
		result.Violations = append(result.Violations, htmlops.ScanStyles(doc, st.Library, st.Config.Validate.Scope)...)
	}
	st.Report.Validation = result
	st.recorder.AddValidationViolations(len(result.Violations))
	if !result.Pass() {
		for _, v := range result.Violations {
			slog.Error("Residual inline style", "file", v.Path, "snippet", v.Snippet)
		}
		return newFatalStageError(StageValidateStyles,
			fmt.Errorf("%w: %d residual inline styles", ErrValidation, len(result.Violations)))
	}
	return nil
}

func stageInjectCacheTokens(ctx context.Context, st *State) error {
	token, err := NewToken(st.Config.CacheBust, st.Files)
	if err != nil {
		return newFatalStageError(StageInjectCacheTokens, err)
	}
	st.Token = token
	st.Report.Token = token
	return st.mutateEach(ctx, StageInjectCacheTokens, func(doc *htmlops.Document) int {
		injected, skipped := htmlops.InjectCacheTokens(doc, st.Config.CacheBust.Param, token)
		if skipped > 0 {
			slog.Warn("Malformed asset references left untouched", "file", doc.Path, "count", skipped)
			st.Report.SkippedRefs += skipped
		}
		return injected
	})
}

// mutateEach loads, transforms and persists every selected document,
// accumulating the stage's change count. Per-file errors follow the
// configured error policy.
func (st *State) mutateEach(ctx context.Context, stage StageName, fn func(*htmlops.Document) int) error {
	changes := 0
	for _, path := range st.Files {
		select {
		case <-ctx.Done():
			return newCanceledStageError(stage, ctx.Err())
		default:
		}
		doc, err := htmlops.Load(path)
		if err != nil {
			if serr := st.fileError(stage, err); serr != nil {
				return serr
			}
			continue
		}
		n := fn(doc)
		if err := doc.Save(); err != nil {
			if serr := st.fileError(stage, err); serr != nil {
				return serr
			}
			continue
		}
		changes += n
	}
	st.Report.Changes[stage] += changes
	st.recorder.AddStageChanges(string(stage), changes)
	return nil
}

// fileError applies the per-stage error policy to a file-level error. A nil
// return means the error was logged and the stage should continue.
func (st *State) fileError(stage StageName, err error) error {
	if st.Config.Stages.FileErrors == config.PolicyFatal {
		return newFatalStageError(stage, err)
	}
	slog.Warn("Skipping file after error", "stage", string(stage), "error", err)
	st.Report.Warnings = append(st.Report.Warnings, newWarnStageError(stage, err))
	return nil
}

// runStages executes stages in order, recording timing and stopping on the
// first fatal error.
func runStages(ctx context.Context, st *State, stages []StageDef) error {
	for _, sd := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(sd.Name, ctx.Err())
			st.Report.recordStage(sd.Name, 0, se, st.recorder)
			return se
		default:
		}
		t0 := time.Now()
		err := sd.Fn(ctx, st)
		dur := time.Since(t0)
		if err != nil {
			se, ok := err.(*StageError)
			if !ok {
				// Wrap unknown errors as fatal by default.
				se = newFatalStageError(sd.Name, err)
			}
			st.Report.recordStage(sd.Name, dur, se, st.recorder)
			switch se.Kind {
			case StageErrorWarning:
				slog.Warn("Stage completed with warnings", "stage", string(sd.Name), "duration", dur, "error", se.Err)
				continue
			default:
				slog.Error("Stage failed", "stage", string(sd.Name), "duration", dur, "error", se.Err)
				return se
			}
		}
		st.Report.recordStage(sd.Name, dur, nil, st.recorder)
		slog.Info("Stage complete", "stage", string(sd.Name), "duration", dur, "changes", st.Report.Changes[sd.Name])
	}
	return nil
}

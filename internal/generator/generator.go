// Package generator invokes the external static-site generator that
// materializes the HTML tree this pipeline post-processes.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"git.home.luguber.info/inful/docpolish/internal/config"
)

// Runner invokes the configured generator command.
type Runner struct {
	cfg config.GeneratorConfig
}

// NewRunner constructs a Runner for the given generator configuration.
func NewRunner(cfg config.GeneratorConfig) *Runner {
	return &Runner{cfg: cfg}
}

// ShouldRun determines if the external generator should be invoked.
// Disabled when no command is configured, when DOCPOLISH_SKIP_GENERATOR=1,
// or when the binary is not in PATH.
func (r *Runner) ShouldRun() bool {
	if r.cfg.Command == "" {
		return false
	}
	if os.Getenv("DOCPOLISH_SKIP_GENERATOR") == "1" {
		return false
	}
	_, err := exec.LookPath(r.cfg.Command)
	return err == nil
}

// Run executes the generator command, streaming its output through.
func (r *Runner) Run(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, r.cfg.Command, r.cfg.Args...)
	cmd.Dir = r.cfg.Dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	slog.Info("Running static-site generator", "command", r.cfg.Command, "dir", r.cfg.Dir)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("generator command %s failed: %w", r.cfg.Command, err)
	}
	return nil
}

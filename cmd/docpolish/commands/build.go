package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/docpolish/internal/config"
	"git.home.luguber.info/inful/docpolish/internal/pipeline"
)

// BuildCmd implements the 'build' command: generator plus all
// post-processing stages.
type BuildCmd struct {
	Site string `short:"s" help:"Override the generated site directory"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if b.Site != "" {
		cfg.Site.Directory = b.Site
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	p := pipeline.New(cfg, pipeline.WithRecorder(newRecorder(cfg)))
	report, err := p.Run(ctx)
	if report != nil {
		_ = report.Write(os.Stdout)
	}
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	return nil
}

// PolishCmd implements the 'polish' command: post-processing only, for site
// trees generated elsewhere.
type PolishCmd struct {
	Site string `short:"s" help:"Override the generated site directory"`
}

func (p *PolishCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if p.Site != "" {
		cfg.Site.Directory = p.Site
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pl := pipeline.New(cfg, pipeline.WithRecorder(newRecorder(cfg)))
	report, err := pl.Polish(ctx)
	if report != nil {
		_ = report.Write(os.Stdout)
	}
	if err != nil {
		return fmt.Errorf("polish failed: %w", err)
	}
	return nil
}

// ValidateCmd implements the 'validate' command: the style-removal gate on
// its own, with a non-zero exit when residual styles remain.
type ValidateCmd struct {
	Site  string `short:"s" help:"Override the generated site directory"`
	Scope string `help:"Override validation scope (patterns|all)"`
}

func (v *ValidateCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if v.Site != "" {
		cfg.Site.Directory = v.Site
	}
	if v.Scope != "" {
		cfg.Validate.Scope = config.ValidateScope(v.Scope)
		if err := cfg.Validate.Scope.Check(); err != nil {
			return err
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pl := pipeline.New(cfg, pipeline.WithRecorder(newRecorder(cfg)))
	report, err := pl.Validate(ctx)
	if report != nil {
		_ = report.Write(os.Stdout)
	}
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	fmt.Println("No residual inline styles found")
	return nil
}
